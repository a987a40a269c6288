package billing

import (
	"errors"
	"fmt"
	"strings"
)

// Operational errors on the line set. None of them is fatal: every failed
// operation leaves the draft exactly as it was.
var (
	ErrCannotRemoveLastLine = errors.New("cannot remove the last remaining line")
	ErrLineNotFound         = errors.New("line not found")
	ErrProductNotFound      = errors.New("product not found in catalog")
	ErrInvalidQuantity      = errors.New("quantity must be at least 1")
	ErrInvalidUnitPrice     = errors.New("unit price cannot be negative")
	ErrInvalidTaxRate       = errors.New("tax rate is not an allowed VAT bracket")
)

// ValidationError reports why a draft cannot be submitted. It is produced
// locally, before any network call, and lists one message per failing field.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("draft is not submittable: %s", strings.Join(e.Fields, "; "))
}
