package billing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TaxRate is a Spanish VAT bracket expressed as a whole percentage.
// Only the enumerated brackets are legal on an invoice line.
type TaxRate int64

const (
	TaxRate0  TaxRate = 0
	TaxRate4  TaxRate = 4
	TaxRate10 TaxRate = 10
	TaxRate21 TaxRate = 21
)

// Valid reports whether the rate is one of the allowed VAT brackets.
func (r TaxRate) Valid() bool {
	switch r {
	case TaxRate0, TaxRate4, TaxRate10, TaxRate21:
		return true
	}
	return false
}

// Percent returns the rate as a decimal percentage (e.g. 21 -> 21).
func (r TaxRate) Percent() decimal.Decimal {
	return decimal.NewFromInt(int64(r))
}

// Line is a single invoice line within a draft. The ID is stable for the
// life of the line; ProductRef is set only when the line was filled from a
// catalog product, after which description and price remain independently
// editable.
type Line struct {
	ID          uuid.UUID       `json:"id"`
	ProductRef  string          `json:"productRef,omitempty"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TaxRate     TaxRate         `json:"taxRate"`
}

// newDefaultLine mirrors the blank line the composition view starts with:
// one unit at price zero under the general 21% bracket.
func newDefaultLine() Line {
	return Line{
		ID:        uuid.New(),
		Quantity:  1,
		UnitPrice: decimal.Zero,
		TaxRate:   TaxRate21,
	}
}

// Complete reports whether the line carries everything a legal invoice line
// needs. Incomplete lines block submission and contribute nothing to totals.
func (l Line) Complete() bool {
	return l.Description != "" &&
		l.Quantity >= 1 &&
		!l.UnitPrice.IsNegative() &&
		l.TaxRate.Valid()
}
