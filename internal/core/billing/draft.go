package billing

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Draft is an in-progress, unsubmitted invoice composition. It always holds
// at least one line; line order is insertion order and equals print order.
// A draft has exactly one owner (the active composition session) and is
// never shared across goroutines by this package.
type Draft struct {
	ClientRef string
	Notes     string
	Lines     []Line
}

// NewDraft creates a draft the way the composition view opens: empty client,
// empty notes, one blank default line.
func NewDraft() *Draft {
	return &Draft{Lines: []Line{newDefaultLine()}}
}

// AddLine appends a blank default line and returns its identifier.
func (d *Draft) AddLine() uuid.UUID {
	line := newDefaultLine()
	d.Lines = append(d.Lines, line)
	return line.ID
}

// RemoveLine removes the identified line. Removing the sole remaining line
// is rejected so the draft never reaches zero lines.
func (d *Draft) RemoveLine(id uuid.UUID) error {
	idx, err := d.indexOf(id)
	if err != nil {
		return err
	}
	if len(d.Lines) == 1 {
		return ErrCannotRemoveLastLine
	}
	d.Lines = append(d.Lines[:idx], d.Lines[idx+1:]...)
	return nil
}

// SetDescription replaces the description of a line.
func (d *Draft) SetDescription(id uuid.UUID, description string) error {
	idx, err := d.indexOf(id)
	if err != nil {
		return err
	}
	d.Lines[idx].Description = description
	return nil
}

// SetQuantity replaces the quantity of a line. Values below 1 are rejected,
// not clamped; the line keeps its previous quantity.
func (d *Draft) SetQuantity(id uuid.UUID, quantity int) error {
	idx, err := d.indexOf(id)
	if err != nil {
		return err
	}
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	d.Lines[idx].Quantity = quantity
	return nil
}

// SetUnitPrice replaces the unit price of a line. Negative prices are
// rejected, not clamped.
func (d *Draft) SetUnitPrice(id uuid.UUID, price decimal.Decimal) error {
	idx, err := d.indexOf(id)
	if err != nil {
		return err
	}
	if price.IsNegative() {
		return ErrInvalidUnitPrice
	}
	d.Lines[idx].UnitPrice = price
	return nil
}

// SetTaxRate replaces the VAT bracket of a line. Rates outside the
// enumerated brackets are rejected.
func (d *Draft) SetTaxRate(id uuid.UUID, rate TaxRate) error {
	idx, err := d.indexOf(id)
	if err != nil {
		return err
	}
	if !rate.Valid() {
		return ErrInvalidTaxRate
	}
	d.Lines[idx].TaxRate = rate
	return nil
}

// ApplyProduct fills a line from a resolved catalog product. Description and
// unit price are overwritten at selection time and remain independently
// editable afterwards.
func (d *Draft) ApplyProduct(id uuid.UUID, productRef, name string, unitPrice decimal.Decimal) error {
	idx, err := d.indexOf(id)
	if err != nil {
		return err
	}
	d.Lines[idx].ProductRef = productRef
	d.Lines[idx].Description = name
	d.Lines[idx].UnitPrice = unitPrice
	return nil
}

// Submittable reports whether the draft can enter the intake workflow.
func (d *Draft) Submittable() bool {
	return d.Validate() == nil
}

// Validate returns the field-level reasons the draft cannot be submitted,
// or nil when it is submittable. Messages are user-facing.
func (d *Draft) Validate() *ValidationError {
	var fields []string
	if d.ClientRef == "" {
		fields = append(fields, "Selecciona un cliente")
	}
	for i, line := range d.Lines {
		if line.Description == "" {
			fields = append(fields, fmt.Sprintf("La línea %d no tiene descripción", i+1))
		}
		if line.Quantity < 1 {
			fields = append(fields, fmt.Sprintf("La línea %d tiene una cantidad inválida", i+1))
		}
		if line.UnitPrice.IsNegative() {
			fields = append(fields, fmt.Sprintf("La línea %d tiene un precio inválido", i+1))
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// Snapshot returns a read-only deep copy of the draft. Observers get
// snapshots, never the owned draft itself.
func (d *Draft) Snapshot() Snapshot {
	lines := make([]Line, len(d.Lines))
	copy(lines, d.Lines)
	return Snapshot{
		ClientRef: d.ClientRef,
		Notes:     d.Notes,
		Lines:     lines,
		Totals:    ComputeTotals(d.Lines),
	}
}

// Snapshot is an immutable view of a draft plus its derived totals.
type Snapshot struct {
	ClientRef string `json:"clientRef"`
	Notes     string `json:"notes,omitempty"`
	Lines     []Line `json:"lines"`
	Totals    Totals `json:"totals"`
}

func (d *Draft) indexOf(id uuid.UUID) (int, error) {
	for i := range d.Lines {
		if d.Lines[i].ID == id {
			return i, nil
		}
	}
	return 0, ErrLineNotFound
}
