package billing

import "github.com/shopspring/decimal"

var oneHundred = decimal.NewFromInt(100)

// Totals is the monetary summary of a line set. TaxByRate groups the tax
// amounts by VAT bracket, as required for the legal invoice display.
type Totals struct {
	Subtotal   decimal.Decimal             `json:"subtotal"`
	TaxByRate  map[TaxRate]decimal.Decimal `json:"taxByRate"`
	GrandTotal decimal.Decimal             `json:"grandTotal"`
}

// ComputeTotals derives subtotal, per-rate tax breakdown and grand total
// from a line set using exact decimal arithmetic. It is pure and cheap
// enough to be called on every mutation; input sizes are tens of lines at
// most. Incomplete lines contribute zero but are not dropped: validation,
// not the calculator, is responsible for flagging them.
func ComputeTotals(lines []Line) Totals {
	totals := Totals{
		Subtotal:   decimal.Zero,
		TaxByRate:  make(map[TaxRate]decimal.Decimal),
		GrandTotal: decimal.Zero,
	}

	for _, line := range lines {
		if !line.Complete() {
			continue
		}

		base := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		tax := base.Mul(line.TaxRate.Percent()).Div(oneHundred).Round(2)

		totals.Subtotal = totals.Subtotal.Add(base)
		totals.GrandTotal = totals.GrandTotal.Add(base).Add(tax)
		if current, ok := totals.TaxByRate[line.TaxRate]; ok {
			totals.TaxByRate[line.TaxRate] = current.Add(tax)
		} else {
			totals.TaxByRate[line.TaxRate] = tax
		}
	}

	return totals
}
