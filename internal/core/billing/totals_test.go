package billing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func line(desc string, qty int, price string, rate TaxRate) Line {
	return Line{
		ID:          uuid.New(),
		Description: desc,
		Quantity:    qty,
		UnitPrice:   decimal.RequireFromString(price),
		TaxRate:     rate,
	}
}

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name          string
		lines         []Line
		wantSubtotal  string
		wantGrand     string
		wantTaxByRate map[TaxRate]string
	}{
		{
			name:          "empty line set",
			lines:         nil,
			wantSubtotal:  "0",
			wantGrand:     "0",
			wantTaxByRate: map[TaxRate]string{},
		},
		{
			name: "three lines with mixed rates",
			lines: []Line{
				line("Servicio de consultoría", 2, "150.00", TaxRate21),
				line("Desarrollo web", 1, "500.00", TaxRate10),
				line("Mantenimiento mensual", 3, "0", TaxRate21),
			},
			wantSubtotal: "800.00",
			wantGrand:    "913.00",
			wantTaxByRate: map[TaxRate]string{
				TaxRate21: "63.00",
				TaxRate10: "50.00",
			},
		},
		{
			name: "incomplete line contributes zero but is not dropped",
			lines: []Line{
				line("Consultoría", 1, "100.00", TaxRate21),
				line("", 5, "999.99", TaxRate21),
			},
			wantSubtotal: "100.00",
			wantGrand:    "121.00",
			wantTaxByRate: map[TaxRate]string{
				TaxRate21: "21.00",
			},
		},
		{
			name: "same rate accumulates in the breakdown",
			lines: []Line{
				line("A", 1, "10.00", TaxRate4),
				line("B", 2, "5.00", TaxRate4),
			},
			wantSubtotal: "20.00",
			wantGrand:    "20.80",
			wantTaxByRate: map[TaxRate]string{
				TaxRate4: "0.80",
			},
		},
		{
			name: "zero rate produces zero tax entry",
			lines: []Line{
				line("Exento", 1, "50.00", TaxRate0),
			},
			wantSubtotal: "50.00",
			wantGrand:    "50.00",
			wantTaxByRate: map[TaxRate]string{
				TaxRate0: "0.00",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals(tt.lines)

			if !got.Subtotal.Equal(decimal.RequireFromString(tt.wantSubtotal)) {
				t.Errorf("subtotal: got %s, want %s", got.Subtotal, tt.wantSubtotal)
			}
			if !got.GrandTotal.Equal(decimal.RequireFromString(tt.wantGrand)) {
				t.Errorf("grand total: got %s, want %s", got.GrandTotal, tt.wantGrand)
			}
			if len(got.TaxByRate) != len(tt.wantTaxByRate) {
				t.Errorf("tax breakdown size: got %d, want %d", len(got.TaxByRate), len(tt.wantTaxByRate))
			}
			for rate, want := range tt.wantTaxByRate {
				gotTax, ok := got.TaxByRate[rate]
				if !ok {
					t.Errorf("tax breakdown missing rate %d%%", rate)
					continue
				}
				if !gotTax.Equal(decimal.RequireFromString(want)) {
					t.Errorf("tax at %d%%: got %s, want %s", rate, gotTax, want)
				}
			}
		})
	}
}

func TestComputeTotalsIsDeterministic(t *testing.T) {
	lines := []Line{
		line("A", 3, "33.33", TaxRate21),
		line("B", 7, "0.07", TaxRate10),
	}

	first := ComputeTotals(lines)
	for i := 0; i < 100; i++ {
		again := ComputeTotals(lines)
		if !again.GrandTotal.Equal(first.GrandTotal) {
			t.Fatalf("grand total drifted on iteration %d: %s vs %s", i, again.GrandTotal, first.GrandTotal)
		}
	}
}
