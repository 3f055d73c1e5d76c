package ingest

import (
	"errors"
	"strings"
	"testing"

	"github.com/targetjit/inventory-backend/internal/domain"
)

func buildRows(t *testing.T, raw string) ([][]string, ColumnMap) {
	t.Helper()
	rows, err := ParseTable(raw)
	if err != nil {
		t.Fatalf("ParseTable() error = %v", err)
	}
	cols, err := MapHeader(rows[0])
	if err != nil {
		t.Fatalf("MapHeader() error = %v", err)
	}
	return rows, cols
}

func TestBuildBasicRecord(t *testing.T) {
	rows, cols := buildRows(t, "Particulars,Quantity,Rate,Value\nGeneric Widget,10,100,1000\n")

	records, rowErrors, err := NewBuilder(nil).Build(rows, cols)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(rowErrors) != 0 {
		t.Fatalf("unexpected row errors: %v", rowErrors)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}

	rec := records[0]
	if rec.SKUID != "SKU-0001" {
		t.Errorf("SKUID = %q, want SKU-0001", rec.SKUID)
	}
	if rec.Name != "Generic Widget" {
		t.Errorf("Name = %q", rec.Name)
	}
	if rec.Category != domain.CategoryGeneral {
		t.Errorf("Category = %q, want General", rec.Category)
	}
	if rec.CurrentStock != 10 || rec.Rate != 100 || rec.Value != 1000 {
		t.Errorf("stock/rate/value = %d/%v/%v", rec.CurrentStock, rec.Rate, rec.Value)
	}
	// General: max(floor(10*0.20), 10) = 10
	if rec.ReorderPoint != 10 {
		t.Errorf("ReorderPoint = %d, want 10", rec.ReorderPoint)
	}
	// ratio exactly 1.0
	if rec.StockoutRisk != domain.RiskMedium {
		t.Errorf("StockoutRisk = %q, want Medium", rec.StockoutRisk)
	}
	if rec.TurnoverRate != 0.5 || rec.LeadTime != 7 || rec.AverageDemand != 1 {
		t.Errorf("signals = %v/%d/%d", rec.TurnoverRate, rec.LeadTime, rec.AverageDemand)
	}
}

func TestBuildSkipsBadRows(t *testing.T) {
	raw := strings.Join([]string{
		"Particulars,Quantity,Rate,Value",
		"Short Row,5",               // column count mismatch
		"Zero Qty,0,10,0",           // invalid quantity
		"Negative Rate,5,-2,0",      // invalid rate
		"Survivor,20,50,0",          // valid, value derived
		"Another Survivor,30,10,300",
	}, "\n")

	rows, cols := buildRows(t, raw)
	records, rowErrors, err := NewBuilder(nil).Build(rows, cols)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if len(rowErrors) != 3 {
		t.Fatalf("got %d row errors, want 3: %v", len(rowErrors), rowErrors)
	}

	wantMessages := []struct {
		row int
		msg string
	}{
		{1, "column count mismatch"},
		{2, "invalid quantity"},
		{3, "invalid rate"},
	}
	for i, want := range wantMessages {
		if rowErrors[i].Row != want.row || rowErrors[i].Message != want.msg {
			t.Errorf("rowErrors[%d] = %+v, want row %d %q", i, rowErrors[i], want.row, want.msg)
		}
	}

	// skipped rows still advance the SKU counter
	if records[0].SKUID != "SKU-0004" || records[1].SKUID != "SKU-0005" {
		t.Errorf("SKU IDs = %q, %q", records[0].SKUID, records[1].SKUID)
	}

	// zero value falls back to quantity * rate
	if records[0].Value != 1000 {
		t.Errorf("derived value = %v, want 1000", records[0].Value)
	}
}

func TestBuildNegativeValueFallsBack(t *testing.T) {
	rows, cols := buildRows(t, "Particulars,Quantity,Rate,Value\nNegative Value Thing,10,100,-500\n")

	records, rowErrors, err := NewBuilder(nil).Build(rows, cols)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1 (%v)", len(records), rowErrors)
	}

	// negative supplied value is replaced with quantity * rate
	if records[0].Value != 1000 {
		t.Errorf("Value = %v, want 1000", records[0].Value)
	}
	if len(rowErrors) != 1 {
		t.Fatalf("got %d row errors, want 1: %v", len(rowErrors), rowErrors)
	}
	if rowErrors[0].Row != 1 || !strings.Contains(rowErrors[0].Message, "negative value") {
		t.Errorf("rowErrors[0] = %+v", rowErrors[0])
	}
}

func TestBuildCoercion(t *testing.T) {
	tests := []struct {
		name      string
		row       string
		wantStock int
		wantRate  float64
		wantWarn  int
	}{
		{"currency symbols stripped", `Widget,"1,200",Rs 45.50,0`, 1200, 45.5, 0},
		{"thousands separators", `Widget,"2,500",10,"25,000"`, 2500, 10, 0},
		{"garbage rate warns and zeroes", "Widget,10,N/A,500", 10, 0, 1},
		{"blank cells default to zero", "Widget,10,,0", 10, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, cols := buildRows(t, "Particulars,Quantity,Rate,Value\n"+tt.row+"\n")
			records, rowErrors, err := NewBuilder(nil).Build(rows, cols)
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			if len(records) != 1 {
				t.Fatalf("got %d records, want 1 (%v)", len(records), rowErrors)
			}
			if records[0].CurrentStock != tt.wantStock {
				t.Errorf("CurrentStock = %d, want %d", records[0].CurrentStock, tt.wantStock)
			}
			if records[0].Rate != tt.wantRate {
				t.Errorf("Rate = %v, want %v", records[0].Rate, tt.wantRate)
			}
			if len(rowErrors) != tt.wantWarn {
				t.Errorf("row errors = %v, want %d", rowErrors, tt.wantWarn)
			}
		})
	}
}

func TestBuildNoValidRows(t *testing.T) {
	raw := strings.Join([]string{
		"Particulars,Quantity,Rate,Value",
		"A,0,1,0",
		"B,0,1,0",
		"C,0,1,0",
		"D,0,1,0",
	}, "\n")

	rows, cols := buildRows(t, raw)
	_, rowErrors, err := NewBuilder(nil).Build(rows, cols)

	var noRows *NoValidRowsError
	if !errors.As(err, &noRows) {
		t.Fatalf("Build() error = %v, want *NoValidRowsError", err)
	}
	if len(rowErrors) != 4 {
		t.Errorf("got %d row errors, want 4", len(rowErrors))
	}
	// the error itself carries at most three samples
	if len(noRows.RowErrors) != 3 {
		t.Errorf("error samples = %d, want 3", len(noRows.RowErrors))
	}
	if !strings.Contains(err.Error(), "row 1: invalid quantity") {
		t.Errorf("error message %q missing first sample", err.Error())
	}
}

func TestCoerceNumber(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"1234", 1234, true},
		{"1,234.50", 1234.5, true},
		{"₹ 99", 99, true},
		{"-5", -5, true},
		{"(n/a)", 0, false},
		{"", 0, false},
		{"..--", 0, false},
	}

	for _, tt := range tests {
		got, ok := coerceNumber(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("coerceNumber(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}
