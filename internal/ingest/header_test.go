package ingest

import (
	"errors"
	"reflect"
	"testing"
)

func TestMapHeader(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		want   ColumnMap
	}{
		{
			name:   "canonical names",
			header: []string{"Particulars", "Quantity", "Rate", "Value"},
			want:   ColumnMap{Particulars: 0, Quantity: 1, Rate: 2, Value: 3},
		},
		{
			name:   "synonyms",
			header: []string{"Product Name", "Qty", "Unit Price", "Total Amount"},
			want:   ColumnMap{Particulars: 0, Quantity: 1, Rate: 2, Value: 3},
		},
		{
			name:   "case and punctuation ignored",
			header: []string{"ITEM_DESCRIPTION", "stock (units)", "Cost (Rs.)", "worth"},
			want:   ColumnMap{Particulars: 0, Quantity: 1, Rate: 2, Value: 3},
		},
		{
			name:   "shuffled columns",
			header: []string{"Value", "Rate", "Quantity", "Particulars"},
			want:   ColumnMap{Particulars: 3, Quantity: 2, Rate: 1, Value: 0},
		},
		{
			name:   "first matching cell wins",
			header: []string{"Item Name", "Product Code", "Qty", "Price", "Amount"},
			want:   ColumnMap{Particulars: 0, Quantity: 2, Rate: 3, Value: 4},
		},
		{
			// "Total Cost" matches rate before value, so the later
			// "Amount" column has to carry value
			name:   "one cell satisfies one field only",
			header: []string{"Item", "Qty", "Total Cost", "Amount"},
			want:   ColumnMap{Particulars: 0, Quantity: 1, Rate: 2, Value: 3},
		},
		{
			name:   "extra columns ignored",
			header: []string{"Sr No", "Particulars", "HSN", "Quantity", "Rate", "Value", "Remarks"},
			want:   ColumnMap{Particulars: 1, Quantity: 3, Rate: 4, Value: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MapHeader(tt.header)
			if err != nil {
				t.Fatalf("MapHeader() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("MapHeader() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMapHeaderMissingColumns(t *testing.T) {
	tests := []struct {
		name        string
		header      []string
		wantMissing []string
	}{
		{
			name:        "no recognizable columns",
			header:      []string{"a", "b", "c"},
			wantMissing: []string{"particulars", "quantity", "rate", "value"},
		},
		{
			name:        "value missing",
			header:      []string{"Particulars", "Quantity", "Rate"},
			wantMissing: []string{"value"},
		},
		{
			name:        "quantity and rate missing",
			header:      []string{"Item", "Worth"},
			wantMissing: []string{"quantity", "rate"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MapHeader(tt.header)
			var missingErr *MissingColumnsError
			if !errors.As(err, &missingErr) {
				t.Fatalf("MapHeader() error = %v, want *MissingColumnsError", err)
			}
			if !reflect.DeepEqual(missingErr.Missing, tt.wantMissing) {
				t.Errorf("missing = %v, want %v", missingErr.Missing, tt.wantMissing)
			}
		})
	}
}

func TestNormalizeHeaderCell(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Unit Price (Rs.)", "unitpricers"},
		{"unit_price", "unitprice"},
		{"  QTY  ", "qty"},
		{"---", ""},
	}

	for _, tt := range tests {
		if got := normalizeHeaderCell(tt.in); got != tt.want {
			t.Errorf("normalizeHeaderCell(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
