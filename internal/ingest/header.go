package ingest

import "strings"

// Logical fields every import file must provide, in matching priority order.
const (
	FieldParticulars = "particulars"
	FieldQuantity    = "quantity"
	FieldRate        = "rate"
	FieldValue       = "value"
)

var logicalFields = []string{FieldParticulars, FieldQuantity, FieldRate, FieldValue}

// headerKeywords maps each logical field to the substrings that identify it
// in a normalized header cell.
var headerKeywords = map[string][]string{
	FieldParticulars: {"particular", "name", "item", "product", "description"},
	FieldQuantity:    {"quantity", "qty", "stock", "count", "units"},
	FieldRate:        {"rate", "price", "cost"},
	FieldValue:       {"value", "amount", "total", "worth"},
}

// ColumnMap holds the resolved column index per logical field, -1 when unmapped.
type ColumnMap struct {
	Particulars int
	Quantity    int
	Rate        int
	Value       int
}

func (m ColumnMap) index(field string) int {
	switch field {
	case FieldParticulars:
		return m.Particulars
	case FieldQuantity:
		return m.Quantity
	case FieldRate:
		return m.Rate
	case FieldValue:
		return m.Value
	}
	return -1
}

func (m *ColumnMap) assign(field string, idx int) {
	switch field {
	case FieldParticulars:
		m.Particulars = idx
	case FieldQuantity:
		m.Quantity = idx
	case FieldRate:
		m.Rate = idx
	case FieldValue:
		m.Value = idx
	}
}

// MapHeader resolves the four logical fields against a header row using
// fuzzy, case-insensitive matching. Scanning left to right, the first cell
// that matches a field's keyword set wins that field; later cells cannot
// overwrite it, and a single cell can satisfy at most one field (checked in
// fixed priority order: particulars, quantity, rate, value).
//
// Returns a *MissingColumnsError naming every unmapped field; a partial
// mapping never produces a partial import.
func MapHeader(header []string) (ColumnMap, error) {
	cols := ColumnMap{Particulars: -1, Quantity: -1, Rate: -1, Value: -1}

	for i, cell := range header {
		normalized := normalizeHeaderCell(cell)
		if normalized == "" {
			continue
		}

		for _, field := range logicalFields {
			if cols.index(field) != -1 {
				continue
			}
			if matchesKeywords(normalized, headerKeywords[field]) {
				cols.assign(field, i)
				break
			}
		}
	}

	var missing []string
	for _, field := range logicalFields {
		if cols.index(field) == -1 {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return cols, &MissingColumnsError{Missing: missing}
	}

	return cols, nil
}

func matchesKeywords(normalized string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(normalized, kw) {
			return true
		}
	}
	return false
}

// normalizeHeaderCell lowercases the cell and strips every character that
// is not a letter or digit, so "Unit Price (Rs.)" and "unit_price" compare
// equal.
func normalizeHeaderCell(cell string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(cell)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
