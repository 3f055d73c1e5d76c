package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/targetjit/inventory-backend/internal/domain"
)

// Builder turns parsed rows plus a header mapping into normalized inventory
// records, collecting per-row errors along the way.
type Builder struct {
	signals SignalSource
}

// NewBuilder creates a Builder. A nil source falls back to the
// deterministic defaults.
func NewBuilder(signals SignalSource) *Builder {
	if signals == nil {
		signals = DefaultSignals()
	}
	return &Builder{signals: signals}
}

// Build processes every data row (rows[0] is the header). Offending rows
// are skipped and recorded as row errors; they never abort the import.
// Returns a *NoValidRowsError when no record survives.
func (b *Builder) Build(rows [][]string, cols ColumnMap) ([]domain.InventoryRecord, []domain.RowError, error) {
	headerLen := len(rows[0])
	dataRows := rows[1:]

	records := make([]domain.InventoryRecord, 0, len(dataRows))
	var rowErrors []domain.RowError

	for i, row := range dataRows {
		rowNum := i + 1

		if len(row) < headerLen {
			rowErrors = append(rowErrors, domain.RowError{Row: rowNum, Message: "column count mismatch"})
			continue
		}

		cell := func(idx int) string {
			if idx < 0 || idx >= len(row) {
				return "0"
			}
			if strings.TrimSpace(row[idx]) == "" {
				return "0"
			}
			return row[idx]
		}

		coerce := func(field string, raw string) float64 {
			v, ok := coerceNumber(raw)
			if !ok {
				rowErrors = append(rowErrors, domain.RowError{
					Row:     rowNum,
					Message: fmt.Sprintf("unparsable %s %q treated as 0", field, raw),
				})
			}
			return v
		}

		name := strings.TrimSpace(row[cols.Particulars])
		quantity := int(coerce(FieldQuantity, cell(cols.Quantity)))
		rate := coerce(FieldRate, cell(cols.Rate))
		value := coerce(FieldValue, cell(cols.Value))

		if quantity <= 0 {
			rowErrors = append(rowErrors, domain.RowError{Row: rowNum, Message: "invalid quantity"})
			continue
		}
		if rate < 0 {
			rowErrors = append(rowErrors, domain.RowError{Row: rowNum, Message: "invalid rate"})
			continue
		}

		if value < 0 {
			rowErrors = append(rowErrors, domain.RowError{
				Row:     rowNum,
				Message: fmt.Sprintf("negative value %g treated as quantity*rate", value),
			})
			value = 0
		}
		if value == 0 {
			value = float64(quantity) * rate
		}

		skuID := fmt.Sprintf("SKU-%04d", rowNum)
		category := Classify(name)
		reorderPoint := ReorderPoint(quantity, category)
		sig := b.signals.Signals(skuID, name, quantity)

		records = append(records, domain.InventoryRecord{
			SKUID:         skuID,
			Name:          name,
			Category:      category,
			CurrentStock:  quantity,
			Rate:          rate,
			Value:         value,
			ReorderPoint:  reorderPoint,
			TurnoverRate:  sig.TurnoverRate,
			LeadTime:      sig.LeadTime,
			AverageDemand: sig.AverageDemand,
			StockoutRisk:  AssessRisk(quantity, reorderPoint),
		})
	}

	if len(records) == 0 {
		samples := rowErrors
		if len(samples) > 3 {
			samples = samples[:3]
		}
		return nil, rowErrors, &NoValidRowsError{RowErrors: samples}
	}

	return records, rowErrors, nil
}

// coerceNumber strips every character except digits, '.' and '-' and
// parses the remainder as a decimal. The boolean reports whether the input
// produced a usable number; failures coerce to 0 so the caller can decide
// whether to warn or reject.
func coerceNumber(raw string) (float64, bool) {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}

	cleaned := b.String()
	if cleaned == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
