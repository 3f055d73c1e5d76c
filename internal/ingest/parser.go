package ingest

import "strings"

// ParseTable tokenizes raw delimited text into rows of trimmed field values.
// Lines may be terminated by \r\n, \n or \r. Blank lines are dropped before
// tokenization rather than producing empty rows.
//
// Returns an *EmptyInputError when fewer than two non-blank lines remain,
// since an importable file needs a header row plus at least one data row.
func ParseTable(raw string) ([][]string, error) {
	normalized := strings.ReplaceAll(raw, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")

	lines := make([]string, 0)
	for _, line := range strings.Split(normalized, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}

	if len(lines) < 2 {
		return nil, &EmptyInputError{}
	}

	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, splitFields(line))
	}

	return rows, nil
}

// splitFields scans a single line character by character. A double quote
// toggles the in-quotes state; a doubled quote inside a quoted field emits
// one literal quote; commas separate fields only outside quotes.
func splitFields(line string) []string {
	var (
		fields   []string
		field    strings.Builder
		inQuotes bool
	)

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				// escaped quote inside a quoted field
				field.WriteRune('"')
				i++
				continue
			}
			inQuotes = !inQuotes
		case ch == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(field.String()))
			field.Reset()
		default:
			field.WriteRune(ch)
		}
	}
	fields = append(fields, strings.TrimSpace(field.String()))

	return fields
}
