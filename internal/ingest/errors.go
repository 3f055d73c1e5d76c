package ingest

import (
	"fmt"
	"strings"

	"github.com/targetjit/inventory-backend/internal/domain"
)

// Abort-class errors reject the entire import. The previous record set is
// left untouched and the message is surfaced to the caller verbatim.

// EmptyInputError indicates the file had no header plus at least one data
// row after blank lines were dropped.
type EmptyInputError struct{}

func (e *EmptyInputError) Error() string {
	return "file is empty: expected a header row and at least one data row"
}

// MissingColumnsError lists every logical column the header mapper could
// not resolve.
type MissingColumnsError struct {
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

// NoValidRowsError indicates every data row was rejected. It carries up to
// the first three row errors for diagnostics.
type NoValidRowsError struct {
	RowErrors []domain.RowError
}

func (e *NoValidRowsError) Error() string {
	if len(e.RowErrors) == 0 {
		return "no valid rows found in file"
	}

	samples := make([]string, 0, len(e.RowErrors))
	for _, re := range e.RowErrors {
		samples = append(samples, fmt.Sprintf("row %d: %s", re.Row, re.Message))
	}

	return fmt.Sprintf("no valid rows found in file (%s)", strings.Join(samples, "; "))
}
