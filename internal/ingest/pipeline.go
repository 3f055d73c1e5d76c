package ingest

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/targetjit/inventory-backend/internal/domain"
)

// Result is the outcome of one pipeline run over a single file.
type Result struct {
	Records   []domain.InventoryRecord
	RowErrors []domain.RowError
}

// Pipeline runs the full import sequence: tokenize, map the header, build
// records. It is synchronous and runs to completion for one file; callers
// needing concurrent imports run independent Pipeline invocations over
// independent inputs.
type Pipeline struct {
	builder *Builder
}

// NewPipeline creates a Pipeline. A nil SignalSource uses the deterministic
// defaults.
func NewPipeline(signals SignalSource) *Pipeline {
	return &Pipeline{builder: NewBuilder(signals)}
}

// Run processes raw delimited text into normalized records. Abort-class
// failures (empty input, unmappable header, no surviving rows) reject the
// whole import; row-class problems are collected in Result.RowErrors.
func (p *Pipeline) Run(raw string) (*Result, error) {
	rows, err := ParseTable(raw)
	if err != nil {
		return nil, err
	}

	cols, err := MapHeader(rows[0])
	if err != nil {
		return nil, err
	}

	records, rowErrors, err := p.builder.Build(rows, cols)
	if err != nil {
		return nil, err
	}

	return &Result{Records: records, RowErrors: rowErrors}, nil
}

// ValidateFilename enforces the import contract on the file name: the
// upload must be named like a CSV regardless of MIME type.
func ValidateFilename(name string) error {
	if strings.ToLower(filepath.Ext(name)) != ".csv" {
		return fmt.Errorf("unsupported file extension %s for %s (only CSV supported)", filepath.Ext(name), name)
	}
	return nil
}
