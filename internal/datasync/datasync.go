// Package datasync copies calculation history between stores, for example
// from a YAML file into MySQL.
package datasync

import (
	"context"
	"fmt"
	"io"

	"github.com/at-ishikawa/calculator/internal/calc"
	"github.com/at-ishikawa/calculator/internal/history"
)

// ImportResult tracks counts for an import.
type ImportResult struct {
	New     int
	Skipped int
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun bool
}

// Importer appends records that the destination does not have yet.
type Importer struct {
	destination history.Store
	format      calc.NumberFormat
	writer      io.Writer
}

func NewImporter(destination history.Store, format calc.NumberFormat, writer io.Writer) *Importer {
	return &Importer{
		destination: destination,
		format:      format,
		writer:      writer,
	}
}

// Import copies every record of source into the destination, oldest first.
// Records are matched by ID, so running an import twice is a no-op.
func (imp *Importer) Import(ctx context.Context, source history.Store, opts ImportOptions) (*ImportResult, error) {
	records, err := source.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("source.List() > %w", err)
	}
	existing, err := imp.destination.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("destination.List() > %w", err)
	}

	known := make(map[string]struct{}, len(existing))
	for _, record := range existing {
		known[record.ID] = struct{}{}
	}

	var result ImportResult
	for _, record := range records {
		label := fmt.Sprintf("%s = %s", record.Expression.Format(imp.format), imp.format.Format(record.Result))
		if _, ok := known[record.ID]; ok {
			_, _ = fmt.Fprintf(imp.writer, "  [SKIP]  %s (%s)\n", label, record.ID)
			result.Skipped++
			continue
		}

		if !opts.DryRun {
			if err := imp.destination.Append(ctx, record); err != nil {
				return nil, fmt.Errorf("destination.Append(%s) > %w", record.ID, err)
			}
		}
		known[record.ID] = struct{}{}
		_, _ = fmt.Fprintf(imp.writer, "  [NEW]  %s (%s)\n", label, record.ID)
		result.New++
	}
	return &result, nil
}
