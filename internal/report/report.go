// Package report exports the calculation history as markdown or PDF.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/at-ishikawa/calculator/internal/assets"
	"github.com/at-ishikawa/calculator/internal/calc"
	"github.com/at-ishikawa/calculator/internal/history"
	"github.com/at-ishikawa/calculator/internal/pdf"
)

const fileName = "history.md"

type Exporter struct {
	store        history.Store
	format       calc.NumberFormat
	templatePath string
	outputDir    string
	now          func() time.Time
}

func NewExporter(store history.Store, format calc.NumberFormat, templatePath, outputDir string) *Exporter {
	return &Exporter{
		store:        store,
		format:       format,
		templatePath: templatePath,
		outputDir:    outputDir,
		now:          time.Now,
	}
}

// Export writes history.md into the output directory and, when generatePDF
// is set, a PDF next to it. It returns the paths it wrote.
func (e *Exporter) Export(ctx context.Context, order history.Order, generatePDF bool) ([]string, error) {
	records, err := e.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	data := assets.HistoryReportTemplate{
		Title:       "Calculation history",
		GeneratedAt: e.now(),
	}
	for i, record := range history.Sorted(records, order) {
		data.Entries = append(data.Entries, assets.HistoryEntry{
			Index:      i + 1,
			Expression: record.Expression.Format(e.format),
			Result:     e.format.Format(record.Result),
			CreatedAt:  record.CreatedAt,
		})
	}

	if err := os.MkdirAll(e.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	markdownPath := filepath.Join(e.outputDir, fileName)
	file, err := os.Create(markdownPath)
	if err != nil {
		return nil, fmt.Errorf("os.Create(%s) > %w", markdownPath, err)
	}
	defer func() {
		_ = file.Close()
	}()

	if err := assets.WriteHistoryReport(file, e.templatePath, data); err != nil {
		return nil, fmt.Errorf("assets.WriteHistoryReport() > %w", err)
	}
	if err := file.Close(); err != nil {
		return nil, fmt.Errorf("close %s: %w", markdownPath, err)
	}
	slog.Default().Debug("wrote history report", "path", markdownPath, "records", len(records))

	paths := []string{markdownPath}
	if !generatePDF {
		return paths, nil
	}

	pdfPath, err := pdf.ConvertMarkdownToPDF(markdownPath, pdf.WithOrientation(pdf.Landscape))
	if err != nil {
		return paths, fmt.Errorf("pdf.ConvertMarkdownToPDF() > %w", err)
	}
	return append(paths, pdfPath), nil
}
