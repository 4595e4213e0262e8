package assets

import (
	_ "embed"
	"fmt"
	"io"
	"time"
)

//go:embed templates/history-report.md.go.tmpl
var fallbackHistoryReportTemplate string

// HistoryReportTemplate is the data passed to history report templates
type HistoryReportTemplate struct {
	Title       string
	GeneratedAt time.Time
	Entries     []HistoryEntry
}

// HistoryEntry is one archived calculation, already formatted for display
type HistoryEntry struct {
	Index      int
	Expression string
	Result     string
	CreatedAt  time.Time
}

func WriteHistoryReport(output io.Writer, templatePath string, templateData HistoryReportTemplate) error {
	tmpl, err := parseTemplateWithFallback(templatePath, "history-report.md.go.tmpl", fallbackHistoryReportTemplate)
	if err != nil {
		return fmt.Errorf("parseTemplateWithFallback() > %w", err)
	}
	if err := tmpl.Execute(output, templateData); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}
