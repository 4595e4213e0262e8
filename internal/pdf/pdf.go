// Package pdf turns the markdown history report into a printable PDF.
//
// The default layout is a light A4 page in portrait. The history export asks
// for landscape so the creation time column fits.
package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mandolyte/mdtopdf"
)

type Orientation string

const (
	Portrait  Orientation = "P"
	Landscape Orientation = "L"
)

type options struct {
	orientation Orientation
	paperSize   string
	theme       mdtopdf.Theme
}

type Option func(*options)

func WithOrientation(orientation Orientation) Option {
	return func(o *options) {
		o.orientation = orientation
	}
}

// WithDarkTheme renders light text on a dark page.
func WithDarkTheme() Option {
	return func(o *options) {
		o.theme = mdtopdf.DARK
	}
}

// ConvertMarkdownToPDF renders the history report at markdownPath into a PDF
// with the same base name, e.g. history.md -> history.pdf, and returns the
// absolute path of the PDF.
func ConvertMarkdownToPDF(markdownPath string, opts ...Option) (string, error) {
	if filepath.Ext(markdownPath) != ".md" {
		return "", fmt.Errorf("history report must have .md extension: %s", markdownPath)
	}
	cfg := options{
		orientation: Portrait,
		paperSize:   "A4",
		theme:       mdtopdf.LIGHT,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	report, err := os.ReadFile(markdownPath)
	if err != nil {
		return "", fmt.Errorf("os.ReadFile(%s) > %w", markdownPath, err)
	}
	if len(strings.TrimSpace(string(report))) == 0 {
		return "", fmt.Errorf("history report %s is empty", markdownPath)
	}

	pdfPath, err := filepath.Abs(strings.TrimSuffix(markdownPath, ".md") + ".pdf")
	if err != nil {
		return "", fmt.Errorf("filepath.Abs(%s) > %w", markdownPath, err)
	}
	renderer := mdtopdf.NewPdfRenderer(string(cfg.orientation), cfg.paperSize, pdfPath, "", nil, cfg.theme)
	if err := renderer.Process(report); err != nil {
		return "", fmt.Errorf("renderer.Process(%s) > %w", markdownPath, err)
	}
	return pdfPath, nil
}
