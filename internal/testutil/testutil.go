// Package testutil provides shared test helpers for config files, history
// fixtures and an in-process calculator server.
package testutil

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/calculator/internal/calc"
	"github.com/at-ishikawa/calculator/internal/history"
	"github.com/at-ishikawa/calculator/internal/server"
)

// SetupTestConfig writes a config file that keeps history in a YAML file and
// reports in a directory under tmpDir. Returns the path to the config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "reports"), 0755))

	configContent := fmt.Sprintf(`calculator:
  decimal_separator: ","
  max_fraction_digits: 3
history:
  backend: yaml
  yaml_file: %s
report:
  output_directory: %s
`,
		filepath.Join(tmpDir, "history.yml"),
		filepath.Join(tmpDir, "reports"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// RecordOption configures optional fields when creating a history record fixture.
type RecordOption func(*history.Record)

// WithCreatedAt overrides the creation time of the record.
func WithCreatedAt(createdAt time.Time) RecordOption {
	return func(r *history.Record) {
		r.CreatedAt = createdAt
	}
}

// WithID overrides the generated ID of the record.
func WithID(id string) RecordOption {
	return func(r *history.Record) {
		r.ID = id
	}
}

// NewRecord evaluates the canonical expression, e.g. "2.5 + 3", and returns
// the record a successful evaluation would archive.
func NewRecord(t *testing.T, canonical string, opts ...RecordOption) history.Record {
	t.Helper()

	expr, err := calc.ParseCanonical(canonical)
	require.NoError(t, err)
	result, err := calc.Evaluate(expr)
	require.NoError(t, err)

	record := history.NewRecord(expr, result, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	for _, opt := range opts {
		opt(&record)
	}
	return record
}

// StartCalculatorServer serves the calculator RPC service backed by store and
// returns its base URL. The server is closed when the test ends.
func StartCalculatorServer(t *testing.T, store history.Store) string {
	t.Helper()

	path, handler := server.NewCalculatorServiceHandler(server.NewCalculatorHandler(store, calc.DefaultNumberFormat()))
	mux := http.NewServeMux()
	mux.Handle(path, handler)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv.URL
}

// SeedHistory appends records to store in order.
func SeedHistory(t *testing.T, store history.Store, records ...history.Record) {
	t.Helper()

	for _, record := range records {
		require.NoError(t, store.Append(context.Background(), record))
	}
}
