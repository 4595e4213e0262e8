package history

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/calculator/internal/calc"
)

func TestYAMLStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "history.yml")
	store := NewYAMLStore(path)

	got, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	now := time.Date(2024, 2, 15, 9, 30, 0, 0, time.UTC)
	records := []Record{
		{
			ID:         "a",
			Expression: calc.Expression{calc.Number(2.5), calc.Multiply, calc.Number(-4)},
			Result:     -10,
			CreatedAt:  now,
		},
		{
			ID:         "b",
			Expression: calc.Expression{calc.Number(10), calc.Divide, calc.Number(3)},
			Result:     10.0 / 3,
			CreatedAt:  now.Add(time.Minute),
		},
	}
	for _, r := range records {
		require.NoError(t, store.Append(ctx, r))
	}

	got, err = store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, records, got)

	// A new store over the same file sees the persisted records
	reopened, err := NewYAMLStore(path).List(ctx)
	require.NoError(t, err)
	assert.Equal(t, records, reopened)

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(contents), "expression: 2.5 X -4")
	assert.NoFileExists(t, path+".tmp")
}

func TestYAMLStore_List(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		wantLen  int
		wantErr  string
	}{
		{
			name:     "empty file",
			contents: "",
		},
		{
			name: "valid file",
			contents: `- id: a
  expression: 1 + 2
  result: 3
  created_at: 2024-02-15T09:30:00Z
`,
			wantLen: 1,
		},
		{
			name:     "invalid yaml",
			contents: "- id: [[[",
			wantErr:  "yaml.NewDecoder().Decode()",
		},
		{
			name: "invalid expression",
			contents: `- id: a
  expression: 1 + two
  result: 3
`,
			wantErr: "decode record a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "history.yml")
			require.NoError(t, os.WriteFile(path, []byte(tt.contents), 0o644))

			got, err := NewYAMLStore(path).List(context.Background())
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
		})
	}
}
