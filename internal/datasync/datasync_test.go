package datasync

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/calculator/internal/calc"
	"github.com/at-ishikawa/calculator/internal/history"
	mock_history "github.com/at-ishikawa/calculator/internal/mocks/history"
	"github.com/at-ishikawa/calculator/internal/testutil"
)

func TestImporter_Import(t *testing.T) {
	first := testutil.NewRecord(t, "1 + 1", testutil.WithID("first"))
	second := testutil.NewRecord(t, "7.5 / 3", testutil.WithID("second"))
	duplicate := testutil.NewRecord(t, "2 X 2", testutil.WithID("second"))

	tests := []struct {
		name        string
		source      []history.Record
		destination []history.Record
		opts        ImportOptions
		want        *ImportResult
		wantIDs     []string
		wantOutput  []string
	}{
		{
			name:       "new records are appended",
			source:     []history.Record{first, second},
			want:       &ImportResult{New: 2},
			wantIDs:    []string{"first", "second"},
			wantOutput: []string{"[NEW]  1 + 1 = 2 (first)", "[NEW]  7,5 / 3 = 2,5 (second)"},
		},
		{
			name:        "existing records are skipped",
			source:      []history.Record{first, second},
			destination: []history.Record{second},
			want:        &ImportResult{New: 1, Skipped: 1},
			wantIDs:     []string{"second", "first"},
			wantOutput:  []string{"[SKIP]  7,5 / 3 = 2,5 (second)"},
		},
		{
			name:       "duplicate ids in source are imported once",
			source:     []history.Record{second, duplicate},
			want:       &ImportResult{New: 1, Skipped: 1},
			wantIDs:    []string{"second"},
			wantOutput: []string{"[SKIP]  2 X 2 = 4 (second)"},
		},
		{
			name:       "dry run does not write",
			source:     []history.Record{first},
			opts:       ImportOptions{DryRun: true},
			want:       &ImportResult{New: 1},
			wantOutput: []string{"[NEW]  1 + 1 = 2 (first)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			source := history.NewMemoryStore()
			testutil.SeedHistory(t, source, tt.source...)
			destination := history.NewMemoryStore()
			testutil.SeedHistory(t, destination, tt.destination...)

			var out bytes.Buffer
			got, err := NewImporter(destination, calc.DefaultNumberFormat(), &out).Import(ctx, source, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			records, err := destination.List(ctx)
			require.NoError(t, err)
			var ids []string
			for _, record := range records {
				ids = append(ids, record.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
			for _, want := range tt.wantOutput {
				assert.Contains(t, out.String(), want)
			}
		})
	}
}

func TestImporter_Import_Errors(t *testing.T) {
	record := testutil.NewRecord(t, "1 + 1")

	tests := []struct {
		name    string
		setup   func(source, destination *mock_history.MockStore)
		wantErr string
	}{
		{
			name: "source list fails",
			setup: func(source, destination *mock_history.MockStore) {
				source.EXPECT().List(gomock.Any()).Return(nil, errors.New("no such file"))
			},
			wantErr: "source.List() > no such file",
		},
		{
			name: "destination list fails",
			setup: func(source, destination *mock_history.MockStore) {
				source.EXPECT().List(gomock.Any()).Return([]history.Record{record}, nil)
				destination.EXPECT().List(gomock.Any()).Return(nil, errors.New("connection refused"))
			},
			wantErr: "destination.List() > connection refused",
		},
		{
			name: "append fails",
			setup: func(source, destination *mock_history.MockStore) {
				source.EXPECT().List(gomock.Any()).Return([]history.Record{record}, nil)
				destination.EXPECT().List(gomock.Any()).Return(nil, nil)
				destination.EXPECT().Append(gomock.Any(), record).Return(errors.New("duplicate entry"))
			},
			wantErr: "duplicate entry",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			source := mock_history.NewMockStore(ctrl)
			destination := mock_history.NewMockStore(ctrl)
			tt.setup(source, destination)

			_, err := NewImporter(destination, calc.DefaultNumberFormat(), &bytes.Buffer{}).Import(context.Background(), source, ImportOptions{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
