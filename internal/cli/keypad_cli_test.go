package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/calculator/internal/calc"
	"github.com/at-ishikawa/calculator/internal/history"
	"github.com/at-ishikawa/calculator/internal/keypad"
	mock_history "github.com/at-ishikawa/calculator/internal/mocks/history"
)

var testNow = time.Date(2024, 2, 21, 10, 0, 0, 0, time.UTC)

func newTestKeypadCLI(input string, store history.Store) (*KeypadCLI, *bytes.Buffer) {
	color.NoColor = true
	var out bytes.Buffer
	cli := NewKeypadCLI(
		strings.NewReader(input),
		&out,
		calc.DefaultNumberFormat(),
		"Error",
		store,
		keypad.WithClock(func() time.Time { return testNow }),
	)
	return cli, &out
}

func TestKeypadCLI_Session(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantOutput []string
		wantErr    error
		wantCount  int
	}{
		{
			name:       "evaluates typed keys",
			input:      "12,5+3=\n",
			wantOutput: []string{"15,5"},
			wantCount:  1,
		},
		{
			name:       "shows pending expression",
			input:      "2X3+\n",
			wantOutput: []string{"2 X 3 +", "0"},
		},
		{
			name:       "shows error marker",
			input:      "10/0=\n",
			wantOutput: []string{"Error"},
		},
		{
			name:       "unknown key is reported",
			input:      "2%3\n",
			wantOutput: []string{`unknown key '%' at position 2`},
		},
		{
			name:       "help",
			input:      "help\n",
			wantOutput: []string{"decimal separator"},
		},
		{
			name:    "quit",
			input:   "quit\n",
			wantErr: errEnd,
		},
		{
			name:    "end of input",
			input:   "",
			wantErr: errEnd,
		},
		{
			name:       "empty line",
			input:      "\n",
			wantOutput: []string{"> "},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := history.NewMemoryStore()
			cli, out := newTestKeypadCLI(tt.input, store)

			err := cli.Session(context.Background())

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			for _, want := range tt.wantOutput {
				assert.Contains(t, out.String(), want)
			}
			records, err := store.List(context.Background())
			require.NoError(t, err)
			assert.Len(t, records, tt.wantCount)
		})
	}
}

func TestKeypadCLI_Start(t *testing.T) {
	store := history.NewMemoryStore()
	cli, out := newTestKeypadCLI("5+3=\n4-1=\nhistory\nquit\n", store)

	require.NoError(t, cli.Start(context.Background()))

	output := out.String()
	assert.Contains(t, output, "Commands: history, help, quit")
	assert.Contains(t, output, "5 + 3")
	assert.Contains(t, output, "4 - 1")
	assert.Contains(t, output, "EXPRESSION")
	records, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestKeypadCLI_Session_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mock_history.NewMockStore(ctrl)
	store.EXPECT().Append(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	cli, _ := newTestKeypadCLI("1+1=\n", store)
	err := cli.Session(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	store.EXPECT().List(gomock.Any()).Return(nil, errors.New("disk gone"))
	cli, _ = newTestKeypadCLI("history\n", store)
	err = cli.Session(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk gone")
}
