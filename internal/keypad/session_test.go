package keypad

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/calculator/internal/calc"
	"github.com/at-ishikawa/calculator/internal/history"
	mock_history "github.com/at-ishikawa/calculator/internal/mocks/history"
)

var fixedNow = time.Date(2024, 2, 15, 12, 0, 0, 0, time.UTC)

func newTestSession(archive history.Store) *Session {
	return NewSession(calc.DefaultNumberFormat(), "Error", archive, WithClock(func() time.Time { return fixedNow }))
}

func press(t *testing.T, s *Session, line string) {
	t.Helper()
	events, err := ParseKeys(line, ',')
	require.NoError(t, err)
	require.NoError(t, s.HandleAll(context.Background(), events))
}

func TestSession_Display(t *testing.T) {
	tests := []struct {
		name        string
		keys        string
		wantDisplay string
		wantPending calc.Expression
	}{
		{name: "initial display", keys: "", wantDisplay: "0"},
		{name: "digits append", keys: "123", wantDisplay: "123"},
		{name: "leading zero is replaced", keys: "05", wantDisplay: "5"},
		{name: "separator", keys: "1,5", wantDisplay: "1,5"},
		{name: "second separator is ignored", keys: "1,5,2", wantDisplay: "1,52"},
		{name: "separator on empty display", keys: ",5", wantDisplay: "0,5"},
		{
			name:        "operator moves number into the expression",
			keys:        "12+",
			wantDisplay: "0",
			wantPending: calc.Expression{calc.Number(12), calc.Add},
		},
		{
			name:        "operator on empty display is ignored",
			keys:        "+",
			wantDisplay: "0",
		},
		{
			name:        "operator after operator without operand is ignored",
			keys:        "4-X",
			wantDisplay: "0",
			wantPending: calc.Expression{calc.Number(4), calc.Subtract},
		},
		{
			name:        "separator resets with each number",
			keys:        "1,5X2,5",
			wantDisplay: "2,5",
			wantPending: calc.Expression{calc.Number(1.5), calc.Multiply},
		},
		{name: "clear drops everything", keys: "12+3C", wantDisplay: "0"},
		{name: "equals on empty display is ignored", keys: "=", wantDisplay: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(history.NewMemoryStore())
			press(t, s, tt.keys)
			assert.Equal(t, tt.wantDisplay, s.Display())
			assert.Equal(t, tt.wantPending, s.Pending())
		})
	}
}

func TestSession_Equals(t *testing.T) {
	tests := []struct {
		name        string
		keys        string
		wantDisplay string
		wantRecord  *history.Record
	}{
		{
			name:        "single number",
			keys:        "5=",
			wantDisplay: "5",
			wantRecord:  &history.Record{Expression: calc.Expression{calc.Number(5)}, Result: 5},
		},
		{
			name:        "left to right",
			keys:        "2+3X4=",
			wantDisplay: "20",
			wantRecord: &history.Record{
				Expression: calc.Expression{calc.Number(2), calc.Add, calc.Number(3), calc.Multiply, calc.Number(4)},
				Result:     20,
			},
		},
		{
			name:        "decimal result is rounded for display",
			keys:        "10/3=",
			wantDisplay: "3,333",
			wantRecord: &history.Record{
				Expression: calc.Expression{calc.Number(10), calc.Divide, calc.Number(3)},
				Result:     10.0 / 3,
			},
		},
		{
			name:        "divide by zero shows error",
			keys:        "10/0=",
			wantDisplay: "Error",
		},
		{
			name:        "multiply by zero shows error",
			keys:        "7X0=",
			wantDisplay: "Error",
		},
		{
			name:        "overflow shows error",
			keys:        strings.Repeat("9", 200) + "X" + strings.Repeat("9", 200) + "=",
			wantDisplay: "Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			archive := mock_history.NewMockStore(ctrl)
			if tt.wantRecord != nil {
				archive.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, record history.Record) error {
						assert.NotEmpty(t, record.ID)
						assert.Equal(t, tt.wantRecord.Expression, record.Expression)
						assert.Equal(t, tt.wantRecord.Result, record.Result)
						assert.Equal(t, fixedNow, record.CreatedAt)
						return nil
					})
			}

			s := newTestSession(archive)
			press(t, s, tt.keys)
			assert.Equal(t, tt.wantDisplay, s.Display())
			assert.Empty(t, s.Pending())
			assert.Equal(t, tt.wantRecord == nil, s.Errored())
		})
	}
}

func TestSession_AfterResult(t *testing.T) {
	s := newTestSession(history.NewMemoryStore())

	// The result can be used as the first operand of the next expression
	press(t, s, "2+3=")
	press(t, s, "X2=")
	assert.Equal(t, "10", s.Display())

	// A digit after an error starts a new number
	press(t, s, "1/0=")
	assert.Equal(t, "Error", s.Display())
	press(t, s, "+")
	assert.Empty(t, s.Pending())
	press(t, s, "7")
	assert.Equal(t, "7", s.Display())
	assert.False(t, s.Errored())
}

func TestSession_ArchiveFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	archive := mock_history.NewMockStore(ctrl)
	archive.EXPECT().Append(gomock.Any(), gomock.Any()).Return(fmt.Errorf("disk full"))

	s := newTestSession(archive)
	events, err := ParseKeys("1+1=", ',')
	require.NoError(t, err)

	err = s.HandleAll(context.Background(), events)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, "2", s.Display())
}

func TestSession_History(t *testing.T) {
	ctx := context.Background()
	archive := history.NewMemoryStore()
	s := newTestSession(archive)

	press(t, s, "1+1=")
	press(t, s, "C5/0=")
	press(t, s, "C2,5X2=")

	got, err := archive.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 2.0, got[0].Result)
	assert.Equal(t, calc.Expression{calc.Number(2.5), calc.Multiply, calc.Number(2)}, got[1].Expression)
	assert.Equal(t, 5.0, got[1].Result)
}

func TestSession_UnknownEvent(t *testing.T) {
	s := newTestSession(history.NewMemoryStore())
	assert.Error(t, s.Handle(context.Background(), Event{}))
}
