// Package keypad models the calculator's keypad screen as a state machine.
//
// The session owns the text on the display and the expression typed so far.
// Pressing an operator moves the displayed number into the expression;
// pressing equals evaluates it and archives successful results.
package keypad

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/at-ishikawa/calculator/internal/calc"
	"github.com/at-ishikawa/calculator/internal/history"
)

// Session is not safe for concurrent use.
type Session struct {
	format    calc.NumberFormat
	errorText string
	archive   history.Store
	now       func() time.Time

	displayText string
	pending     calc.Expression
}

type Option func(*Session)

// WithClock overrides the time stamped on archived records.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

func NewSession(format calc.NumberFormat, errorText string, archive history.Store, opts ...Option) *Session {
	s := &Session{
		format:    format,
		errorText: errorText,
		archive:   archive,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Display returns the text shown on the screen.
func (s *Session) Display() string {
	if s.displayText == "" {
		return "0"
	}
	return s.displayText
}

// Pending returns a copy of the expression typed so far.
func (s *Session) Pending() calc.Expression {
	return s.pending.Clone()
}

// Errored reports whether the last evaluation failed.
func (s *Session) Errored() bool {
	return s.displayText == s.errorText
}

// Handle applies a key press. Only a failure to archive is returned as an
// error; evaluation failures are shown on the display.
func (s *Session) Handle(ctx context.Context, event Event) error {
	switch event.Kind {
	case EventDigit:
		s.pressDigit(event.Digit)
	case EventSeparator:
		s.pressSeparator()
	case EventOperator:
		s.pressOperator(event.Operator)
	case EventEquals:
		return s.pressEquals(ctx)
	case EventClear:
		s.clear()
	default:
		return fmt.Errorf("unknown event %s", event)
	}
	return nil
}

// HandleAll applies events in order and stops at the first error.
func (s *Session) HandleAll(ctx context.Context, events []Event) error {
	for _, event := range events {
		if err := s.Handle(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) pressDigit(d rune) {
	if s.displayText == "" || s.displayText == "0" || s.Errored() {
		s.displayText = string(d)
		return
	}
	s.displayText += string(d)
}

func (s *Session) pressSeparator() {
	if s.displayText == "" || s.Errored() {
		s.displayText = "0" + string(s.format.Separator)
		return
	}
	// At most one separator per number
	if s.format.HasSeparator(s.displayText) {
		return
	}
	s.displayText += string(s.format.Separator)
}

func (s *Session) pressOperator(op calc.Operator) {
	number, ok := s.displayedNumber()
	if !ok {
		return
	}
	s.pending = append(s.pending, calc.Number(number), op)
	s.displayText = ""
}

func (s *Session) pressEquals(ctx context.Context) error {
	number, ok := s.displayedNumber()
	if !ok {
		return nil
	}
	expr := append(s.pending, calc.Number(number))
	s.pending = nil

	result, err := calc.Evaluate(expr)
	if err != nil {
		slog.Default().Debug("evaluation failed",
			"expression", expr.Format(s.format),
			"error", err)
		s.displayText = s.errorText
		return nil
	}

	s.displayText = s.format.Format(result)
	slog.Default().Debug("evaluated",
		"expression", expr.Format(s.format),
		"result", result)

	if err := s.archive.Append(ctx, history.NewRecord(expr, result, s.now())); err != nil {
		return fmt.Errorf("archive calculation: %w", err)
	}
	return nil
}

func (s *Session) clear() {
	s.pending = nil
	s.displayText = ""
}

func (s *Session) displayedNumber() (float64, bool) {
	text := strings.TrimSpace(s.displayText)
	if text == "" || s.Errored() {
		return 0, false
	}
	number, err := s.format.Parse(text)
	if err != nil {
		return 0, false
	}
	return number, true
}
