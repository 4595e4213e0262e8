package keypad

import (
	"fmt"
	"unicode"

	"github.com/at-ishikawa/calculator/internal/calc"
)

// EventKind identifies a key on the keypad.
type EventKind int

const (
	EventDigit EventKind = iota + 1
	EventSeparator
	EventOperator
	EventEquals
	EventClear
)

// Event is a single key press.
type Event struct {
	Kind     EventKind
	Digit    rune
	Operator calc.Operator
}

func Digit(d rune) Event {
	return Event{Kind: EventDigit, Digit: d}
}

func Separator() Event {
	return Event{Kind: EventSeparator}
}

func Operator(op calc.Operator) Event {
	return Event{Kind: EventOperator, Operator: op}
}

func Equals() Event {
	return Event{Kind: EventEquals}
}

func Clear() Event {
	return Event{Kind: EventClear}
}

func (e Event) String() string {
	switch e.Kind {
	case EventDigit:
		return string(e.Digit)
	case EventSeparator:
		return "separator"
	case EventOperator:
		return e.Operator.Symbol()
	case EventEquals:
		return "="
	case EventClear:
		return "C"
	}
	return fmt.Sprintf("Event(%d)", int(e.Kind))
}

// ParseKeys translates a line of typed keys, such as "12,5+3=", into events.
// Spaces are ignored.
func ParseKeys(line string, separator rune) ([]Event, error) {
	var events []Event
	for i, r := range line {
		switch {
		case unicode.IsSpace(r):
			continue
		case r >= '0' && r <= '9':
			events = append(events, Digit(r))
		case r == separator:
			events = append(events, Separator())
		case r == '=':
			events = append(events, Equals())
		case r == 'C' || r == 'c':
			events = append(events, Clear())
		default:
			op, ok := calc.OperatorFromSymbol(string(r))
			if !ok {
				return nil, fmt.Errorf("unknown key %q at position %d", r, i+1)
			}
			events = append(events, Operator(op))
		}
	}
	return events, nil
}
