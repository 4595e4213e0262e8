package calc

import "fmt"

// Operator is one of the four arithmetic operations on the keypad.
type Operator int

const (
	Add Operator = iota + 1
	Subtract
	Multiply
	Divide
)

// Operators lists every operator in keypad order.
var Operators = []Operator{Add, Subtract, Multiply, Divide}

var operatorSymbols = map[Operator]string{
	Add:      "+",
	Subtract: "-",
	Multiply: "X",
	Divide:   "/",
}

// Aliases typed on a regular keyboard.
var operatorAliases = map[string]Operator{
	"*": Multiply,
	"x": Multiply,
}

// OperatorFromSymbol returns the operator for a display symbol.
func OperatorFromSymbol(symbol string) (Operator, bool) {
	for op, s := range operatorSymbols {
		if s == symbol {
			return op, true
		}
	}
	op, ok := operatorAliases[symbol]
	return op, ok
}

// Symbol returns the display symbol, e.g. "X" for Multiply.
func (op Operator) Symbol() string {
	return operatorSymbols[op]
}

func (op Operator) String() string {
	if s, ok := operatorSymbols[op]; ok {
		return s
	}
	return fmt.Sprintf("Operator(%d)", int(op))
}

// Apply computes a <op> b. Multiplying or dividing by zero fails.
func (op Operator) Apply(a, b float64) (float64, error) {
	switch op {
	case Add:
		return a + b, nil
	case Subtract:
		return a - b, nil
	case Multiply:
		if b == 0 {
			return 0, ErrMultiplyByZero
		}
		return a * b, nil
	case Divide:
		if b == 0 {
			return 0, ErrDivideByZero
		}
		return a / b, nil
	}
	return 0, fmt.Errorf("unknown operator %d", int(op))
}

func (Operator) isToken() {}
