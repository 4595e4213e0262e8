// Package calc evaluates keypad expressions.
//
// An Expression is a flat sequence of tokens: a number, then alternating
// operators and numbers. Evaluation is a left fold without operator
// precedence, so 2 + 3 X 4 is 20.
package calc

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Token is either a Number or an Operator.
type Token interface {
	isToken()
}

// Number is an operand token.
type Number float64

func (Number) isToken() {}

// Expression is an ordered sequence of tokens.
type Expression []Token

// Evaluate folds the expression left to right.
//
// Scanning stops at the first pair that is not an operator followed by a
// number, and the accumulated value so far is returned. A trailing operator
// without an operand is therefore ignored.
//
// Every intermediate value must stay finite; an overflow such as
// 1e308 X 10 fails with ErrNonFiniteResult.
func Evaluate(expr Expression) (float64, error) {
	if len(expr) == 0 {
		return 0, ErrEmptyExpression
	}
	first, ok := expr[0].(Number)
	if !ok {
		return 0, ErrMalformedExpression
	}

	result := float64(first)
	if !isFinite(result) {
		return 0, ErrNonFiniteResult
	}
	for i := 1; i+1 < len(expr); i += 2 {
		op, ok := expr[i].(Operator)
		if !ok {
			break
		}
		number, ok := expr[i+1].(Number)
		if !ok {
			break
		}

		var err error
		result, err = op.Apply(result, float64(number))
		if err != nil {
			return 0, err
		}
		if !isFinite(result) {
			return 0, ErrNonFiniteResult
		}
	}
	return result, nil
}

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

// Clone returns a copy that does not share the backing array.
func (expr Expression) Clone() Expression {
	if expr == nil {
		return nil
	}
	cloned := make(Expression, len(expr))
	copy(cloned, expr)
	return cloned
}

// Format renders the expression for display, e.g. "2,5 + 3".
func (expr Expression) Format(format NumberFormat) string {
	parts := make([]string, 0, len(expr))
	for _, token := range expr {
		switch t := token.(type) {
		case Number:
			parts = append(parts, format.Format(float64(t)))
		case Operator:
			parts = append(parts, t.Symbol())
		}
	}
	return strings.Join(parts, " ")
}

// Canonical renders the expression in a locale independent form that
// ParseCanonical reads back without loss, e.g. "2.5 + 3".
func (expr Expression) Canonical() string {
	return strings.Join(expr.CanonicalTokens(), " ")
}

// CanonicalTokens renders each token in the form Canonical uses.
func (expr Expression) CanonicalTokens() []string {
	tokens := make([]string, 0, len(expr))
	for _, token := range expr {
		switch t := token.(type) {
		case Number:
			tokens = append(tokens, strconv.FormatFloat(float64(t), 'g', -1, 64))
		case Operator:
			tokens = append(tokens, t.Symbol())
		}
	}
	return tokens
}

// ParseCanonical parses the output of Canonical.
func ParseCanonical(s string) (Expression, error) {
	return ParseCanonicalTokens(strings.Fields(s))
}

// ParseCanonicalTokens parses the output of CanonicalTokens.
func ParseCanonicalTokens(tokens []string) (Expression, error) {
	expr := make(Expression, 0, len(tokens))
	for _, token := range tokens {
		if op, ok := OperatorFromSymbol(token); ok {
			expr = append(expr, op)
			continue
		}
		value, err := strconv.ParseFloat(token, 64)
		if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
			return nil, fmt.Errorf("parse token %q: %w", token, ErrInvalidNumber)
		}
		expr = append(expr, Number(value))
	}
	return expr, nil
}

// ParseTokens reads user supplied tokens, such as command line arguments,
// with the given number format.
func ParseTokens(fields []string, format NumberFormat) (Expression, error) {
	expr := make(Expression, 0, len(fields))
	for _, field := range fields {
		if op, ok := OperatorFromSymbol(field); ok {
			expr = append(expr, op)
			continue
		}
		value, err := format.Parse(field)
		if err != nil {
			return nil, fmt.Errorf("parse token %q: %w", field, err)
		}
		expr = append(expr, Number(value))
	}
	return expr, nil
}
