package calc

import "errors"

// Evaluation errors. Callers match them with errors.Is.
var (
	ErrEmptyExpression     = errors.New("expression is empty")
	ErrMalformedExpression = errors.New("expression must start with a number")
	ErrMultiplyByZero      = errors.New("multiplication by zero is not allowed")
	ErrDivideByZero        = errors.New("division by zero is not allowed")
	// ErrNonFiniteResult is returned when a step overflows or yields NaN.
	ErrNonFiniteResult = errors.New("result is out of range")
)

// ErrInvalidNumber is returned when text cannot be read as a decimal number.
var ErrInvalidNumber = errors.New("invalid number")

// IsEvaluationError reports whether err is one of the evaluation errors.
func IsEvaluationError(err error) bool {
	return errors.Is(err, ErrEmptyExpression) ||
		errors.Is(err, ErrMalformedExpression) ||
		errors.Is(err, ErrMultiplyByZero) ||
		errors.Is(err, ErrDivideByZero) ||
		errors.Is(err, ErrNonFiniteResult)
}
