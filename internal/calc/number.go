package calc

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// DefaultSeparator is the decimal separator of the ru_RU locale.
const DefaultSeparator = ','

// DefaultMaxFractionDigits matches a decimal number formatter's default.
const DefaultMaxFractionDigits = 3

// NumberFormat parses and formats numbers with a single decimal separator
// and no digit grouping.
type NumberFormat struct {
	Separator         rune
	MaxFractionDigits int
}

// DefaultNumberFormat returns the format used when nothing is configured.
func DefaultNumberFormat() NumberFormat {
	return NumberFormat{
		Separator:         DefaultSeparator,
		MaxFractionDigits: DefaultMaxFractionDigits,
	}
}

// NewNumberFormat builds a format from a configured separator string.
func NewNumberFormat(separator string, maxFractionDigits int) (NumberFormat, error) {
	if utf8.RuneCountInString(separator) != 1 {
		return NumberFormat{}, fmt.Errorf("decimal separator must be a single character: %q", separator)
	}
	r, _ := utf8.DecodeRuneInString(separator)
	if r >= '0' && r <= '9' || r == '-' {
		return NumberFormat{}, fmt.Errorf("decimal separator cannot be %q", separator)
	}
	if maxFractionDigits < 0 {
		return NumberFormat{}, fmt.Errorf("max fraction digits must not be negative: %d", maxFractionDigits)
	}
	return NumberFormat{Separator: r, MaxFractionDigits: maxFractionDigits}, nil
}

// Parse reads an optionally negative decimal number with at most one
// separator, e.g. "-12,5".
func (f NumberFormat) Parse(s string) (float64, error) {
	body := strings.TrimPrefix(s, "-")
	if body == "" {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidNumber)
	}

	digits := 0
	separators := 0
	var b strings.Builder
	if len(body) != len(s) {
		b.WriteByte('-')
	}
	for _, r := range body {
		switch {
		case r >= '0' && r <= '9':
			digits++
			b.WriteRune(r)
		case r == f.Separator:
			separators++
			b.WriteByte('.')
		default:
			return 0, fmt.Errorf("%q has unexpected character %q: %w", s, r, ErrInvalidNumber)
		}
	}
	if digits == 0 || separators > 1 {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidNumber)
	}

	value, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidNumber)
	}
	return value, nil
}

// Format renders v rounded to MaxFractionDigits without trailing zeros.
func (f NumberFormat) Format(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	s := strconv.FormatFloat(v, 'f', f.MaxFractionDigits, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	return strings.Replace(s, ".", string(f.Separator), 1)
}

// HasSeparator reports whether s already contains the decimal separator.
func (f NumberFormat) HasSeparator(s string) bool {
	return strings.ContainsRune(s, f.Separator)
}
