package calc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNumberFormat(t *testing.T) {
	tests := []struct {
		name      string
		separator string
		digits    int
		want      NumberFormat
		wantErr   bool
	}{
		{name: "comma", separator: ",", digits: 3, want: NumberFormat{Separator: ',', MaxFractionDigits: 3}},
		{name: "dot", separator: ".", digits: 0, want: NumberFormat{Separator: '.', MaxFractionDigits: 0}},
		{name: "empty", separator: "", digits: 3, wantErr: true},
		{name: "two characters", separator: ",.", digits: 3, wantErr: true},
		{name: "digit", separator: "5", digits: 3, wantErr: true},
		{name: "minus", separator: "-", digits: 3, wantErr: true},
		{name: "negative digits", separator: ",", digits: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewNumberFormat(tt.separator, tt.digits)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNumberFormat_Parse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{name: "integer", input: "42", want: 42},
		{name: "decimal", input: "12,5", want: 12.5},
		{name: "negative", input: "-0,25", want: -0.25},
		{name: "leading separator", input: ",5", want: 0.5},
		{name: "trailing separator", input: "5,", want: 5},
		{name: "second separator", input: "1,2,3", wantErr: true},
		{name: "dot is not the separator", input: "1.5", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "only minus", input: "-", wantErr: true},
		{name: "only separator", input: ",", wantErr: true},
		{name: "error marker", input: "Error", wantErr: true},
		{name: "exponent", input: "1e5", wantErr: true},
	}

	format := DefaultNumberFormat()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := format.Parse(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidNumber)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNumberFormat_Format(t *testing.T) {
	tests := []struct {
		name   string
		format NumberFormat
		input  float64
		want   string
	}{
		{name: "integer", format: DefaultNumberFormat(), input: 20, want: "20"},
		{name: "decimal", format: DefaultNumberFormat(), input: 2.5, want: "2,5"},
		{name: "rounded", format: DefaultNumberFormat(), input: 10.0 / 3, want: "3,333"},
		{name: "rounded up", format: DefaultNumberFormat(), input: 2.0 / 3, want: "0,667"},
		{name: "negative", format: DefaultNumberFormat(), input: -1.5, want: "-1,5"},
		{name: "negative zero after rounding", format: DefaultNumberFormat(), input: -0.0001, want: "0"},
		{name: "dot separator", format: NumberFormat{Separator: '.', MaxFractionDigits: 2}, input: 1.005, want: "1"},
		{name: "no fraction digits", format: NumberFormat{Separator: ',', MaxFractionDigits: 0}, input: 7.6, want: "8"},
		{name: "large", format: DefaultNumberFormat(), input: 1e15, want: "1000000000000000"},
		{name: "infinity", format: DefaultNumberFormat(), input: math.Inf(1), want: "+Inf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.format.Format(tt.input))
		})
	}
}

func TestNumberFormat_FormatThenParse(t *testing.T) {
	format := DefaultNumberFormat()
	for _, v := range []float64{0, 1, -1, 12.5, 0.125, 99999.999} {
		got, err := format.Parse(format.Format(v))
		require.NoError(t, err)
		assert.InDelta(t, v, got, 1e-9)
	}
}
