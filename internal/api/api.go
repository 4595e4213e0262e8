// Package api defines the wire messages of the calculator RPC service.
//
// Messages are plain structs encoded as JSON; numbers inside token lists use
// "." as the decimal point regardless of the server's display locale.
package api

import (
	"encoding/json"
	"time"
)

const (
	// ServiceName is the fully-qualified name of CalculatorService.
	ServiceName = "calculator.v1.CalculatorService"

	EvaluateProcedure    = "/" + ServiceName + "/Evaluate"
	ListHistoryProcedure = "/" + ServiceName + "/ListHistory"
)

// ErrorDomain is set on every ErrorInfo detail returned by the service.
const ErrorDomain = "calculator"

// Error reasons attached to failed calls.
const (
	ReasonInvalidNumber       = "INVALID_NUMBER"
	ReasonEmptyExpression     = "EMPTY_EXPRESSION"
	ReasonMalformedExpression = "MALFORMED_EXPRESSION"
	ReasonMultiplyByZero      = "MULTIPLY_BY_ZERO"
	ReasonDivideByZero        = "DIVIDE_BY_ZERO"
	ReasonNonFiniteResult     = "NON_FINITE_RESULT"
	ReasonInvalidOrder        = "INVALID_ORDER"
)

type EvaluateRequest struct {
	Tokens []string `json:"tokens"`
}

type EvaluateResponse struct {
	Result  float64 `json:"result"`
	Display string  `json:"display"`
	Record  Record  `json:"record"`
}

type ListHistoryRequest struct {
	// Order is "asc" (default) or "desc".
	Order string `json:"order,omitempty"`
}

type ListHistoryResponse struct {
	Records []Record `json:"records"`
}

type Record struct {
	ID            string    `json:"id"`
	Tokens        []string  `json:"tokens"`
	Expression    string    `json:"expression"`
	Result        float64   `json:"result"`
	DisplayResult string    `json:"display_result"`
	CreatedAt     time.Time `json:"created_at"`
}

// Codec encodes messages as JSON. It is registered under the "json" name so
// Connect clients and handlers use it for application/json payloads.
type Codec struct{}

func (Codec) Name() string {
	return "json"
}

func (Codec) Marshal(message any) ([]byte, error) {
	return json.Marshal(message)
}

func (Codec) Unmarshal(data []byte, message any) error {
	return json.Unmarshal(data, message)
}
