// Package server provides Connect RPC handlers for the calculator service.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/protobuf/proto"

	"github.com/at-ishikawa/calculator/internal/api"
	"github.com/at-ishikawa/calculator/internal/calc"
	"github.com/at-ishikawa/calculator/internal/history"
)

// CalculatorHandler evaluates expressions on behalf of remote clients and
// archives the successful ones.
type CalculatorHandler struct {
	store  history.Store
	format calc.NumberFormat
	now    func() time.Time
}

// NewCalculatorHandler creates a new CalculatorHandler. store must be safe for
// concurrent use.
func NewCalculatorHandler(store history.Store, format calc.NumberFormat) *CalculatorHandler {
	return &CalculatorHandler{
		store:  store,
		format: format,
		now:    time.Now,
	}
}

// Evaluate folds the tokens of the request into a single result.
func (h *CalculatorHandler) Evaluate(
	ctx context.Context,
	req *connect.Request[api.EvaluateRequest],
) (*connect.Response[api.EvaluateResponse], error) {
	expr, err := calc.ParseCanonicalTokens(req.Msg.Tokens)
	if err != nil {
		return nil, newInvalidArgumentError(err, api.ReasonInvalidNumber)
	}

	result, err := calc.Evaluate(expr)
	if err != nil {
		slog.Default().Debug("evaluation failed",
			"expression", expr.Canonical(),
			"error", err)
		return nil, newInvalidArgumentError(err, evaluationReason(err))
	}

	record := history.NewRecord(expr, result, h.now())
	if err := h.store.Append(ctx, record); err != nil {
		return nil, connect.NewError(connect.CodeInternal, fmt.Errorf("archive calculation: %w", err))
	}

	return connect.NewResponse(&api.EvaluateResponse{
		Result:  result,
		Display: h.format.Format(result),
		Record:  h.toAPIRecord(record),
	}), nil
}

// ListHistory returns archived calculations.
func (h *CalculatorHandler) ListHistory(
	ctx context.Context,
	req *connect.Request[api.ListHistoryRequest],
) (*connect.Response[api.ListHistoryResponse], error) {
	order := history.Order(req.Msg.Order)
	switch order {
	case "":
		order = history.OrderAscending
	case history.OrderAscending, history.OrderDescending:
	default:
		return nil, newInvalidArgumentError(
			fmt.Errorf("invalid order %q, valid values are %q or %q", req.Msg.Order, history.OrderAscending, history.OrderDescending),
			api.ReasonInvalidOrder,
		)
	}

	records, err := h.store.List(ctx)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, fmt.Errorf("list history: %w", err))
	}

	response := &api.ListHistoryResponse{Records: make([]api.Record, 0, len(records))}
	for _, record := range history.Sorted(records, order) {
		response.Records = append(response.Records, h.toAPIRecord(record))
	}
	return connect.NewResponse(response), nil
}

func (h *CalculatorHandler) toAPIRecord(record history.Record) api.Record {
	return api.Record{
		ID:            record.ID,
		Tokens:        record.Expression.CanonicalTokens(),
		Expression:    record.Expression.Format(h.format),
		Result:        record.Result,
		DisplayResult: h.format.Format(record.Result),
		CreatedAt:     record.CreatedAt,
	}
}

// NewCalculatorServiceHandler builds an HTTP handler that serves every
// CalculatorService procedure, and returns the path to mount it on.
func NewCalculatorServiceHandler(h *CalculatorHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(api.Codec{})}, opts...)

	evaluateHandler := connect.NewUnaryHandler(api.EvaluateProcedure, h.Evaluate, opts...)
	listHistoryHandler := connect.NewUnaryHandler(api.ListHistoryProcedure, h.ListHistory, opts...)

	return "/" + api.ServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case api.EvaluateProcedure:
			evaluateHandler.ServeHTTP(w, r)
		case api.ListHistoryProcedure:
			listHistoryHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

func evaluationReason(err error) string {
	switch {
	case errors.Is(err, calc.ErrEmptyExpression):
		return api.ReasonEmptyExpression
	case errors.Is(err, calc.ErrMalformedExpression):
		return api.ReasonMalformedExpression
	case errors.Is(err, calc.ErrMultiplyByZero):
		return api.ReasonMultiplyByZero
	case errors.Is(err, calc.ErrDivideByZero):
		return api.ReasonDivideByZero
	case errors.Is(err, calc.ErrNonFiniteResult):
		return api.ReasonNonFiniteResult
	}
	return ""
}

func newInvalidArgumentError(err error, reason string) *connect.Error {
	connectErr := connect.NewError(connect.CodeInvalidArgument, err)
	if reason == "" {
		return connectErr
	}
	addDetail(connectErr, &errdetails.ErrorInfo{
		Reason: reason,
		Domain: api.ErrorDomain,
	})
	return connectErr
}

func addDetail(connectErr *connect.Error, msg proto.Message) {
	if detail, detailErr := connect.NewErrorDetail(msg); detailErr == nil {
		connectErr.AddDetail(detail)
	}
}
