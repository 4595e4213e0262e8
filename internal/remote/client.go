// Package remote is a client for the calculator RPC service.
package remote

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/protobuf/proto"
	"resty.dev/v3"

	"github.com/at-ishikawa/calculator/internal/api"
)

const errorInfoType = "google.rpc.ErrorInfo"

// Error is a failure reported by the server.
type Error struct {
	StatusCode int
	Code       string
	Message    string
	// Reason is the ErrorInfo reason, such as api.ReasonDivideByZero, if the
	// server attached one.
	Reason string
}

func (e *Error) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) retryable() bool {
	return e.StatusCode >= http.StatusInternalServerError || e.StatusCode == http.StatusTooManyRequests
}

// retryPolicy decides which failures of a procedure are worth another attempt.
type retryPolicy int

const (
	// retryOnStatus retries transport failures and 5xx or 429 responses.
	// Only for procedures without side effects.
	retryOnStatus retryPolicy = iota + 1
	// retryOnTransport retries only when no response arrived. Any response,
	// even a 5xx, may come after the server archived the calculation.
	retryOnTransport
)

type wireError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details []wireDetail `json:"details"`
}

type wireDetail struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type Client struct {
	httpClient       *resty.Client
	maxRetryAttempts uint
}

func NewClient(baseURL string, retryAttempts uint) *Client {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("Content-Type", "application/json")
	client.SetHeader("Connect-Protocol-Version", "1")

	return &Client{
		httpClient:       client,
		maxRetryAttempts: retryAttempts,
	}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

// Evaluate sends canonical tokens, as produced by calc.Expression.CanonicalTokens.
// The server archives successful calculations, so an error response is never
// retried.
func (client *Client) Evaluate(ctx context.Context, tokens []string) (api.EvaluateResponse, error) {
	var result api.EvaluateResponse
	err := client.call(ctx, api.EvaluateProcedure, retryOnTransport, api.EvaluateRequest{Tokens: tokens}, &result)
	return result, err
}

func (client *Client) ListHistory(ctx context.Context, order string) (api.ListHistoryResponse, error) {
	var result api.ListHistoryResponse
	err := client.call(ctx, api.ListHistoryProcedure, retryOnStatus, api.ListHistoryRequest{Order: order}, &result)
	return result, err
}

func (client *Client) call(ctx context.Context, procedure string, policy retryPolicy, request any, result any) error {
	return retry.Do(
		func() error {
			err := client.post(ctx, procedure, request, result)
			if err == nil {
				return nil
			}
			var remoteErr *Error
			if errors.As(err, &remoteErr) && (policy == retryOnTransport || !remoteErr.retryable()) {
				return retry.Unrecoverable(err)
			}
			return err
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.LastErrorOnly(true),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
		retry.OnRetry(func(n uint, err error) {
			slog.Default().Warn("retrying calculator request",
				"procedure", procedure,
				"attempt", n+1,
				"error", err)
		}),
	)
}

func (client *Client) post(ctx context.Context, procedure string, request any, result any) error {
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(request).
		SetResult(result).
		Post(procedure)
	if err != nil {
		return fmt.Errorf("httpClient.Post(%s) > %w", procedure, err)
	}
	if response.IsError() {
		return decodeError(response.StatusCode(), response.String())
	}
	return nil
}

func decodeError(statusCode int, body string) *Error {
	remoteErr := &Error{
		StatusCode: statusCode,
		Code:       http.StatusText(statusCode),
		Message:    body,
	}

	var wire wireError
	if err := json.Unmarshal([]byte(body), &wire); err != nil {
		return remoteErr
	}
	if wire.Code != "" {
		remoteErr.Code = wire.Code
	}
	remoteErr.Message = wire.Message

	for _, detail := range wire.Details {
		if detail.Type != errorInfoType {
			continue
		}
		// Connect encodes detail values as unpadded base64.
		value, err := base64.RawStdEncoding.DecodeString(strings.TrimRight(detail.Value, "="))
		if err != nil {
			continue
		}
		var info errdetails.ErrorInfo
		if err := proto.Unmarshal(value, &info); err != nil {
			continue
		}
		remoteErr.Reason = info.GetReason()
		break
	}
	return remoteErr
}
