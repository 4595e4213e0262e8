// Package history archives successful calculations.
package history

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/at-ishikawa/calculator/internal/calc"
)

// Record is an archived calculation. It is never modified once created.
type Record struct {
	ID         string
	Expression calc.Expression
	Result     float64
	CreatedAt  time.Time
}

// NewRecord copies expr so later changes to the caller's buffer do not leak
// into the archive.
func NewRecord(expr calc.Expression, result float64, createdAt time.Time) Record {
	return Record{
		ID:         uuid.NewString(),
		Expression: expr.Clone(),
		Result:     result,
		CreatedAt:  createdAt,
	}
}

//go:generate mockgen -source=record.go -destination=../mocks/history/mock_store.go -package=mock_history Store

// Store is an append-only list of records in the order they were added.
type Store interface {
	Append(ctx context.Context, record Record) error
	List(ctx context.Context) ([]Record, error)
}

// Order of a listing.
type Order string

const (
	OrderAscending  Order = "asc"
	OrderDescending Order = "desc"
)

// Sorted returns records in the requested order. Input is oldest first.
func Sorted(records []Record, order Order) []Record {
	sorted := make([]Record, len(records))
	copy(sorted, records)
	if order == OrderDescending {
		for i, j := 0, len(sorted)-1; i < j; i, j = i+1, j-1 {
			sorted[i], sorted[j] = sorted[j], sorted[i]
		}
	}
	return sorted
}
