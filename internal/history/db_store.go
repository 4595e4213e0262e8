package history

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/calculator/internal/calc"
	"github.com/at-ishikawa/calculator/internal/database"
)

type dbRecord struct {
	ID         string    `db:"id"`
	Expression string    `db:"expression"`
	Result     float64   `db:"result"`
	CreatedAt  time.Time `db:"created_at"`
}

// DBStore implements Store using MySQL.
type DBStore struct {
	db *sqlx.DB
}

// NewDBStore creates a new DBStore.
func NewDBStore(db *sqlx.DB) *DBStore {
	return &DBStore{db: db}
}

// Append inserts a record.
func (s *DBStore) Append(ctx context.Context, record Record) error {
	return database.RunInTx(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		_, err := tx.NamedExecContext(ctx,
			`INSERT INTO calculation_records (id, expression, result, created_at)
			VALUES (:id, :expression, :result, :created_at)`,
			dbRecord{
				ID:         record.ID,
				Expression: record.Expression.Canonical(),
				Result:     record.Result,
				CreatedAt:  record.CreatedAt,
			})
		if err != nil {
			return fmt.Errorf("insert calculation record: %w", err)
		}
		return nil
	})
}

// List returns every record, oldest first.
func (s *DBStore) List(ctx context.Context) ([]Record, error) {
	var rows []dbRecord
	if err := s.db.SelectContext(ctx, &rows,
		"SELECT id, expression, result, created_at FROM calculation_records ORDER BY created_at, id"); err != nil {
		return nil, fmt.Errorf("load calculation records: %w", err)
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		expr, err := calc.ParseCanonical(row.Expression)
		if err != nil {
			return nil, fmt.Errorf("decode record %s: %w", row.ID, err)
		}
		records = append(records, Record{
			ID:         row.ID,
			Expression: expr,
			Result:     row.Result,
			CreatedAt:  row.CreatedAt,
		})
	}
	return records, nil
}
