package history

import (
	"context"
	"fmt"

	"github.com/at-ishikawa/calculator/internal/config"
	"github.com/at-ishikawa/calculator/internal/database"
)

// NewStore builds the store selected by cfg.History.Backend. The returned
// close function releases any connection the store holds.
func NewStore(ctx context.Context, cfg *config.Config) (Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.History.Backend {
	case config.HistoryBackendMemory, "":
		return NewMemoryStore(), noop, nil
	case config.HistoryBackendYAML:
		return NewYAMLStore(cfg.History.YAMLFile), noop, nil
	case config.HistoryBackendMySQL:
		db, err := database.Open(cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		if err := database.Ping(ctx, db, cfg.Database.ConnectAttempts); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return NewDBStore(db), db.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown history backend %q", cfg.History.Backend)
}
