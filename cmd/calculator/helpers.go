package main

import (
	"context"
	"fmt"

	"github.com/at-ishikawa/calculator/internal/calc"
	"github.com/at-ishikawa/calculator/internal/config"
	"github.com/at-ishikawa/calculator/internal/history"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// environment is what most commands need: the loaded config, the number
// format and the history store.
type environment struct {
	cfg    *config.Config
	format calc.NumberFormat
	store  history.Store
	close  func() error
}

func newEnvironment(ctx context.Context) (*environment, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	format, err := cfg.Calculator.NumberFormat()
	if err != nil {
		return nil, fmt.Errorf("cfg.Calculator.NumberFormat() > %w", err)
	}
	store, closeStore, err := history.NewStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("history.NewStore() > %w", err)
	}
	return &environment{
		cfg:    cfg,
		format: format,
		store:  store,
		close:  closeStore,
	}, nil
}
