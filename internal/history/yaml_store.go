package history

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/calculator/internal/calc"
)

type yamlRecord struct {
	ID         string    `yaml:"id"`
	Expression string    `yaml:"expression"`
	Result     float64   `yaml:"result"`
	CreatedAt  time.Time `yaml:"created_at"`
}

// YAMLStore persists records to a single YAML file.
type YAMLStore struct {
	mu   sync.Mutex
	path string
}

func NewYAMLStore(path string) *YAMLStore {
	return &YAMLStore{path: path}
}

func (s *YAMLStore) Append(_ context.Context, record Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read()
	if err != nil {
		return err
	}
	records = append(records, yamlRecord{
		ID:         record.ID,
		Expression: record.Expression.Canonical(),
		Result:     record.Result,
		CreatedAt:  record.CreatedAt,
	})
	return s.write(records)
}

func (s *YAMLStore) List(_ context.Context) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.read()
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(stored))
	for _, r := range stored {
		expr, err := calc.ParseCanonical(r.Expression)
		if err != nil {
			return nil, fmt.Errorf("decode record %s: %w", r.ID, err)
		}
		records = append(records, Record{
			ID:         r.ID,
			Expression: expr,
			Result:     r.Result,
			CreatedAt:  r.CreatedAt,
		})
	}
	return records, nil
}

func (s *YAMLStore) read() ([]yamlRecord, error) {
	file, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("os.Open(%s) > %w", s.path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	var records []yamlRecord
	if err := yaml.NewDecoder(file).Decode(&records); err != nil {
		// An empty file has no YAML document
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("yaml.NewDecoder().Decode() > %w", err)
	}
	return records, nil
}

func (s *YAMLStore) write(records []yamlRecord) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create history directory: %w", err)
	}

	tmpPath := s.path + ".tmp"
	file, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("os.Create(%s) > %w", tmpPath, err)
	}

	enc := yaml.NewEncoder(file)
	if err := enc.Encode(records); err != nil {
		_ = file.Close()
		return fmt.Errorf("yaml.NewEncoder().Encode() > %w", err)
	}
	if err := enc.Close(); err != nil {
		_ = file.Close()
		return fmt.Errorf("close yaml encoder: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("os.Rename(%s) > %w", s.path, err)
	}
	return nil
}
