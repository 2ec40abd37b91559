package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"label-desk/internal/features/history/domain"
)

// JSONFileRepository implements ports.HistoryRepository on a single JSON file.
// The whole list is rewritten on every change.
type JSONFileRepository struct {
	path string
	mu   sync.Mutex
}

// NewJSONFileRepository creates a new JSONFileRepository. The file and its
// directory are created on first write.
func NewJSONFileRepository(path string) *JSONFileRepository {
	return &JSONFileRepository{
		path: path,
	}
}

// List returns all records, newest first. A missing file is an empty history.
func (r *JSONFileRepository) List(ctx context.Context) ([]domain.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load()
}

// Prepend stores record as the newest entry and keeps at most limit records.
func (r *JSONFileRepository) Prepend(ctx context.Context, record domain.Record, limit int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load()
	if err != nil {
		return err
	}

	records = append([]domain.Record{record}, records...)
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}

	return r.save(records)
}

func (r *JSONFileRepository) load() ([]domain.Record, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []domain.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}

	records := []domain.Record{}
	if len(data) == 0 {
		return records, nil
	}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode history file: %w", err)
	}
	return records, nil
}

// save writes to a temporary file and renames it over the history file.
func (r *JSONFileRepository) save(records []domain.Record) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".labels-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp history file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}

	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("failed to replace history file: %w", err)
	}
	return nil
}
