package ports

import (
	"context"

	"label-desk/internal/features/history/domain"
)

// HistoryRepository persists history records, newest first.
type HistoryRepository interface {
	// List returns all records, newest first.
	List(ctx context.Context) ([]domain.Record, error)
	// Prepend stores record as the newest entry and keeps at most limit records.
	Prepend(ctx context.Context, record domain.Record, limit int) error
}

// HistoryService manages the label history log.
type HistoryService interface {
	List(ctx context.Context, filter domain.Filter) ([]domain.Record, error)
	Add(ctx context.Context, record domain.Record) (*domain.Record, error)
}
