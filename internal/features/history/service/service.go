package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"label-desk/internal/features/history/domain"
	"label-desk/internal/features/history/ports"

	"github.com/google/uuid"
)

// HistoryServiceImpl implements ports.HistoryService.
type HistoryServiceImpl struct {
	repo  ports.HistoryRepository
	limit int
	now   func() time.Time
}

// NewHistoryService creates a new HistoryServiceImpl keeping at most limit records.
func NewHistoryService(repo ports.HistoryRepository, limit int) *HistoryServiceImpl {
	return &HistoryServiceImpl{
		repo:  repo,
		limit: limit,
		now:   time.Now,
	}
}

// List returns the records matching filter, newest first.
func (s *HistoryServiceImpl) List(ctx context.Context, filter domain.Filter) ([]domain.Record, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list history: %w", err)
	}

	matched := make([]domain.Record, 0, len(records))
	for _, r := range records {
		if filter.Match(r) {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

// Add stores a purchased label as the newest record. It assigns the id,
// the creation time and the currency when missing.
func (s *HistoryServiceImpl) Add(ctx context.Context, record domain.Record) (*domain.Record, error) {
	if strings.TrimSpace(record.TrackingNumber) == "" {
		return nil, domain.ErrInvalidRecord
	}

	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt == "" {
		record.CreatedAt = s.now().UTC().Format(domain.TimestampLayout)
	}
	if record.Currency == "" {
		record.Currency = "USD"
	}

	if err := s.repo.Prepend(ctx, record, s.limit); err != nil {
		return nil, fmt.Errorf("service: failed to save history record: %w", err)
	}

	return &record, nil
}
