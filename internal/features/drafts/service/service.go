package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"label-desk/internal/features/drafts/domain"
	"label-desk/internal/features/drafts/ports"
)

// DraftServiceImpl implements ports.DraftService.
type DraftServiceImpl struct {
	repo ports.DraftRepository
	ttl  time.Duration
}

// NewDraftService creates a new DraftServiceImpl. Drafts expire after ttl.
func NewDraftService(repo ports.DraftRepository, ttl time.Duration) *DraftServiceImpl {
	return &DraftServiceImpl{
		repo: repo,
		ttl:  ttl,
	}
}

// SaveDraft replaces the draft stored under id.
func (s *DraftServiceImpl) SaveDraft(ctx context.Context, id string, draft domain.Draft) (*domain.Draft, error) {
	d, err := domain.NewDraft(id, draft)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, d, s.ttl); err != nil {
		return nil, fmt.Errorf("service: failed to save draft: %w", err)
	}

	return d, nil
}

// GetDraft retrieves the draft stored under id.
func (s *DraftServiceImpl) GetDraft(ctx context.Context, id string) (*domain.Draft, error) {
	d, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrDraftNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("service: failed to get draft: %w", err)
	}

	return d, nil
}

// RemoveDraft deletes the draft stored under id.
func (s *DraftServiceImpl) RemoveDraft(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service: failed to remove draft: %w", err)
	}

	return nil
}
