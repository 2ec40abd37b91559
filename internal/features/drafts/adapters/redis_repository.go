package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"label-desk/internal/core/cache"
	"label-desk/internal/features/drafts/domain"
)

const draftKeyPrefix = "drafts:"

// RedisDraftRepository implements ports.DraftRepository using the cache adaptation.
type RedisDraftRepository struct {
	cache cache.Cache
}

// NewRedisDraftRepository creates a new RedisDraftRepository.
func NewRedisDraftRepository(c cache.Cache) *RedisDraftRepository {
	return &RedisDraftRepository{
		cache: c,
	}
}

// Save stores the draft, replacing any previous one with the same id.
// A ttl of 0 keeps the draft until it is deleted.
func (r *RedisDraftRepository) Save(ctx context.Context, draft *domain.Draft, ttl time.Duration) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}

	if err := r.cache.Set(ctx, draftKeyPrefix+draft.ID, data, ttl); err != nil {
		return fmt.Errorf("failed to save draft to cache: %w", err)
	}

	return nil
}

// Get retrieves a draft from the cache.
func (r *RedisDraftRepository) Get(ctx context.Context, id string) (*domain.Draft, error) {
	data, err := r.cache.Get(ctx, draftKeyPrefix+id)
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, domain.ErrDraftNotFound
		}
		return nil, fmt.Errorf("failed to get draft from cache: %w", err)
	}

	var draft domain.Draft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}

	return &draft, nil
}

// Delete removes a draft from the cache.
func (r *RedisDraftRepository) Delete(ctx context.Context, id string) error {
	if err := r.cache.Delete(ctx, draftKeyPrefix+id); err != nil {
		return fmt.Errorf("failed to delete draft from cache: %w", err)
	}
	return nil
}
