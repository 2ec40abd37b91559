package ports

import (
	"context"
	"time"

	"label-desk/internal/features/drafts/domain"
)

// DraftService defines the primary port for form draft operations.
type DraftService interface {
	SaveDraft(ctx context.Context, id string, draft domain.Draft) (*domain.Draft, error)
	GetDraft(ctx context.Context, id string) (*domain.Draft, error)
	RemoveDraft(ctx context.Context, id string) error
}

// DraftRepository defines the secondary port for draft storage.
type DraftRepository interface {
	Save(ctx context.Context, draft *domain.Draft, ttl time.Duration) error
	// Get returns domain.ErrDraftNotFound when no draft is stored under id.
	Get(ctx context.Context, id string) (*domain.Draft, error)
	Delete(ctx context.Context, id string) error
}
