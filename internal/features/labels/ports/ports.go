package ports

import (
	"context"

	historydomain "label-desk/internal/features/history/domain"
	"label-desk/internal/features/labels/domain"
)

// LabelPurchaser buys labels from one shipping API.
type LabelPurchaser interface {
	// SupportsProvider returns true if this purchaser handles quotes of the named provider.
	SupportsProvider(provider string) bool
	// PurchaseLabel buys the label for a quote.
	PurchaseLabel(ctx context.Context, req domain.PurchaseRequest) (*domain.PurchasedLabel, error)
}

// LabelFetcher downloads a label file from a provider's temporary URL.
type LabelFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// LabelStorage keeps label files permanently.
type LabelStorage interface {
	Store(ctx context.Context, name string, content []byte, properties map[string]string) (*domain.StoredFile, error)
}

// HistoryRecorder appends purchased labels to the history log.
type HistoryRecorder interface {
	Add(ctx context.Context, record historydomain.Record) (*historydomain.Record, error)
}

// PurchaseService buys, stores and records labels.
type PurchaseService interface {
	Purchase(ctx context.Context, req domain.PurchaseRequest) (*domain.PurchaseResult, error)
}
