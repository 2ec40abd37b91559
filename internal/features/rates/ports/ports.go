package ports

import (
	"context"

	"label-desk/internal/features/rates/domain"
)

// RateProvider quotes a shipment with one shipping API.
type RateProvider interface {
	// Name is the provider name used as key in quote results.
	Name() string
	// GetRates returns the provider's quotes. With signature set, quotes
	// include signature confirmation. Providers without a signature option
	// return an empty list and no error.
	GetRates(ctx context.Context, req domain.RateRequest, signature bool) ([]domain.RawRateQuote, error)
}

// RateService quotes every provider and reconciles the answers.
type RateService interface {
	GetRates(ctx context.Context, req domain.RateRequest) (*domain.RateResult, error)
}
