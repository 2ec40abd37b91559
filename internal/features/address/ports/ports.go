package ports

import (
	"context"

	"label-desk/internal/features/address/domain"
)

// AddressValidator checks an address against a provider's address database.
type AddressValidator interface {
	// Name is the provider name used in requests ("shippo", "easypost", ...).
	Name() string
	// ValidateAddress returns the provider's verdict and suggested correction.
	ValidateAddress(ctx context.Context, addr domain.Address) (*domain.ValidationResult, error)
}

// ValidationService picks a validator and runs the local format checks.
type ValidationService interface {
	Validate(ctx context.Context, addr domain.Address, provider string) (*domain.ValidationResult, error)
}
