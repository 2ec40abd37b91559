package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"label-desk/internal/features/address/domain"
	"label-desk/internal/features/address/ports"
)

// AutoProvider lets the service pick the first configured validator.
const AutoProvider = "auto"

// LocalProvider is reported when the address failed the format checks
// and no provider was called.
const LocalProvider = "local"

var (
	// ErrNoValidator is returned when no validation provider is configured.
	ErrNoValidator = errors.New("no validation provider configured")
	// ErrUnknownProvider is returned when the requested provider is not configured.
	ErrUnknownProvider = errors.New("unknown validation provider")
)

// ValidationService checks addresses locally and then with a provider.
type ValidationService struct {
	validators []ports.AddressValidator
}

// NewValidationService creates a new ValidationService.
// With provider "auto" the first validator in the list is used.
func NewValidationService(validators []ports.AddressValidator) *ValidationService {
	return &ValidationService{
		validators: validators,
	}
}

// Validate runs the local format checks and, if they pass, asks the provider.
// A format problem is a result, not an error.
func (s *ValidationService) Validate(ctx context.Context, addr domain.Address, provider string) (*domain.ValidationResult, error) {
	addr = addr.WithDefaults()

	if problems := addr.Problems(); len(problems) > 0 {
		return &domain.ValidationResult{
			IsValid:  false,
			Messages: problems,
			Original: addr,
			Provider: LocalProvider,
		}, nil
	}

	validator, err := s.pick(provider)
	if err != nil {
		return nil, err
	}

	result, err := validator.ValidateAddress(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("failed to validate address with %s: %w", validator.Name(), err)
	}
	if result.Messages == nil {
		result.Messages = []string{}
	}
	return result, nil
}

func (s *ValidationService) pick(provider string) (ports.AddressValidator, error) {
	if len(s.validators) == 0 {
		return nil, ErrNoValidator
	}

	provider = strings.TrimSpace(provider)
	if provider == "" || strings.EqualFold(provider, AutoProvider) {
		return s.validators[0], nil
	}

	for _, v := range s.validators {
		if strings.EqualFold(v.Name(), provider) {
			return v, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
}
