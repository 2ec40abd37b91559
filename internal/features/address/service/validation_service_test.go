package service

import (
	"context"
	"errors"
	"testing"

	"label-desk/internal/features/address/domain"
	"label-desk/internal/features/address/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockValidator is a mock implementation of ports.AddressValidator
type MockValidator struct {
	mock.Mock
	name string
}

func (m *MockValidator) Name() string { return m.name }

func (m *MockValidator) ValidateAddress(ctx context.Context, addr domain.Address) (*domain.ValidationResult, error) {
	args := m.Called(ctx, addr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ValidationResult), args.Error(1)
}

var address = domain.Address{Name: "John Doe", Street: "123 Main St", City: "New York", State: "ny", Zip: "10001"}

func TestValidationService_Auto(t *testing.T) {
	shippo := &MockValidator{name: "shippo"}
	easypost := &MockValidator{name: "easypost"}
	svc := NewValidationService([]ports.AddressValidator{shippo, easypost})

	normalized := address.WithDefaults()
	shippo.On("ValidateAddress", mock.Anything, normalized).
		Return(&domain.ValidationResult{IsValid: true, Original: normalized, Provider: "shippo"}, nil).Once()

	result, err := svc.Validate(context.Background(), address, "auto")
	require.NoError(t, err)
	assert.True(t, result.IsValid)
	assert.Equal(t, "shippo", result.Provider)
	assert.NotNil(t, result.Messages)

	shippo.AssertExpectations(t)
	easypost.AssertNotCalled(t, "ValidateAddress", mock.Anything, mock.Anything)
}

func TestValidationService_NamedProvider(t *testing.T) {
	shippo := &MockValidator{name: "shippo"}
	easypost := &MockValidator{name: "easypost"}
	svc := NewValidationService([]ports.AddressValidator{shippo, easypost})

	easypost.On("ValidateAddress", mock.Anything, mock.Anything).
		Return(&domain.ValidationResult{IsValid: false, Messages: []string{"Address not found"}, Provider: "easypost"}, nil).Once()

	result, err := svc.Validate(context.Background(), address, "EasyPost")
	require.NoError(t, err)
	assert.False(t, result.IsValid)
	assert.Equal(t, []string{"Address not found"}, result.Messages)
	easypost.AssertExpectations(t)
}

func TestValidationService_LocalProblemsSkipProvider(t *testing.T) {
	shippo := &MockValidator{name: "shippo"}
	svc := NewValidationService([]ports.AddressValidator{shippo})

	bad := address
	bad.State = "ZZ"

	result, err := svc.Validate(context.Background(), bad, "")
	require.NoError(t, err)
	assert.False(t, result.IsValid)
	assert.Equal(t, LocalProvider, result.Provider)
	assert.Contains(t, result.Messages, "state must be a valid two-letter USPS code")
	shippo.AssertNotCalled(t, "ValidateAddress", mock.Anything, mock.Anything)
}

func TestValidationService_Errors(t *testing.T) {
	t.Run("NoValidator", func(t *testing.T) {
		_, err := NewValidationService(nil).Validate(context.Background(), address, "auto")
		assert.ErrorIs(t, err, ErrNoValidator)
	})

	t.Run("UnknownProvider", func(t *testing.T) {
		svc := NewValidationService([]ports.AddressValidator{&MockValidator{name: "shippo"}})
		_, err := svc.Validate(context.Background(), address, "fedex")
		assert.ErrorIs(t, err, ErrUnknownProvider)
	})

	t.Run("ProviderError", func(t *testing.T) {
		shippo := &MockValidator{name: "shippo"}
		shippo.On("ValidateAddress", mock.Anything, mock.Anything).Return(nil, errors.New("invalid token")).Once()

		_, err := NewValidationService([]ports.AddressValidator{shippo}).Validate(context.Background(), address, "shippo")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid token")
	})
}
