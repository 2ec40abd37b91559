package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"label-desk/internal/features/rates/domain"
	"label-desk/internal/features/rates/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRateService is a mock implementation of ports.RateService
type MockRateService struct {
	mock.Mock
}

func (m *MockRateService) GetRates(ctx context.Context, req domain.RateRequest) (*domain.RateResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateResult), args.Error(1)
}

func setupApp(svc *MockRateService) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("requestid", "test-ray-id")
		return c.Next()
	})
	app.Post("/rates", NewRateHandler(svc).GetRates)
	return app
}

const body = `{
	"to_address": {"name": "John Doe", "street": "123 Main St", "city": "New York", "state": "NY", "zip": "10001"},
	"parcel": {"length": 10, "width": 8, "height": 4, "weight": 2}
}`

func post(t *testing.T, app *fiber.App, payload string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest("POST", "/rates", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var raw json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	return resp.StatusCode, raw
}

func TestRateHandler_GetRates(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockRateService)
		result := &domain.RateResult{
			Data:   map[string]domain.RateQuoteSet{},
			Errors: map[string]domain.ProviderError{"easyship": {Base: domain.TimeoutMessage}},
			Carriers: map[string][]domain.CarrierTable{"shippo": {{
				Carrier: "USPS",
				Rows:    []domain.RateRow{{Carrier: "USPS", ServiceToken: "usps_priority", AdultSignatureFee: 8.75}},
			}}},
		}
		svc.On("GetRates", mock.Anything, mock.MatchedBy(func(req domain.RateRequest) bool {
			return req.ToAddress.Zip == "10001" && req.Parcel.Weight == 2
		})).Return(result, nil).Once()

		status, raw := post(t, setupApp(svc), body)
		assert.Equal(t, fiber.StatusOK, status)

		var got domain.RateResult
		require.NoError(t, json.Unmarshal(raw, &got))
		require.Len(t, got.Carriers["shippo"], 1)
		assert.Equal(t, "USPS", got.Carriers["shippo"][0].Carrier)
		assert.Equal(t, 8.75, got.Carriers["shippo"][0].Rows[0].AdultSignatureFee)
		assert.Equal(t, domain.TimeoutMessage, got.Errors["easyship"].Base)
		svc.AssertExpectations(t)
	})

	t.Run("Invalid Body", func(t *testing.T) {
		svc := new(MockRateService)
		status, raw := post(t, setupApp(svc), `{not json`)
		assert.Equal(t, fiber.StatusBadRequest, status)

		var got ErrorResponse
		require.NoError(t, json.Unmarshal(raw, &got))
		assert.Equal(t, "test-ray-id", got.RayID)
		svc.AssertNotCalled(t, "GetRates", mock.Anything, mock.Anything)
	})

	t.Run("Invalid Parcel", func(t *testing.T) {
		svc := new(MockRateService)
		svc.On("GetRates", mock.Anything, mock.Anything).Return(nil, service.ErrInvalidParcel).Once()

		status, raw := post(t, setupApp(svc), body)
		assert.Equal(t, fiber.StatusBadRequest, status)

		var got ErrorResponse
		require.NoError(t, json.Unmarshal(raw, &got))
		assert.Equal(t, service.ErrInvalidParcel.Error(), got.Message)
	})

	t.Run("No Rates", func(t *testing.T) {
		svc := new(MockRateService)
		result := &domain.RateResult{Errors: map[string]domain.ProviderError{"shippo": {Base: "Invalid API key"}}}
		svc.On("GetRates", mock.Anything, mock.Anything).Return(result, domain.ErrNoRates).Once()

		status, raw := post(t, setupApp(svc), body)
		assert.Equal(t, fiber.StatusBadGateway, status)

		var got ErrorResponse
		require.NoError(t, json.Unmarshal(raw, &got))
		assert.Equal(t, "Invalid API key", got.Errors["shippo"].Base)
		assert.Equal(t, "test-ray-id", got.RayID)
	})

	t.Run("Unexpected Error", func(t *testing.T) {
		svc := new(MockRateService)
		svc.On("GetRates", mock.Anything, mock.Anything).Return(nil, errors.New("boom")).Once()

		status, _ := post(t, setupApp(svc), body)
		assert.Equal(t, fiber.StatusInternalServerError, status)
	})
}
