package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	addressdomain "label-desk/internal/features/address/domain"
	labeldomain "label-desk/internal/features/labels/domain"
	ratedomain "label-desk/internal/features/rates/domain"
)

// ShipEngineName is the provider key of ShipEngine.
const ShipEngineName = "shipengine"

// ErrNoCarriers is returned when the ShipEngine account has no connected carrier.
var ErrNoCarriers = errors.New("no carriers connected to the ShipEngine account")

// ShipEngineAdapter talks to the ShipEngine v1 REST API.
type ShipEngineAdapter struct {
	api *restClient

	mu         sync.Mutex
	carrierIDs []string
}

// NewShipEngineAdapter creates a new ShipEngineAdapter.
func NewShipEngineAdapter(baseURL, apiKey string, client *http.Client, requestsPerSecond float64) *ShipEngineAdapter {
	headers := http.Header{}
	headers.Set("API-Key", apiKey)
	return &ShipEngineAdapter{
		api: newRESTClient(ShipEngineName, baseURL, client, requestsPerSecond, headers),
	}
}

// Name implements ports.RateProvider.
func (a *ShipEngineAdapter) Name() string { return ShipEngineName }

// SupportsProvider implements ports.LabelPurchaser.
func (a *ShipEngineAdapter) SupportsProvider(provider string) bool {
	return strings.EqualFold(provider, ShipEngineName)
}

type shipEngineAddress struct {
	Name                        string `json:"name"`
	Phone                       string `json:"phone,omitempty"`
	AddressLine1                string `json:"address_line1"`
	AddressLine2                string `json:"address_line2,omitempty"`
	CityLocality                string `json:"city_locality"`
	StateProvince               string `json:"state_province"`
	PostalCode                  string `json:"postal_code"`
	CountryCode                 string `json:"country_code"`
	AddressResidentialIndicator string `json:"address_residential_indicator,omitempty"`
}

type shipEngineAmount struct {
	Currency string    `json:"currency"`
	Amount   flexFloat `json:"amount"`
}

type shipEngineMessage struct {
	Message string `json:"message"`
}

func toShipEngineAddress(a addressdomain.Address) shipEngineAddress {
	a = a.WithDefaults()
	residential := "no"
	if a.Residential() {
		residential = "yes"
	}
	return shipEngineAddress{
		Name:                        a.Name,
		Phone:                       a.Phone,
		AddressLine1:                a.Street,
		AddressLine2:                a.Street2,
		CityLocality:                a.City,
		StateProvince:               a.State,
		PostalCode:                  a.Zip,
		CountryCode:                 a.Country,
		AddressResidentialIndicator: residential,
	}
}

func fromShipEngineAddress(a shipEngineAddress, original addressdomain.Address) addressdomain.Address {
	out := addressdomain.Address{
		Name:    firstNonEmpty(a.Name, original.Name),
		Street:  firstNonEmpty(a.AddressLine1, original.Street),
		Street2: a.AddressLine2,
		City:    firstNonEmpty(a.CityLocality, original.City),
		State:   firstNonEmpty(a.StateProvince, original.State),
		Zip:     firstNonEmpty(a.PostalCode, original.Zip),
		Country: firstNonEmpty(a.CountryCode, original.Country),
		Phone:   firstNonEmpty(a.Phone, original.Phone),
		Email:   original.Email,
	}
	if a.AddressResidentialIndicator == "yes" || a.AddressResidentialIndicator == "no" {
		residential := a.AddressResidentialIndicator == "yes"
		out.IsResidential = &residential
	}
	return out
}

// carriers returns the connected carrier ids, fetched once and kept on success.
func (a *ShipEngineAdapter) carriers(ctx context.Context) ([]string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.carrierIDs != nil {
		return a.carrierIDs, nil
	}

	var resp struct {
		Carriers []struct {
			CarrierID string `json:"carrier_id"`
		} `json:"carriers"`
	}
	if err := a.api.do(ctx, http.MethodGet, "/carriers", nil, &resp); err != nil {
		return nil, fmt.Errorf("shipengine carriers: %w", err)
	}

	ids := make([]string, 0, len(resp.Carriers))
	for _, c := range resp.Carriers {
		if c.CarrierID != "" {
			ids = append(ids, c.CarrierID)
		}
	}
	if len(ids) == 0 {
		return nil, ErrNoCarriers
	}

	a.carrierIDs = ids
	return ids, nil
}

type shipEngineRate struct {
	RateID                string           `json:"rate_id"`
	CarrierFriendlyName   string           `json:"carrier_friendly_name"`
	CarrierCode           string           `json:"carrier_code"`
	ServiceType           string           `json:"service_type"`
	ServiceCode           string           `json:"service_code"`
	ShippingAmount        shipEngineAmount `json:"shipping_amount"`
	ConfirmationAmount    shipEngineAmount `json:"confirmation_amount"`
	OtherAmount           shipEngineAmount `json:"other_amount"`
	EstimatedDeliveryDays *int             `json:"delivery_days"`
	CarrierDeliveryDays   string           `json:"carrier_delivery_days"`
	ShipmentID            string           `json:"shipment_id"`
}

type shipEngineRatesResponse struct {
	ShipmentID   string `json:"shipment_id"`
	RateResponse struct {
		Rates  []shipEngineRate    `json:"rates"`
		Errors []shipEngineMessage `json:"errors"`
	} `json:"rate_response"`
}

// GetRates implements ports.RateProvider.
// The quoted amount includes the confirmation and other fees.
func (a *ShipEngineAdapter) GetRates(ctx context.Context, req ratedomain.RateRequest, signature bool) ([]ratedomain.RawRateQuote, error) {
	carrierIDs, err := a.carriers(ctx)
	if err != nil {
		return nil, err
	}

	p := req.Parcel.WithDefaults()
	weightUnit, dimUnit := "pound", "inch"
	if p.MassUnit == "kg" {
		weightUnit = "kilogram"
	}
	if p.DistanceUnit == "cm" {
		dimUnit = "centimeter"
	}

	confirmation := "none"
	if signature {
		confirmation = "signature"
	}

	body := map[string]interface{}{
		"rate_options": map[string]interface{}{"carrier_ids": carrierIDs},
		"shipment": map[string]interface{}{
			"ship_to":      toShipEngineAddress(req.ToAddress),
			"ship_from":    toShipEngineAddress(req.FromAddress),
			"confirmation": confirmation,
			"packages": []map[string]interface{}{{
				"weight": map[string]interface{}{"value": p.Weight, "unit": weightUnit},
				"dimensions": map[string]interface{}{
					"unit": dimUnit, "length": p.Length, "width": p.Width, "height": p.Height,
				},
			}},
		},
	}

	var resp shipEngineRatesResponse
	if err := a.api.do(ctx, http.MethodPost, "/rates", body, &resp); err != nil {
		return nil, fmt.Errorf("shipengine rates: %w", err)
	}

	rates := resp.RateResponse.Rates
	if len(rates) == 0 && len(resp.RateResponse.Errors) > 0 {
		messages := make([]string, 0, len(resp.RateResponse.Errors))
		for _, e := range resp.RateResponse.Errors {
			messages = append(messages, e.Message)
		}
		return nil, fmt.Errorf("shipengine rates: %s", joinMessages(messages))
	}

	quotes := make([]ratedomain.RawRateQuote, 0, len(rates))
	for _, r := range rates {
		amount := float64(r.ShippingAmount.Amount + r.ConfirmationAmount.Amount + r.OtherAmount.Amount)
		quotes = append(quotes, ratedomain.RawRateQuote{
			Source:        ShipEngineName,
			Provider:      firstNonEmpty(r.CarrierFriendlyName, strings.ToUpper(r.CarrierCode)),
			Carrier:       r.CarrierCode,
			ServiceName:   r.ServiceType,
			ServiceToken:  r.ServiceCode,
			Amount:        amount,
			Currency:      strings.ToUpper(firstNonEmpty(r.ShippingAmount.Currency, "usd")),
			EstimatedDays: r.EstimatedDeliveryDays,
			DurationTerms: r.CarrierDeliveryDays,
			QuoteID:       r.RateID,
			ShipmentID:    firstNonEmpty(r.ShipmentID, resp.ShipmentID),
		})
	}
	return quotes, nil
}

type shipEngineLabel struct {
	TrackingNumber string            `json:"tracking_number"`
	CarrierID      string            `json:"carrier_id"`
	CarrierCode    string            `json:"carrier_code"`
	ServiceCode    string            `json:"service_code"`
	ShipmentCost   shipEngineAmount  `json:"shipment_cost"`
	LabelDownload  map[string]string `json:"label_download"`
}

// PurchaseLabel implements ports.LabelPurchaser.
func (a *ShipEngineAdapter) PurchaseLabel(ctx context.Context, req labeldomain.PurchaseRequest) (*labeldomain.PurchasedLabel, error) {
	format := strings.ToLower(firstNonEmpty(req.Format, "pdf"))
	body := map[string]string{"label_format": format, "label_layout": "4x6"}

	var resp shipEngineLabel
	path := "/labels/rates/" + url.PathEscape(req.QuoteID)
	if err := a.api.do(ctx, http.MethodPost, path, body, &resp); err != nil {
		return nil, fmt.Errorf("shipengine label: %w", err)
	}

	return &labeldomain.PurchasedLabel{
		TrackingNumber: resp.TrackingNumber,
		LabelURL:       firstNonEmpty(resp.LabelDownload[format], resp.LabelDownload["href"]),
		Carrier:        firstNonEmpty(strings.ToUpper(resp.CarrierCode), resp.CarrierID, "Unknown"),
		Service:        firstNonEmpty(resp.ServiceCode, "Unknown"),
		Cost:           float64(resp.ShipmentCost.Amount),
		Currency:       strings.ToUpper(firstNonEmpty(resp.ShipmentCost.Currency, "usd")),
	}, nil
}

type shipEngineValidation struct {
	Status         string              `json:"status"`
	Messages       []shipEngineMessage `json:"messages"`
	MatchedAddress *shipEngineAddress  `json:"matched_address"`
}

// ValidateAddress implements ports.AddressValidator.
// "verified" and "warning" both count as valid.
func (a *ShipEngineAdapter) ValidateAddress(ctx context.Context, addr addressdomain.Address) (*addressdomain.ValidationResult, error) {
	var resp []shipEngineValidation
	body := []shipEngineAddress{toShipEngineAddress(addr)}
	if err := a.api.do(ctx, http.MethodPost, "/addresses/validate", body, &resp); err != nil {
		return nil, fmt.Errorf("shipengine address: %w", err)
	}
	if len(resp) == 0 {
		return nil, fmt.Errorf("shipengine address: empty validation response")
	}

	v := resp[0]
	result := &addressdomain.ValidationResult{
		IsValid:  v.Status == "verified" || v.Status == "warning",
		Messages: make([]string, 0, len(v.Messages)),
		Original: addr,
		Provider: ShipEngineName,
	}
	for _, m := range v.Messages {
		result.Messages = append(result.Messages, m.Message)
	}
	if result.IsValid && v.MatchedAddress != nil {
		suggested := fromShipEngineAddress(*v.MatchedAddress, addr)
		result.Suggested = &suggested
	}
	return result, nil
}
