package adapter

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	addressdomain "label-desk/internal/features/address/domain"
	labeldomain "label-desk/internal/features/labels/domain"
	ratedomain "label-desk/internal/features/rates/domain"
)

// ShippoName is the provider key of Shippo.
const ShippoName = "shippo"

// ShippoAdapter talks to the Shippo REST API.
type ShippoAdapter struct {
	api *restClient
}

// NewShippoAdapter creates a new ShippoAdapter.
func NewShippoAdapter(baseURL, apiKey string, client *http.Client, requestsPerSecond float64) *ShippoAdapter {
	headers := http.Header{}
	headers.Set("Authorization", "ShippoToken "+apiKey)
	return &ShippoAdapter{
		api: newRESTClient(ShippoName, baseURL, client, requestsPerSecond, headers),
	}
}

// Name implements ports.RateProvider.
func (a *ShippoAdapter) Name() string { return ShippoName }

// SupportsProvider implements ports.LabelPurchaser.
func (a *ShippoAdapter) SupportsProvider(provider string) bool {
	return strings.EqualFold(provider, ShippoName)
}

type shippoAddress struct {
	Name          string `json:"name"`
	Street1       string `json:"street1"`
	Street2       string `json:"street2,omitempty"`
	City          string `json:"city"`
	State         string `json:"state"`
	Zip           string `json:"zip"`
	Country       string `json:"country"`
	Phone         string `json:"phone,omitempty"`
	Email         string `json:"email,omitempty"`
	IsResidential *bool  `json:"is_residential,omitempty"`
	Validate      bool   `json:"validate,omitempty"`
}

type shippoParcel struct {
	Length       string `json:"length"`
	Width        string `json:"width"`
	Height       string `json:"height"`
	DistanceUnit string `json:"distance_unit"`
	Weight       string `json:"weight"`
	MassUnit     string `json:"mass_unit"`
}

type shippoShipmentRequest struct {
	AddressFrom shippoAddress     `json:"address_from"`
	AddressTo   shippoAddress     `json:"address_to"`
	Parcels     []shippoParcel    `json:"parcels"`
	Async       bool              `json:"async"`
	Extra       map[string]string `json:"extra,omitempty"`
}

type shippoMessage struct {
	Source string `json:"source"`
	Text   string `json:"text"`
}

type shippoRate struct {
	ObjectID     string `json:"object_id"`
	Provider     string `json:"provider"`
	ServiceLevel struct {
		Name  string `json:"name"`
		Token string `json:"token"`
	} `json:"servicelevel"`
	Amount        flexFloat `json:"amount"`
	Currency      string    `json:"currency"`
	EstimatedDays *int      `json:"estimated_days"`
	DurationTerms string    `json:"duration_terms"`
	Shipment      string    `json:"shipment"`
}

type shippoShipmentResponse struct {
	ObjectID string          `json:"object_id"`
	Rates    []shippoRate    `json:"rates"`
	Messages []shippoMessage `json:"messages"`
}

func toShippoAddress(a addressdomain.Address) shippoAddress {
	a = a.WithDefaults()
	return shippoAddress{
		Name:          a.Name,
		Street1:       a.Street,
		Street2:       a.Street2,
		City:          a.City,
		State:         a.State,
		Zip:           a.Zip,
		Country:       a.Country,
		Phone:         a.Phone,
		Email:         a.Email,
		IsResidential: a.IsResidential,
	}
}

func fromShippoAddress(a shippoAddress) addressdomain.Address {
	return addressdomain.Address{
		Name:          a.Name,
		Street:        a.Street1,
		Street2:       a.Street2,
		City:          a.City,
		State:         a.State,
		Zip:           a.Zip,
		Country:       a.Country,
		Phone:         a.Phone,
		Email:         a.Email,
		IsResidential: a.IsResidential,
	}
}

// GetRates implements ports.RateProvider.
func (a *ShippoAdapter) GetRates(ctx context.Context, req ratedomain.RateRequest, signature bool) ([]ratedomain.RawRateQuote, error) {
	p := req.Parcel.WithDefaults()
	body := shippoShipmentRequest{
		AddressFrom: toShippoAddress(req.FromAddress),
		AddressTo:   toShippoAddress(req.ToAddress),
		Parcels: []shippoParcel{{
			Length:       formatFloat(p.Length),
			Width:        formatFloat(p.Width),
			Height:       formatFloat(p.Height),
			DistanceUnit: p.DistanceUnit,
			Weight:       formatFloat(p.Weight),
			MassUnit:     p.MassUnit,
		}},
	}
	if signature {
		body.Extra = map[string]string{"signature_confirmation": "STANDARD"}
	}

	var resp shippoShipmentResponse
	if err := a.api.do(ctx, http.MethodPost, "/shipments/", body, &resp); err != nil {
		return nil, fmt.Errorf("shippo shipment: %w", err)
	}

	quotes := make([]ratedomain.RawRateQuote, 0, len(resp.Rates))
	for _, r := range resp.Rates {
		quotes = append(quotes, ratedomain.RawRateQuote{
			Source:        ShippoName,
			Provider:      r.Provider,
			ServiceName:   r.ServiceLevel.Name,
			ServiceToken:  r.ServiceLevel.Token,
			Amount:        float64(r.Amount),
			Currency:      firstNonEmpty(r.Currency, "USD"),
			EstimatedDays: r.EstimatedDays,
			DurationTerms: r.DurationTerms,
			QuoteID:       r.ObjectID,
			ShipmentID:    firstNonEmpty(r.Shipment, resp.ObjectID),
		})
	}
	return quotes, nil
}

type shippoTransactionRequest struct {
	Rate          string `json:"rate"`
	LabelFileType string `json:"label_file_type"`
	Async         bool   `json:"async"`
}

type shippoTransaction struct {
	Status         string          `json:"status"`
	TrackingNumber string          `json:"tracking_number"`
	LabelURL       string          `json:"label_url"`
	Rate           string          `json:"rate"`
	Messages       []shippoMessage `json:"messages"`
}

// PurchaseLabel implements ports.LabelPurchaser.
func (a *ShippoAdapter) PurchaseLabel(ctx context.Context, req labeldomain.PurchaseRequest) (*labeldomain.PurchasedLabel, error) {
	var tx shippoTransaction
	body := shippoTransactionRequest{Rate: req.QuoteID, LabelFileType: strings.ToUpper(req.Format)}
	if err := a.api.do(ctx, http.MethodPost, "/transactions/", body, &tx); err != nil {
		return nil, fmt.Errorf("shippo transaction: %w", err)
	}

	if tx.Status != "SUCCESS" {
		msg := "Unknown error"
		if len(tx.Messages) > 0 {
			msg = tx.Messages[0].Text
		}
		return nil, fmt.Errorf("%w: %s", labeldomain.ErrPurchaseFailed, msg)
	}

	label := &labeldomain.PurchasedLabel{
		TrackingNumber: tx.TrackingNumber,
		LabelURL:       tx.LabelURL,
		Carrier:        "Unknown",
		Service:        "Unknown",
		Currency:       "USD",
	}

	rateID := firstNonEmpty(tx.Rate, req.QuoteID)
	var r shippoRate
	if err := a.api.do(ctx, http.MethodGet, "/rates/"+rateID, nil, &r); err == nil {
		label.Carrier = firstNonEmpty(r.Provider, label.Carrier)
		label.Service = firstNonEmpty(r.ServiceLevel.Name, label.Service)
		label.Cost = float64(r.Amount)
		label.Currency = firstNonEmpty(r.Currency, label.Currency)
	}

	return label, nil
}

type shippoValidatedAddress struct {
	shippoAddress
	ValidationResults struct {
		IsValid  bool            `json:"is_valid"`
		Messages []shippoMessage `json:"messages"`
	} `json:"validation_results"`
}

// ValidateAddress implements ports.AddressValidator.
func (a *ShippoAdapter) ValidateAddress(ctx context.Context, addr addressdomain.Address) (*addressdomain.ValidationResult, error) {
	body := toShippoAddress(addr)
	body.Validate = true

	var resp shippoValidatedAddress
	if err := a.api.do(ctx, http.MethodPost, "/addresses/", body, &resp); err != nil {
		return nil, fmt.Errorf("shippo address: %w", err)
	}

	messages := make([]string, 0, len(resp.ValidationResults.Messages))
	for _, m := range resp.ValidationResults.Messages {
		messages = append(messages, m.Text)
	}

	result := &addressdomain.ValidationResult{
		IsValid:  resp.ValidationResults.IsValid,
		Messages: messages,
		Original: addr,
		Provider: ShippoName,
	}
	if resp.ValidationResults.IsValid {
		suggested := fromShippoAddress(resp.shippoAddress)
		result.Suggested = &suggested
	}
	return result, nil
}
