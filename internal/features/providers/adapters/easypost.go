package adapter

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	addressdomain "label-desk/internal/features/address/domain"
	labeldomain "label-desk/internal/features/labels/domain"
	ratedomain "label-desk/internal/features/rates/domain"
)

// EasyPostName is the provider key of EasyPost.
const EasyPostName = "easypost"

const (
	ouncesPerPound    = 16
	ouncesPerKilogram = 35.274
	centimetersInInch = 2.54
)

// EasyPostAdapter talks to the EasyPost v2 REST API.
type EasyPostAdapter struct {
	api *restClient
}

// NewEasyPostAdapter creates a new EasyPostAdapter. The API key is sent as basic auth user.
func NewEasyPostAdapter(baseURL, apiKey string, client *http.Client, requestsPerSecond float64) *EasyPostAdapter {
	headers := http.Header{}
	headers.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(apiKey+":")))
	return &EasyPostAdapter{
		api: newRESTClient(EasyPostName, baseURL, client, requestsPerSecond, headers),
	}
}

// Name implements ports.RateProvider.
func (a *EasyPostAdapter) Name() string { return EasyPostName }

// SupportsProvider implements ports.LabelPurchaser.
func (a *EasyPostAdapter) SupportsProvider(provider string) bool {
	return strings.EqualFold(provider, EasyPostName)
}

type easyPostAddress struct {
	Name        string `json:"name"`
	Street1     string `json:"street1"`
	Street2     string `json:"street2,omitempty"`
	City        string `json:"city"`
	State       string `json:"state"`
	Zip         string `json:"zip"`
	Country     string `json:"country"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	Residential *bool  `json:"residential,omitempty"`
}

// easyPostParcel is in inches and ounces.
type easyPostParcel struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Weight float64 `json:"weight"`
}

type easyPostShipment struct {
	ToAddress   easyPostAddress   `json:"to_address"`
	FromAddress easyPostAddress   `json:"from_address"`
	Parcel      easyPostParcel    `json:"parcel"`
	Options     map[string]string `json:"options,omitempty"`
}

type easyPostRate struct {
	ID           string    `json:"id"`
	Carrier      string    `json:"carrier"`
	Service      string    `json:"service"`
	Rate         flexFloat `json:"rate"`
	Currency     string    `json:"currency"`
	DeliveryDays *int      `json:"delivery_days"`
	ShipmentID   string    `json:"shipment_id"`
}

type easyPostShipmentResponse struct {
	ID           string         `json:"id"`
	Rates        []easyPostRate `json:"rates"`
	TrackingCode string         `json:"tracking_code"`
	PostageLabel *struct {
		LabelURL    string `json:"label_url"`
		LabelPDFURL string `json:"label_pdf_url"`
		LabelZPLURL string `json:"label_zpl_url"`
	} `json:"postage_label"`
	SelectedRate *easyPostRate `json:"selected_rate"`
}

func toEasyPostAddress(a addressdomain.Address) easyPostAddress {
	a = a.WithDefaults()
	return easyPostAddress{
		Name:        a.Name,
		Street1:     a.Street,
		Street2:     a.Street2,
		City:        a.City,
		State:       a.State,
		Zip:         a.Zip,
		Country:     a.Country,
		Phone:       a.Phone,
		Email:       a.Email,
		Residential: a.IsResidential,
	}
}

func fromEasyPostAddress(a easyPostAddress) addressdomain.Address {
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
		IsResidential: a.Residential,
	}
}

func toEasyPostParcel(p addressdomain.Parcel) easyPostParcel {
	p = p.WithDefaults()
	out := easyPostParcel{Length: p.Length, Width: p.Width, Height: p.Height, Weight: p.Weight * ouncesPerPound}
	if p.DistanceUnit == "cm" {
		out.Length /= centimetersInInch
		out.Width /= centimetersInInch
		out.Height /= centimetersInInch
	}
	if p.MassUnit == "kg" {
		out.Weight = p.Weight * ouncesPerKilogram
	}
	return out
}

// GetRates implements ports.RateProvider.
func (a *EasyPostAdapter) GetRates(ctx context.Context, req ratedomain.RateRequest, signature bool) ([]ratedomain.RawRateQuote, error) {
	shipment := easyPostShipment{
		ToAddress:   toEasyPostAddress(req.ToAddress),
		FromAddress: toEasyPostAddress(req.FromAddress),
		Parcel:      toEasyPostParcel(req.Parcel),
	}
	if signature {
		shipment.Options = map[string]string{"delivery_confirmation": "SIGNATURE"}
	}

	var resp easyPostShipmentResponse
	body := map[string]interface{}{"shipment": shipment}
	if err := a.api.do(ctx, http.MethodPost, "/shipments", body, &resp); err != nil {
		return nil, fmt.Errorf("easypost shipment: %w", err)
	}

	quotes := make([]ratedomain.RawRateQuote, 0, len(resp.Rates))
	for _, r := range resp.Rates {
		quotes = append(quotes, ratedomain.RawRateQuote{
			Source:        EasyPostName,
			Provider:      r.Carrier,
			Carrier:       r.Carrier,
			ServiceName:   r.Service,
			ServiceToken:  r.Service,
			Amount:        float64(r.Rate),
			Currency:      firstNonEmpty(r.Currency, "USD"),
			EstimatedDays: r.DeliveryDays,
			QuoteID:       r.ID,
			ShipmentID:    firstNonEmpty(r.ShipmentID, resp.ID),
		})
	}
	return quotes, nil
}

// PurchaseLabel implements ports.LabelPurchaser.
// The quote only names a rate, so its shipment is looked up first.
func (a *EasyPostAdapter) PurchaseLabel(ctx context.Context, req labeldomain.PurchaseRequest) (*labeldomain.PurchasedLabel, error) {
	var r easyPostRate
	if err := a.api.do(ctx, http.MethodGet, "/rates/"+url.PathEscape(req.QuoteID), nil, &r); err != nil {
		return nil, fmt.Errorf("easypost rate: %w", err)
	}
	if r.ShipmentID == "" {
		return nil, fmt.Errorf("%w: rate %s has no shipment", labeldomain.ErrPurchaseFailed, req.QuoteID)
	}

	var bought easyPostShipmentResponse
	path := "/shipments/" + url.PathEscape(r.ShipmentID)
	body := map[string]interface{}{"rate": map[string]string{"id": req.QuoteID}}
	if err := a.api.do(ctx, http.MethodPost, path+"/buy", body, &bought); err != nil {
		return nil, fmt.Errorf("easypost buy: %w", err)
	}
	if bought.PostageLabel == nil {
		return nil, fmt.Errorf("%w: no postage label returned", labeldomain.ErrPurchaseFailed)
	}

	labelURL := bought.PostageLabel.LabelURL
	switch strings.ToUpper(req.Format) {
	case "PDF", "ZPL":
		var converted easyPostShipmentResponse
		query := "?file_format=" + strings.ToLower(req.Format)
		if err := a.api.do(ctx, http.MethodGet, path+"/label"+query, nil, &converted); err == nil && converted.PostageLabel != nil {
			labelURL = firstNonEmpty(converted.PostageLabel.LabelPDFURL, converted.PostageLabel.LabelZPLURL, labelURL)
		}
	}

	label := &labeldomain.PurchasedLabel{
		TrackingNumber: bought.TrackingCode,
		LabelURL:       labelURL,
		Carrier:        "Unknown",
		Service:        "Unknown",
		Currency:       "USD",
	}
	if s := bought.SelectedRate; s != nil {
		label.Carrier = firstNonEmpty(s.Carrier, label.Carrier)
		label.Service = firstNonEmpty(s.Service, label.Service)
		label.Cost = float64(s.Rate)
		label.Currency = firstNonEmpty(s.Currency, label.Currency)
	}
	return label, nil
}

type easyPostVerifiedAddress struct {
	easyPostAddress
	Verifications struct {
		Delivery *struct {
			Success bool `json:"success"`
			Errors  []struct {
				Message string `json:"message"`
			} `json:"errors"`
		} `json:"delivery"`
	} `json:"verifications"`
}

// ValidateAddress implements ports.AddressValidator.
func (a *EasyPostAdapter) ValidateAddress(ctx context.Context, addr addressdomain.Address) (*addressdomain.ValidationResult, error) {
	body := map[string]interface{}{
		"address": toEasyPostAddress(addr),
		"verify":  []string{"delivery"},
	}

	var resp easyPostVerifiedAddress
	if err := a.api.do(ctx, http.MethodPost, "/addresses", body, &resp); err != nil {
		return nil, fmt.Errorf("easypost address: %w", err)
	}

	result := &addressdomain.ValidationResult{
		Messages: []string{},
		Original: addr,
		Provider: EasyPostName,
	}
	if d := resp.Verifications.Delivery; d != nil {
		result.IsValid = d.Success
		for _, e := range d.Errors {
			result.Messages = append(result.Messages, e.Message)
		}
	}
	if result.IsValid {
		suggested := fromEasyPostAddress(resp.easyPostAddress)
		result.Suggested = &suggested
	}
	return result, nil
}
