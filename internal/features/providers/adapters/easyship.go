package adapter

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	addressdomain "label-desk/internal/features/address/domain"
	ratedomain "label-desk/internal/features/rates/domain"
)

// EasyshipName is the provider key of Easyship.
const EasyshipName = "easyship"

// easyshipContactNameLimit is the longest contact name Easyship accepts.
const easyshipContactNameLimit = 22

// EasyshipAdapter talks to the Easyship public API. It only quotes:
// Easyship offers no signature option and labels are bought in its dashboard.
type EasyshipAdapter struct {
	api *restClient
}

// NewEasyshipAdapter creates a new EasyshipAdapter.
func NewEasyshipAdapter(baseURL, apiKey string, client *http.Client, requestsPerSecond float64) *EasyshipAdapter {
	headers := http.Header{}
	headers.Set("Authorization", "Bearer "+apiKey)
	return &EasyshipAdapter{
		api: newRESTClient(EasyshipName, baseURL, client, requestsPerSecond, headers),
	}
}

// Name implements ports.RateProvider.
func (a *EasyshipAdapter) Name() string { return EasyshipName }

type easyshipAddress struct {
	Line1         string `json:"line_1"`
	Line2         string `json:"line_2,omitempty"`
	City          string `json:"city"`
	State         string `json:"state"`
	PostalCode    string `json:"postal_code"`
	CountryAlpha2 string `json:"country_alpha2"`
	ContactName   string `json:"contact_name"`
	ContactPhone  string `json:"contact_phone,omitempty"`
	ContactEmail  string `json:"contact_email,omitempty"`
}

func toEasyshipAddress(a addressdomain.Address) easyshipAddress {
	a = a.WithDefaults()
	name := []rune(a.Name)
	if len(name) > easyshipContactNameLimit {
		name = name[:easyshipContactNameLimit]
	}
	return easyshipAddress{
		Line1:         a.Street,
		Line2:         a.Street2,
		City:          a.City,
		State:         a.State,
		PostalCode:    a.Zip,
		CountryAlpha2: a.Country,
		ContactName:   string(name),
		ContactPhone:  a.Phone,
		ContactEmail:  a.Email,
	}
}

type easyshipRate struct {
	CourierID          string    `json:"courier_id"`
	CourierName        string    `json:"courier_name"`
	CourierDisplayName string    `json:"courier_display_name"`
	FullDescription    string    `json:"full_description"`
	TotalCharge        flexFloat `json:"total_charge"`
	Currency           string    `json:"currency"`
	MinDeliveryTime    *int      `json:"min_delivery_time"`
	MaxDeliveryTime    *int      `json:"max_delivery_time"`
}

// courier returns the carrier name, guessed from the description when absent.
func (r easyshipRate) courier(service string) string {
	switch {
	case r.CourierName != "":
		return r.CourierName
	case strings.Contains(service, " - "):
		return strings.TrimSpace(strings.SplitN(service, " - ", 2)[0])
	case strings.HasPrefix(service, "FedEx"):
		return "FedEx"
	default:
		return "Unknown"
	}
}

// GetRates implements ports.RateProvider.
func (a *EasyshipAdapter) GetRates(ctx context.Context, req ratedomain.RateRequest, signature bool) ([]ratedomain.RawRateQuote, error) {
	if signature {
		return []ratedomain.RawRateQuote{}, nil
	}

	p := req.Parcel.WithDefaults()
	body := map[string]interface{}{
		"origin_address":      toEasyshipAddress(req.FromAddress),
		"destination_address": toEasyshipAddress(req.ToAddress),
		"parcels": []map[string]interface{}{{
			"box": map[string]float64{"length": p.Length, "width": p.Width, "height": p.Height},
			"items": []map[string]interface{}{{
				"actual_weight":          p.Weight,
				"category":               "general",
				"declared_currency":      "USD",
				"declared_customs_value": 50.0,
				"description":            "Package",
				"quantity":               1,
				"hs_code":                "9999.99.99",
			}},
		}},
		"incoterms": "DDU",
		"insurance": map[string]bool{"is_insured": false},
	}

	var resp struct {
		Rates []easyshipRate `json:"rates"`
	}
	if err := a.api.do(ctx, http.MethodPost, "/rates", body, &resp); err != nil {
		return nil, fmt.Errorf("easyship rates: %w", err)
	}

	quotes := make([]ratedomain.RawRateQuote, 0, len(resp.Rates))
	for _, r := range resp.Rates {
		service := firstNonEmpty(r.FullDescription, r.CourierDisplayName)
		q := ratedomain.RawRateQuote{
			Source:        EasyshipName,
			Provider:      r.courier(service),
			ServiceName:   service,
			ServiceToken:  r.CourierID,
			Amount:        float64(r.TotalCharge),
			Currency:      firstNonEmpty(r.Currency, "USD"),
			EstimatedDays: r.MinDeliveryTime,
			QuoteID:       r.CourierID,
		}
		if r.MinDeliveryTime != nil {
			upper := "?"
			if r.MaxDeliveryTime != nil {
				upper = fmt.Sprint(*r.MaxDeliveryTime)
			}
			q.DurationTerms = fmt.Sprintf("%d-%s days", *r.MinDeliveryTime, upper)
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}
