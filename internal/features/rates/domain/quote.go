package domain

import (
	"errors"

	addressdomain "label-desk/internal/features/address/domain"
)

// ErrNoRates is returned when no provider produced a usable quote.
var ErrNoRates = errors.New("no rates returned by any provider")

// RawRateQuote is one quote as returned by a rate provider.
type RawRateQuote struct {
	// Source is the rate provider that issued the quote (shippo, easypost, ...).
	Source string `json:"source"`
	// Provider is the carrier label reported by the rate provider (USPS, UPS, ...).
	Provider string `json:"provider,omitempty"`
	// Carrier is the carrier name when the rate provider reports it separately.
	Carrier       string  `json:"carrier,omitempty"`
	ServiceName   string  `json:"service_name"`
	ServiceToken  string  `json:"service_token,omitempty"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency,omitempty"`
	EstimatedDays *int    `json:"estimated_days,omitempty"`
	DurationTerms string  `json:"duration_terms,omitempty"`
	// QuoteID is passed back to the rate provider to buy the label.
	QuoteID    string `json:"quote_id"`
	ShipmentID string `json:"shipment_id,omitempty"`
}

// CarrierKey is the carrier a quote is grouped under.
func (q RawRateQuote) CarrierKey() string {
	switch {
	case q.Provider != "":
		return q.Provider
	case q.Carrier != "":
		return q.Carrier
	default:
		return "Unknown"
	}
}

// ServiceKey is the service a quote is grouped under within its carrier.
func (q RawRateQuote) ServiceKey() string {
	if q.ServiceToken != "" {
		return q.ServiceToken
	}
	return q.ServiceName
}

// RateQuoteSet holds the standard and signature-required quotes of one provider.
type RateQuoteSet struct {
	Base      []RawRateQuote `json:"base"`
	Signature []RawRateQuote `json:"signature"`
}

// RateRequest is the input of a quote round.
type RateRequest struct {
	FromAddress addressdomain.Address `json:"from_address"`
	ToAddress   addressdomain.Address `json:"to_address"`
	Parcel      addressdomain.Parcel  `json:"parcel"`
}

// RateResult is the answer of a quote round.
type RateResult struct {
	// Data holds the raw quotes of every provider that answered.
	Data map[string]RateQuoteSet `json:"data"`
	// Errors holds the failure of every provider that did not fully answer.
	Errors map[string]ProviderError `json:"errors"`
	// Carriers holds the reconciled display table of every provider in Data.
	Carriers map[string][]CarrierTable `json:"carriers"`
	// Cached is set when the result was served from the quote cache.
	Cached bool `json:"cached"`
}
