package domain

import (
	"fmt"
	"math"
	"strings"
)

// Surcharge is what a carrier charges for signature confirmation.
type Surcharge struct {
	Standard float64 `json:"standard"`
	Adult    float64 `json:"adult"`
}

// signatureSurcharges is keyed by upper-cased carrier name.
var signatureSurcharges = map[string]Surcharge{
	"USPS":  {Standard: 3.50, Adult: 8.75},
	"UPS":   {Standard: 6.60, Adult: 8.05},
	"FEDEX": {Standard: 7.25, Adult: 8.50},
	"DHL":   {Standard: 5.75, Adult: 7.50},
}

var defaultSurcharge = Surcharge{Standard: 5.00, Adult: 7.00}

// samePriceTolerance is the difference under which two amounts are the same price.
const samePriceTolerance = 0.01

// SurchargeFor returns the signature fees of a carrier, or the default entry.
func SurchargeFor(carrier string) Surcharge {
	if s, ok := signatureSurcharges[strings.ToUpper(strings.TrimSpace(carrier))]; ok {
		return s
	}
	return defaultSurcharge
}

// SignaturePrice is the signature price shown for a row.
type SignaturePrice struct {
	Amount float64 `json:"amount"`
	// Fee is the surcharge added when the provider did not price the signature itself.
	Fee float64 `json:"fee,omitempty"`
	// Note is the annotation shown next to a synthesized price.
	Note string `json:"note,omitempty"`
}

// Synthesized reports whether the amount was derived from the surcharge table.
func (p SignaturePrice) Synthesized() bool {
	return p.Note != ""
}

// PriceSignature returns the signature price to display for a row.
// When the provider returned the same amount for both quotes, the carrier's
// standard surcharge is added to the base amount.
func PriceSignature(carrier string, base, signature *RawRateQuote) (SignaturePrice, bool) {
	if signature == nil {
		return SignaturePrice{}, false
	}
	if base == nil || math.Abs(signature.Amount-base.Amount) >= samePriceTolerance {
		return SignaturePrice{Amount: signature.Amount}, true
	}

	fee := SurchargeFor(carrier).Standard
	return SignaturePrice{
		Amount: roundCents(base.Amount + fee),
		Fee:    fee,
		Note:   fmt.Sprintf("+$%.2f sig fee", fee),
	}, true
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
