package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	addressdomain "label-desk/internal/features/address/domain"
	historydomain "label-desk/internal/features/history/domain"
)

var (
	// ErrMissingQuote is returned when a purchase names no quote or provider.
	ErrMissingQuote = errors.New("quote_id and provider are required")
	// ErrProviderNotSupported is returned when no configured provider can buy the quote.
	ErrProviderNotSupported = errors.New("provider not supported for purchase")
	// ErrPurchaseFailed wraps a provider refusing or failing a label purchase.
	ErrPurchaseFailed = errors.New("label purchase failed")
)

// PurchaseRequest buys the label for a previously quoted rate.
type PurchaseRequest struct {
	QuoteID     string                `json:"quote_id"`
	Provider    string                `json:"provider"`
	Format      string                `json:"format,omitempty"`
	FromAddress addressdomain.Address `json:"from_address"`
	ToAddress   addressdomain.Address `json:"to_address"`
	Signature   bool                  `json:"signature"`
}

// PurchasedLabel is what a provider returns after buying a label.
type PurchasedLabel struct {
	TrackingNumber string  `json:"tracking_number"`
	Carrier        string  `json:"carrier"`
	Service        string  `json:"service"`
	Cost           float64 `json:"cost"`
	Currency       string  `json:"currency"`
	// LabelURL is the provider's temporary download link.
	LabelURL string `json:"label_url"`
}

// StoredFile is a label kept in permanent storage.
type StoredFile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Link string `json:"link"`
}

// StorageName builds the permanent file name of a label:
// YYYY-MM-DD_<carrier>[_<service>]_<tracking>_<recipient>.pdf
func StorageName(day time.Time, label PurchasedLabel, recipient string) string {
	if recipient == "" {
		recipient = "Unknown"
	}
	safe := strings.NewReplacer(" ", "_", "/", "_").Replace(recipient)
	if r := []rune(safe); len(r) > 30 {
		safe = string(r[:30])
	}

	service := ""
	if label.Service != "" {
		service = "_" + strings.ReplaceAll(label.Service, "/", "_")
	}

	return fmt.Sprintf("%s_%s%s_%s_%s.pdf", day.Format("2006-01-02"), label.Carrier, service, label.TrackingNumber, safe)
}

// PurchaseResult is the purchased-label record returned to the caller.
// Warning is set when the label was bought but a follow-up step failed.
type PurchaseResult struct {
	historydomain.Record
	Warning string `json:"warning,omitempty"`
}
