package domain

import (
	"errors"
	"time"

	addressdomain "label-desk/internal/features/address/domain"
)

// ErrInvalidRecord is returned when a record has no tracking number.
var ErrInvalidRecord = errors.New("tracking_number is required")

// Record is one purchased label kept in the history log.
type Record struct {
	ID                string                 `json:"id"`
	TrackingNumber    string                 `json:"tracking_number"`
	Carrier           string                 `json:"carrier"`
	Service           string                 `json:"service"`
	Cost              float64                `json:"cost"`
	Currency          string                 `json:"currency"`
	Provider          string                 `json:"provider"`
	Signature         bool                   `json:"signature"`
	CreatedAt         string                 `json:"created_at"`
	FromAddress       *addressdomain.Address `json:"from_address,omitempty"`
	ToAddress         *addressdomain.Address `json:"to_address,omitempty"`
	GoogleDriveLink   string                 `json:"google_drive_link,omitempty"`
	GoogleDriveFileID string                 `json:"google_drive_file_id,omitempty"`
	LabelURLTemp      string                 `json:"label_url_temp,omitempty"`
}

// Filter selects records by creation time. Bounds are compared as strings,
// so a bare date like "2026-01-31" works as a prefix bound.
type Filter struct {
	FromDate string
	ToDate   string
}

// Match reports whether r falls inside the filter bounds.
func (f Filter) Match(r Record) bool {
	if f.FromDate != "" && r.CreatedAt < f.FromDate {
		return false
	}
	if f.ToDate != "" && r.CreatedAt > f.ToDate {
		return false
	}
	return true
}

// TimestampLayout is the layout of CreatedAt.
const TimestampLayout = time.RFC3339
