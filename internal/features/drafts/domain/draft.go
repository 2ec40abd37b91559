package domain

import (
	"errors"
	"regexp"
	"time"

	addressdomain "label-desk/internal/features/address/domain"
)

var (
	ErrInvalidDraftID = errors.New("invalid draft id")
	ErrDraftNotFound  = errors.New("draft not found")
)

var draftIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// Draft is the saved state of the label form. A save replaces the whole draft.
type Draft struct {
	ID          string                 `json:"id"`
	RawText     string                 `json:"raw_text,omitempty"`
	FromAddress *addressdomain.Address `json:"from_address,omitempty"`
	ToAddress   *addressdomain.Address `json:"to_address,omitempty"`
	Parcel      *addressdomain.Parcel  `json:"parcel,omitempty"`
	Signature   bool                   `json:"signature"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// NewDraft stamps a draft with its id and save time, after checking the id.
func NewDraft(id string, d Draft) (*Draft, error) {
	if !draftIDPattern.MatchString(id) {
		return nil, ErrInvalidDraftID
	}

	d.ID = id
	d.UpdatedAt = time.Now()
	return &d, nil
}
