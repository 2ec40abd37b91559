package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// TimeoutMessage is reported for a provider that did not answer in time.
const TimeoutMessage = "Request timed out"

// ProviderError is the failure of one provider in a quote round.
// It encodes as a plain string when the standard quote failed and as
// {"signature": "..."} when only the signature quote failed.
type ProviderError struct {
	Base      string
	Signature string
	// Variants holds failures of other quote types, keyed by type.
	Variants map[string]string
}

// Error implements the error interface.
func (e ProviderError) Error() string {
	if e.Base != "" {
		return e.Base
	}

	parts := make([]string, 0, len(e.Variants)+1)
	if e.Signature != "" {
		parts = append(parts, "signature: "+e.Signature)
	}
	types := make([]string, 0, len(e.Variants))
	for t := range e.Variants {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, t := range types {
		parts = append(parts, t+": "+e.Variants[t])
	}
	return strings.Join(parts, "; ")
}

// MarshalJSON implements json.Marshaler.
func (e ProviderError) MarshalJSON() ([]byte, error) {
	if e.Base != "" {
		return json.Marshal(e.Base)
	}
	m := make(map[string]string, len(e.Variants)+1)
	for t, msg := range e.Variants {
		m[t] = msg
	}
	if e.Signature != "" || len(m) == 0 {
		m["signature"] = e.Signature
	}
	return json.Marshal(m)
}

// UnmarshalJSON accepts both encodings produced by MarshalJSON.
func (e *ProviderError) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*e = ProviderError{Base: s}
		return nil
	}

	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("provider error must be a string or an object: %w", err)
	}
	*e = ProviderError{Signature: m["signature"]}
	delete(m, "signature")
	if len(m) > 0 {
		e.Variants = m
	}
	return nil
}
