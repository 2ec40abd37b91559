package domain

// ValidationResult is the answer of an address validation provider.
type ValidationResult struct {
	IsValid   bool     `json:"is_valid"`
	Messages  []string `json:"messages"`
	Original  Address  `json:"original"`
	Suggested *Address `json:"suggested"`
	// Provider is the service that validated the address, or "local".
	Provider string `json:"provider"`
}
