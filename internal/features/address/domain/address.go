package domain

import (
	"regexp"
	"strings"
)

// DefaultCountry is assumed when an address carries no country.
const DefaultCountry = "US"

// Address is a postal address as entered in the label form or parsed from pasted text.
type Address struct {
	Name          string `json:"name"`
	Street        string `json:"street"`
	Street2       string `json:"street2,omitempty"`
	City          string `json:"city"`
	State         string `json:"state"`
	Zip           string `json:"zip"`
	Country       string `json:"country"`
	Phone         string `json:"phone,omitempty"`
	Email         string `json:"email,omitempty"`
	IsResidential *bool  `json:"is_residential,omitempty"`
}

// Residential reports whether the address is residential. Unset means residential.
func (a Address) Residential() bool {
	return a.IsResidential == nil || *a.IsResidential
}

// WithDefaults returns a copy with the state upper-cased and the country defaulted.
func (a Address) WithDefaults() Address {
	a.State = strings.ToUpper(strings.TrimSpace(a.State))
	a.Country = strings.TrimSpace(a.Country)
	if a.Country == "" {
		a.Country = DefaultCountry
	}
	return a
}

// Problems returns the local format problems of a US address.
// An empty result does not mean the address is deliverable.
func (a Address) Problems() []string {
	var problems []string
	if strings.TrimSpace(a.Street) == "" {
		problems = append(problems, "street is required")
	}
	if strings.TrimSpace(a.City) == "" {
		problems = append(problems, "city is required")
	}

	country := a.WithDefaults().Country
	if !strings.EqualFold(country, DefaultCountry) {
		return problems
	}

	if !IsStateCode(a.State) {
		problems = append(problems, "state must be a valid two-letter USPS code")
	}
	if !IsZip(a.Zip) {
		problems = append(problems, "zip must be 5 digits or ZIP+4")
	}
	return problems
}

var zipPattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

// IsZip reports whether s is a 5-digit or ZIP+4 code.
func IsZip(s string) bool {
	return zipPattern.MatchString(strings.TrimSpace(s))
}

// stateCodes holds the 50 states plus DC.
var stateCodes = map[string]struct{}{
	"AL": {}, "AK": {}, "AZ": {}, "AR": {}, "CA": {}, "CO": {}, "CT": {}, "DE": {}, "FL": {}, "GA": {},
	"HI": {}, "ID": {}, "IL": {}, "IN": {}, "IA": {}, "KS": {}, "KY": {}, "LA": {}, "ME": {}, "MD": {},
	"MA": {}, "MI": {}, "MN": {}, "MS": {}, "MO": {}, "MT": {}, "NE": {}, "NV": {}, "NH": {}, "NJ": {},
	"NM": {}, "NY": {}, "NC": {}, "ND": {}, "OH": {}, "OK": {}, "OR": {}, "PA": {}, "RI": {}, "SC": {},
	"SD": {}, "TN": {}, "TX": {}, "UT": {}, "VT": {}, "VA": {}, "WA": {}, "WV": {}, "WI": {}, "WY": {},
	"DC": {},
}

// IsStateCode reports whether s is a USPS state or DC abbreviation, ignoring case.
func IsStateCode(s string) bool {
	_, ok := stateCodes[strings.ToUpper(strings.TrimSpace(s))]
	return ok
}

// countryNames maps the recognised country spellings to ISO codes.
var countryNames = map[string]string{
	"united states":  "US",
	"usa":            "US",
	"us":             "US",
	"united kingdom": "GB",
	"uk":             "GB",
	"canada":         "CA",
	"mexico":         "MX",
}

// CountryCode returns the ISO code for a recognised country name, ignoring case.
func CountryCode(name string) (string, bool) {
	code, ok := countryNames[strings.ToLower(strings.TrimSpace(name))]
	return code, ok
}
