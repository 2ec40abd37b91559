// Package parser turns pasted free-text postal addresses into structured addresses.
//
// Parsing is heuristic and tuned for US formats. Multi-line blocks
// ("Name / Street / City, ST ZIP / Country") and single delimited lines
// ("Street, City, ST ZIP") are both accepted.
package parser

import (
	"errors"
	"regexp"
	"strings"

	"label-desk/internal/features/address/domain"
)

// ErrParseFailure is returned when no street, city or ZIP could be recovered.
var ErrParseFailure = errors.New("could not parse address")

var (
	lineBreak = regexp.MustCompile(`\r\n|\r|\n`)
	delimiter = regexp.MustCompile(`[,\t]`)
)

// Parse extracts an address from pasted text.
// The country defaults to US when the text names none.
func Parse(text string) (domain.Address, error) {
	lines := newPool(lineBreak.Split(text, -1))

	var (
		addr domain.Address
		ok   bool
	)
	switch {
	case len(lines) > 1:
		addr, ok = parseLines(lines)
		if !ok {
			addr = parseDelimited(strings.Join(lines, ", "))
		}
	case len(lines) == 1:
		addr = parseDelimited(lines[0])
	}

	if addr.Street == "" && addr.City == "" && addr.Zip == "" {
		return domain.Address{}, ErrParseFailure
	}
	return addr.WithDefaults(), nil
}

// parseLines handles one field group per line. ok is false when no field was found.
func parseLines(lines pool) (domain.Address, bool) {
	var addr domain.Address

	addr.Country, lines = takeCountries(lines)

	var found bool
	addr.State, addr.Zip, addr.City, lines, found = takeStateZipCity(lines)
	if !found {
		addr.Zip, lines = takeZip(lines, topDown)
		addr.State, lines = takeState(lines, bottomUp)
		addr.City, lines = takeCity(lines)
	}

	// Cuts can leave a bare country name behind, as in "CA 93203 USA".
	if country, rest := takeCountries(lines); country != "" {
		lines = rest
		if addr.Country == "" {
			addr.Country = country
		}
	}

	if len(lines) > 0 && !startsWithDigit(lines[0]) {
		addr.Name, lines = lines[0], lines.without(0)
	}
	addr.Street = strings.Join(lines, ", ")

	ok := addr.Name != "" || addr.Street != "" || addr.City != "" || addr.State != "" || addr.Zip != ""
	return addr, ok
}

// parseDelimited handles a single comma or tab separated line.
// Parts left after removing ZIP and state are assigned by position.
func parseDelimited(line string) domain.Address {
	var addr domain.Address

	parts := newPool(delimiter.Split(line, -1))
	addr.Country, parts = takeCountries(parts)
	addr.Zip, parts = takeZip(parts, bottomUp)
	addr.State, parts = takeState(parts, bottomUp)

	switch n := len(parts); {
	case n >= 3:
		addr.Name = parts[0]
		addr.Street = strings.Join(parts[1:n-1], ", ")
		addr.City = parts[n-1]
	case n == 2 && startsWithDigit(parts[0]):
		addr.Street, addr.City = parts[0], parts[1]
	case n == 2:
		addr.Name, addr.Street = parts[0], parts[1]
	case n == 1:
		addr.Street = parts[0]
	}
	return addr
}
