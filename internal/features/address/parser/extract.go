package parser

import (
	"regexp"
	"strings"

	"label-desk/internal/features/address/domain"
)

var (
	zipToken     = regexp.MustCompile(`\b\d{5}(?:-\d{4})?\b`)
	twoLetters   = regexp.MustCompile(`\b[A-Za-z]{2}\b`)
	lettersRun   = regexp.MustCompile(`[A-Za-z]{2}`)
	stateZipCity = regexp.MustCompile(`^([A-Za-z]{2})[\s,]+(\d{5}(?:-\d{4})?)[\s,]+(\S.*)$`)
)

// direction is the order in which pool fragments are scanned.
type direction int

const (
	topDown direction = iota
	bottomUp
)

func (d direction) indexes(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		if d == topDown {
			idx[i] = i
		} else {
			idx[i] = n - 1 - i
		}
	}
	return idx
}

// takeCountries removes fragments that are exactly a known country name.
// The first one found sets the country code.
func takeCountries(p pool) (string, pool) {
	country := ""
	rest := make(pool, 0, len(p))
	for _, f := range p {
		if code, ok := domain.CountryCode(f); ok {
			if country == "" {
				country = code
			}
			continue
		}
		rest = append(rest, f)
	}
	return country, rest
}

// takeStateZipCity matches a whole fragment shaped like "CA 93203 Arvin".
func takeStateZipCity(p pool) (state, zip, city string, rest pool, ok bool) {
	for i, f := range p {
		m := stateZipCity.FindStringSubmatch(f)
		if m == nil || !domain.IsStateCode(m[1]) {
			continue
		}
		city = clean(m[3])
		if _, isCountry := domain.CountryCode(city); isCountry || !meaningful(city) {
			continue
		}
		return strings.ToUpper(m[1]), m[2], city, p.without(i), true
	}
	return "", "", "", p, false
}

// takeZip removes the first ZIP token found scanning fragments in dir.
// Inside a fragment the last token wins. A leading token followed by more
// text reads as a house number and is only taken when nothing else matches.
func takeZip(p pool, dir direction) (string, pool) {
	for _, allowLeading := range []bool{false, true} {
		for _, i := range dir.indexes(len(p)) {
			matches := zipToken.FindAllStringIndex(p[i], -1)
			for j := len(matches) - 1; j >= 0; j-- {
				start, end := matches[j][0], matches[j][1]
				houseNumber := start == 0 && meaningful(p[i][end:])
				if houseNumber && !allowLeading {
					continue
				}
				return p[i][start:end], p.cut(i, start, end)
			}
		}
	}
	return "", p
}

// takeState removes the first state abbreviation found scanning fragments
// in dir, reading tokens right to left inside each fragment.
func takeState(p pool, dir direction) (string, pool) {
	for _, i := range dir.indexes(len(p)) {
		matches := twoLetters.FindAllStringIndex(p[i], -1)
		for j := len(matches) - 1; j >= 0; j-- {
			start, end := matches[j][0], matches[j][1]
			token := p[i][start:end]
			if domain.IsStateCode(token) {
				return strings.ToUpper(token), p.cut(i, start, end)
			}
		}
	}
	return "", p
}

// takeCity removes the lowest fragment that reads like a place name.
func takeCity(p pool) (string, pool) {
	for _, i := range bottomUp.indexes(len(p)) {
		f := p[i]
		if startsWithDigit(f) || !lettersRun.MatchString(f) {
			continue
		}
		if _, isCountry := domain.CountryCode(f); isCountry {
			continue
		}
		return f, p.without(i)
	}
	return "", p
}
