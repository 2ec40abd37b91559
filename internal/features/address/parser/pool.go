package parser

import (
	"strings"
	"unicode"
)

// pool is the ordered set of text fragments not yet assigned to a field.
// Every operation returns a new pool and leaves the receiver untouched.
type pool []string

// newPool trims every fragment and drops the ones without a letter or digit.
func newPool(fragments []string) pool {
	p := make(pool, 0, len(fragments))
	for _, f := range fragments {
		if f = clean(f); meaningful(f) {
			p = append(p, f)
		}
	}
	return p
}

// without returns a copy of p with fragment i removed.
func (p pool) without(i int) pool {
	out := make(pool, 0, len(p)-1)
	out = append(out, p[:i]...)
	return append(out, p[i+1:]...)
}

// cut returns a copy of p with text[start:end] removed from fragment i.
// A fragment left without letters or digits is dropped.
func (p pool) cut(i, start, end int) pool {
	rest := clean(p[i][:start] + " " + p[i][end:])
	if !meaningful(rest) {
		return p.without(i)
	}
	out := make(pool, len(p))
	copy(out, p)
	out[i] = rest
	return out
}

// clean collapses whitespace and trims the separators left behind by cuts.
func clean(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	s = strings.ReplaceAll(s, " ,", ",")
	for strings.Contains(s, ",,") {
		s = strings.ReplaceAll(s, ",,", ",")
	}
	return strings.Trim(s, " ,;")
}

func meaningful(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	}) >= 0
}

func startsWithDigit(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}
