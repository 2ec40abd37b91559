package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_Match(t *testing.T) {
	r := Record{CreatedAt: "2026-02-10T12:00:00Z"}

	assert.True(t, Filter{}.Match(r))
	assert.True(t, Filter{FromDate: "2026-02-10"}.Match(r))
	assert.True(t, Filter{FromDate: "2026-02-01", ToDate: "2026-02-11"}.Match(r))
	assert.False(t, Filter{FromDate: "2026-02-11"}.Match(r))
	assert.False(t, Filter{ToDate: "2026-02-09"}.Match(r))

	// A bare end date sorts before any timestamp of that same day.
	assert.False(t, Filter{ToDate: "2026-02-10"}.Match(r))
}
