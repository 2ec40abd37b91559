package proxy

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings_HasProxy(t *testing.T) {
	assert.False(t, Settings{}.HasProxy())
	assert.False(t, Settings{Enabled: true, Hostname: "proxy.local"}.HasProxy())
	assert.False(t, Settings{Enabled: false, Hostname: "proxy.local", Port: 3128}.HasProxy())
	assert.True(t, Settings{Enabled: true, Hostname: "proxy.local", Port: 3128}.HasProxy())
}

func TestSettings_URL(t *testing.T) {
	s := Settings{Enabled: true, Hostname: "proxy.local", Port: 3128, Username: "user", Password: "p@ss"}

	u := s.URL()
	require.NotNil(t, u)
	assert.Equal(t, "proxy.local:3128", u.Host)
	assert.Equal(t, "user", u.User.Username())
	pw, ok := u.User.Password()
	assert.True(t, ok)
	assert.Equal(t, "p@ss", pw)
	assert.Equal(t, "http://proxy.local:3128", s.HostPort())

	assert.Nil(t, Settings{}.URL())
	assert.Empty(t, Settings{}.HostPort())
}

func TestSettings_ProxyFunc(t *testing.T) {
	s := Settings{Enabled: true, Hostname: "proxy.local", Port: 3128}
	req := httptest.NewRequest("GET", "https://api.goshippo.com/shipments/", nil)

	u, err := s.ProxyFunc()(req)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "proxy.local:3128", u.Host)
}
