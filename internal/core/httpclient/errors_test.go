package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"label-desk/internal/core/proxy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "PlainError", body: `{"error": "Invalid API key"}`, want: "Invalid API key"},
		{name: "NestedError", body: `{"error": {"code": "ADDRESS.VERIFY.FAILURE", "message": "Unable to verify address."}}`, want: "Unable to verify address."},
		{name: "Message", body: `{"message": "Rate not found"}`, want: "Rate not found"},
		{name: "Detail", body: `{"detail": "Authentication credentials were not provided."}`, want: "Authentication credentials were not provided."},
		{name: "MessagesText", body: `{"messages": [{"source": "USPS", "text": "Zip code invalid"}]}`, want: "Zip code invalid"},
		{name: "ErrorsList", body: `{"request_id": "abc", "errors": [{"error_code": "invalid", "message": "carrier_id is required"}]}`, want: "carrier_id is required"},
		{name: "PlainText", body: "Service Unavailable", want: "Service Unavailable"},
		{name: "HTML", body: "<html><body>502</body></html>", want: ""},
		{name: "Empty", body: "", want: ""},
		{name: "NoMessage", body: `{"status": "ERROR"}`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractMessage([]byte(tt.body)))
		})
	}
}

func TestDoJSON_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "secret", r.Header.Get("API-Key"))
		w.Write([]byte(`{"id": "rate_1"}`))
	}))
	defer ts.Close()

	var out struct {
		ID string `json:"id"`
	}
	headers := http.Header{}
	headers.Set("API-Key", "secret")

	err := DoJSON(context.Background(), NewClient(time.Second, proxy.Settings{}), "POST", ts.URL, headers, map[string]string{"a": "b"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "rate_1", out.ID)
}

func TestDoJSON_APIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error": {"message": "Parcel weight is required"}}`))
	}))
	defer ts.Close()

	err := DoJSON(context.Background(), NewClient(time.Second, proxy.Settings{}), "GET", ts.URL, nil, nil, nil)
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Equal(t, "Parcel weight is required", apiErr.Error())
}

func TestDoJSON_GenericFallback(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	err := DoJSON(context.Background(), NewClient(time.Second, proxy.Settings{}), "GET", ts.URL, nil, nil, nil)
	require.Error(t, err)
	assert.Equal(t, "request failed with status 502", err.Error())
}

func TestMessageFor(t *testing.T) {
	wrapped := fmt.Errorf("shippo transaction: %w", &APIError{StatusCode: 400, Message: "Rate expired"})
	assert.Equal(t, "Rate expired", MessageFor(wrapped, "purchase failed"))
	assert.Equal(t, "purchase failed", MessageFor(errors.New("dial tcp: refused"), "purchase failed"))
	assert.Equal(t, "purchase failed", MessageFor(&APIError{StatusCode: 500, Message: " "}, "purchase failed"))
}
