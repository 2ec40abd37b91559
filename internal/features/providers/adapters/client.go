package adapter

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"label-desk/internal/core/httpclient"

	"golang.org/x/time/rate"
)

// restClient is the JSON transport shared by the provider adapters.
// Every call waits on the provider's limiter first.
type restClient struct {
	name    string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	headers http.Header
}

func newRESTClient(name, baseURL string, client *http.Client, requestsPerSecond float64, headers http.Header) *restClient {
	return &restClient{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    client,
		limiter: newLimiter(requestsPerSecond),
		headers: headers,
	}
}

// newLimiter allows requestsPerSecond with no burst. Zero or less disables limiting.
func newLimiter(requestsPerSecond float64) *rate.Limiter {
	if requestsPerSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
}

func (c *restClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		if ctx.Err() == nil {
			// Waiting would run past the deadline.
			return fmt.Errorf("%s rate limiter: %w: %v", c.name, context.DeadlineExceeded, err)
		}
		return fmt.Errorf("%s rate limiter: %w", c.name, err)
	}
	return httpclient.DoJSON(ctx, c.http, method, c.baseURL+path, c.headers, body, out)
}

// flexFloat decodes amounts sent either as JSON numbers or as strings.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", s, err)
	}
	*f = flexFloat(v)
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func joinMessages(messages []string) string {
	return strings.Join(messages, "; ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
