package adapters

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"label-desk/internal/core/httpclient"
)

// maxLabelSize bounds a downloaded label file.
const maxLabelSize = 20 << 20

// ErrLabelTooLarge is returned when a label file exceeds maxLabelSize.
var ErrLabelTooLarge = errors.New("label file too large")

// HTTPLabelFetcher implements ports.LabelFetcher over plain HTTP.
type HTTPLabelFetcher struct {
	client *http.Client
}

// NewHTTPLabelFetcher creates a new HTTPLabelFetcher.
func NewHTTPLabelFetcher(client *http.Client) *HTTPLabelFetcher {
	return &HTTPLabelFetcher{
		client: client,
	}
}

// Fetch downloads the label behind a provider's temporary URL.
func (f *HTTPLabelFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create label request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download label: %w", err)
	}
	defer resp.Body.Close()

	if err := httpclient.CheckResponse(resp); err != nil {
		return nil, fmt.Errorf("failed to download label: %w", err)
	}

	content, err := io.ReadAll(io.LimitReader(resp.Body, maxLabelSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read label: %w", err)
	}
	if len(content) > maxLabelSize {
		return nil, ErrLabelTooLarge
	}
	return content, nil
}
