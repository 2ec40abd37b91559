package httpclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// APIError is a non-2xx answer from an external API.
type APIError struct {
	// StatusCode is the HTTP status returned by the API.
	StatusCode int
	// Message is the most specific message found in the response body.
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// CheckResponse returns an *APIError for any non-2xx response and nil otherwise.
// The response body is consumed on error.
func CheckResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	msg := ExtractMessage(body)
	if msg == "" {
		msg = fmt.Sprintf("request failed with status %d", resp.StatusCode)
	}

	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}

// ExtractMessage digs the most specific human readable message out of an error payload.
// It understands the nested shapes used by the shipping APIs:
// {"error": "..."}, {"error": {"message": "..."}}, {"message": "..."}, {"detail": "..."},
// {"messages": [{"text": "..."}]} and {"errors": [{"message": "..."}]}.
// Plain text bodies are returned trimmed. It returns "" when nothing usable is found.
func ExtractMessage(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}

	var payload interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		if len(trimmed) > 200 || strings.HasPrefix(trimmed, "<") {
			return ""
		}
		return trimmed
	}

	return messageFrom(payload)
}

func messageFrom(v interface{}) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case []interface{}:
		for _, item := range val {
			if msg := messageFrom(item); msg != "" {
				return msg
			}
		}
	case map[string]interface{}:
		for _, key := range []string{"error", "message", "text", "detail", "messages", "errors"} {
			if nested, ok := val[key]; ok {
				if msg := messageFrom(nested); msg != "" {
					return msg
				}
			}
		}
	}
	return ""
}

// MessageFor returns the message of the first *APIError in err's chain,
// or fallback when there is none.
func MessageFor(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && strings.TrimSpace(apiErr.Message) != "" {
		return apiErr.Message
	}
	return fallback
}
