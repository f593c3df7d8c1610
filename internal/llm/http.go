package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"joblocator/internal/extractor"
)

const (
	defaultTimeout = 60 * time.Second
	maxErrorBody   = 500
)

// NewHTTPClient returns an http.Client bounded by timeoutSecs (60s when unset).
func NewHTTPClient(timeoutSecs int) *http.Client {
	timeout := time.Duration(timeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// PostJSON sends body as JSON and returns the response body of a 200 reply.
// A 429 becomes a *RateLimitError and any other status a *StatusError.
func PostJSON(ctx context.Context, client *http.Client, provider, endpoint string, headers map[string]string, body interface{}) ([]byte, error) {
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling %s API: %w", provider, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		baseErr := &StatusError{Provider: provider, StatusCode: resp.StatusCode, Body: errorBody(respBody)}
		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := ParseRetryAfterHeader(resp.Header.Get("Retry-After"))
			return nil, NewRateLimitError(provider, baseErr, retryAfter)
		}
		return nil, baseErr
	}

	return respBody, nil
}

// errorBody keeps at most maxErrorBody characters of a failed response, marking the cut.
func errorBody(body []byte) string {
	s := string(body)
	cut := extractor.Truncate(s, maxErrorBody)
	if len(cut) < len(s) {
		return cut + "..."
	}
	return s
}
