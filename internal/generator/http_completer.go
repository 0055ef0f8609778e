package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"resumeBuilder/internal/completion"
)

// HTTPCompleter calls a completion proxy deployed on its own.
type HTTPCompleter struct {
	endpoint string
	client   *http.Client
}

// NewHTTPCompleter targets baseURL + "/v1/generate".
func NewHTTPCompleter(baseURL string, timeout time.Duration) *HTTPCompleter {
	return &HTTPCompleter{
		endpoint: strings.TrimRight(strings.TrimSpace(baseURL), "/") + "/v1/generate",
		client:   &http.Client{Timeout: timeout},
	}
}

func (c *HTTPCompleter) Complete(ctx context.Context, req completion.Request) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("encode completion request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build completion request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("call completion proxy: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read completion response: %w", err)
	}
	var out completion.Response
	decodeErr := json.Unmarshal(raw, &out)

	if resp.StatusCode != http.StatusOK {
		if decodeErr == nil && out.Error != "" {
			return "", fmt.Errorf("completion proxy %d: %s", resp.StatusCode, out.Error)
		}
		return "", fmt.Errorf("completion proxy %d", resp.StatusCode)
	}
	if decodeErr != nil {
		return "", fmt.Errorf("%w: %v", completion.ErrMalformedResponse, decodeErr)
	}
	return out.Content, nil
}
