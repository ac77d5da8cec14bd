package optimize

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// Client sends an optimization request to the optimizer service. A nil
// result with a nil error means the request was accepted for
// asynchronous delivery; the answer arrives later on the webhook.
type Client interface {
	Optimize(ctx context.Context, req Request) (*Result, error)
}

// HTTPClient implements Client against an HTTP optimizer endpoint.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPClient constructs an HTTPClient for the given endpoint.
func NewHTTPClient(baseURL string) (*HTTPClient, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("OPTIMIZER_URL is required")
	}
	timeout := 60 * time.Second
	if raw := strings.TrimSpace(os.Getenv("OPTIMIZER_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	return &HTTPClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

func (c *HTTPClient) Optimize(ctx context.Context, req Request) (*Result, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return nil, fmt.Errorf("optimizer request timeout: %w", err)
		}
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return ParseResult(body), nil
	case http.StatusAccepted:
		return nil, nil
	default:
		return nil, fmt.Errorf("optimizer status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
}

// ParseResult tolerates optimizers that answer with plain text instead
// of the documented JSON shape: anything unparseable is treated as a
// summary rewrite rather than an error.
func ParseResult(body []byte) *Result {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return &Result{}
	}
	var res Result
	if err := json.Unmarshal(trimmed, &res); err == nil {
		return &res
	}
	text := string(trimmed)
	return &Result{Summary: &text}
}

var _ Client = (*HTTPClient)(nil)
