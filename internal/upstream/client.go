package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout bounds every upstream call
const DefaultTimeout = 30 * time.Second

// Client issues requests against the configured upstream base URL.
// It holds no state beyond its configuration and is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithTimeout sets the per-call timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// NewClient creates a new upstream client rooted at baseURL
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get sends params as a query string. Nested objects are flattened into
// bracketed key paths (loan_info[prop_type]=1).
func (c *Client) Get(ctx context.Context, path string, params map[string]any) (Response, error) {
	query := EncodeQuery(params)
	target := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		target += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req, true)
}

// PostJSON sends payload as a JSON body
func (c *Client) PostJSON(ctx context.Context, path string, payload map[string]any) (Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, true)
}

// PostForm sends form as a URL-encoded body. A 200 response is returned as-is
// even when its status field reports a failure, so callers can inspect it.
func (c *Client) PostForm(ctx context.Context, path string, form url.Values) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req, false)
}

func (c *Client) do(req *http.Request, checkStatus bool) (Response, error) {
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, &Error{Message: fmt.Sprintf("timeout of %s exceeded", c.httpClient.Timeout), Err: err}
		}
		return nil, &Error{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read response body: %v", err), Err: err}
	}
	body := Response(bytes.TrimSpace(raw))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if body.Failed() {
			return nil, &Error{StatusCode: resp.StatusCode, Message: body.FailureMessage()}
		}
		return nil, &Error{StatusCode: resp.StatusCode, Message: fmt.Sprintf("request failed with status code %d", resp.StatusCode)}
	}

	if !json.Valid(body) {
		return nil, &Error{StatusCode: resp.StatusCode, Message: "response is not valid JSON"}
	}

	if checkStatus && body.Failed() {
		return nil, &Error{StatusCode: resp.StatusCode, Message: body.FailureMessage()}
	}

	return body, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
