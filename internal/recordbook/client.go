// Package recordbook talks to the record-keeping backend over its JSON API.
// The front-end keeps no state of its own, so every page is assembled from
// the responses these calls return.
package recordbook

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

	"recordbook-web/internal/log"
)

// Client is a thin typed facade over the backend HTTP API.
type Client struct {
	base *url.URL
	http *http.Client
	log  *log.Logger
}

// New builds a client for the backend rooted at baseURL. The timeout bounds
// every request end to end.
func New(baseURL string, timeout time.Duration, logger *log.Logger) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing api base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("api base url %q is not absolute", baseURL)
	}
	if logger == nil {
		logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentAPI)
	}
	return &Client{
		base: u,
		http: &http.Client{Timeout: timeout},
		log:  logger,
	}, nil
}

// APIError is a non-2xx response from the backend. Message holds the
// backend's own message when the body carried one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend returned %d", e.Status)
}

// ErrorMessage turns any error from this package into a line fit for showing
// to the user. Backend messages pass through; transport failures collapse to
// a generic hint so internals never leak into the page.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return fmt.Sprintf("Request failed with status %d", apiErr.Status)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "The server took too long to respond. Please try again."
	}
	return "Could not reach the server. Please try again."
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.ErrorContext(ctx, "backend request failed",
			log.FieldMethod, method,
			log.FieldEndpoint, path,
			log.FieldError, err)
		return fmt.Errorf("calling backend %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.log.DebugContext(ctx, "backend request",
		log.FieldMethod, method,
		log.FieldEndpoint, path,
		log.FieldStatus, resp.StatusCode,
		log.FieldDuration, time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.errorFrom(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding backend response: %w", err)
	}
	return nil
}

// errorFrom extracts the backend's message from an error response. Bodies
// are usually {"message": "..."} but some endpoints return plain text or an
// {"error": "..."} shape.
func (c *Client) errorFrom(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil || len(raw) == 0 {
		return apiErr
	}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		switch {
		case payload.Message != "":
			apiErr.Message = payload.Message
		case payload.Error != "":
			apiErr.Message = payload.Error
		}
		return apiErr
	}

	if text := strings.TrimSpace(string(raw)); text != "" && !strings.HasPrefix(text, "<") {
		apiErr.Message = text
	}
	return apiErr
}
