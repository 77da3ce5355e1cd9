// Package api maps each domain action of the annotation backend to exactly
// one HTTP request. Responses are decoded as-is: no retries, no reshaping.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// Client REST client for the annotation backend
type Client struct {
	baseURL    string
	token      string
	timeout    time.Duration
	httpClient *http.Client
}

// Option Configure a Client
type Option func(*Client)

// WithToken Send the token as a bearer credential on every request
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithHTTPClient Use the given transport instead of a fresh http.Client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout Bound every request; zero means no timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// NewClient Create a client for the backend rooted at baseURL
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q must be http or https", baseURL)
	}

	c := &Client{
		baseURL:    strings.TrimRight(u.String(), "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		// Copy so a caller-supplied client is left untouched
		httpClient := *c.httpClient
		httpClient.Timeout = c.timeout
		c.httpClient = &httpClient
	}
	return c, nil
}

// BaseURL Root every request path is appended to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ResolveURL Absolute URL of a backend-relative path such as an image url
func (c *Client) ResolveURL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

// route Join escaped path segments, e.g. route("images", id) is /images/<id>
func route(segments ...string) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

// getJSON, postJSON, patchJSON and delete are thin wrappers over do
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, "", out)
}

func (c *Client) postJSON(ctx context.Context, path string, in any, out any) error {
	return c.sendJSON(ctx, http.MethodPost, path, in, out)
}

func (c *Client) patchJSON(ctx context.Context, path string, in any, out any) error {
	return c.sendJSON(ctx, http.MethodPatch, path, in, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, "", nil)
}

func (c *Client) sendJSON(ctx context.Context, method string, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(payload)
	}
	return c.do(ctx, method, path, body, "application/json", out)
}

// sendRaw Send body as-is with a JSON content type
func (c *Client) sendRaw(ctx context.Context, method string, path string, body []byte, out any) error {
	return c.do(ctx, method, path, bytes.NewReader(body), "application/json", out)
}

// do Issue one request and decode a 2xx body into out (skipped when nil).
// Non-2xx answers become *Error.
func (c *Client) do(ctx context.Context, method string, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	log.Debug(fmt.Sprintf("%s %s -> %d in %s", method, path, resp.StatusCode, time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newError(method, path, resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	switch raw := out.(type) {
	case *[]byte:
		if *raw, err = io.ReadAll(resp.Body); err != nil {
			return fmt.Errorf("read %s %s: %w", method, path, err)
		}
		return nil
	case *json.RawMessage:
		if *raw, err = io.ReadAll(resp.Body); err != nil {
			return fmt.Errorf("read %s %s: %w", method, path, err)
		}
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
