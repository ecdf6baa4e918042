package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout bounds a whole request when no http.Client is supplied.
const DefaultTimeout = 10 * time.Second

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithTimeout sets the timeout of the underlying HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithBasicAuth sends the given credentials with every request.
func WithBasicAuth(username, password string) Option {
	return func(c *Client) {
		c.username = username
		c.password = password
		c.auth = true
	}
}

// WithHeader adds a default header to every request.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.header.Add(key, value)
	}
}

// WithLogger routes request logging to l.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// Client prefixes a fixed base URL to every request path.
type Client struct {
	base    string
	http    *http.Client
	timeout time.Duration
	header  http.Header
	log     *slog.Logger

	auth               bool
	username, password string
}

// New returns a Client for baseURL, which must be an absolute http(s) URL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("transport: base URL is required")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("transport: invalid base URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("transport: base URL %q must be absolute http(s)", baseURL)
	}

	c := &Client{
		base:    strings.TrimRight(u.String(), "/"),
		timeout: DefaultTimeout,
		header:  make(http.Header),
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: c.timeout}
	}
	return c, nil
}

// BaseURL returns the prefix applied to every path.
func (c *Client) BaseURL() string { return c.base }

// URL joins the base URL and path.
func (c *Client) URL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.base + path
}

func (c *Client) Get(ctx context.Context, path string) (*http.Response, error) {
	return c.Do(ctx, http.MethodGet, path, nil)
}

func (c *Client) Head(ctx context.Context, path string) (*http.Response, error) {
	return c.Do(ctx, http.MethodHead, path, nil)
}

func (c *Client) Options(ctx context.Context, path string) (*http.Response, error) {
	return c.Do(ctx, http.MethodOptions, path, nil)
}

func (c *Client) Delete(ctx context.Context, path string) (*http.Response, error) {
	return c.Do(ctx, http.MethodDelete, path, nil)
}

func (c *Client) Post(ctx context.Context, path string, body []byte) (*http.Response, error) {
	return c.Do(ctx, http.MethodPost, path, body)
}

func (c *Client) Put(ctx context.Context, path string, body []byte) (*http.Response, error) {
	return c.Do(ctx, http.MethodPut, path, body)
}

func (c *Client) Patch(ctx context.Context, path string, body []byte) (*http.Response, error) {
	return c.Do(ctx, http.MethodPatch, path, body)
}

// Do sends a request for method to the prefixed path. A non-nil body is sent
// as JSON. Any status is returned as a response; only transport failures are
// errors.
func (c *Client) Do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	full := c.URL(path)

	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, full, rd)
	if err != nil {
		return nil, err
	}
	req.Header = c.header.Clone()
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.auth {
		req.SetBasicAuth(c.username, c.password)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.DebugContext(ctx, "request failed", "method", method, "url", full, "err", err)
		return nil, err
	}
	c.log.DebugContext(ctx, "request",
		"method", method,
		"url", full,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)
	return resp, nil
}
