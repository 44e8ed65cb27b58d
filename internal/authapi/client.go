// Package authapi talks to the authentication backend's REST login endpoint.
package authapi

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

	"github.com/hashicorp/go-cleanhttp"
)

// LoginPath is the REST route of the login operation.
const LoginPath = "/api/rest/v1/authentication/login"

const maxResponseBytes = 1 << 20

// ErrInvalidBaseURL is returned by NewClient for a base URL that is not an
// absolute http(s) URL.
var ErrInvalidBaseURL = errors.New("authapi: invalid base url")

// Credentials is the login request body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Client posts credentials to the login endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the pooled default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout bounds each login round trip. Zero means no bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithUserAgent sets the User-Agent header of login requests.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = strings.TrimSpace(ua)
	}
}

// NewClient returns a client for the backend rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	endpoint, err := loginEndpoint(baseURL)
	if err != nil {
		return nil, err
	}

	c := &Client{
		endpoint:   endpoint,
		httpClient: cleanhttp.DefaultPooledClient(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c, nil
}

// Endpoint returns the absolute URL login requests are sent to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Login sends creds and decodes the reply. The HTTP status is not
// interpreted: error replies carry their reason in the body. A body that is
// not JSON is an error.
func (c *Client) Login(ctx context.Context, creds Credentials) (LoginResponse, error) {
	payload, err := json.Marshal(creds)
	if err != nil {
		return LoginResponse{}, fmt.Errorf("encode login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return LoginResponse{}, fmt.Errorf("build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return LoginResponse{}, fmt.Errorf("post login request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return LoginResponse{}, fmt.Errorf("read login response: %w", err)
	}

	out, err := ParseLoginResponse(raw)
	if err != nil {
		return LoginResponse{}, err
	}
	out.StatusCode = resp.StatusCode
	return out, nil
}

func loginEndpoint(baseURL string) (string, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidBaseURL)
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: scheme must be http or https", ErrInvalidBaseURL)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: missing host", ErrInvalidBaseURL)
	}
	u.Path = strings.TrimRight(u.Path, "/") + LoginPath
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u.String(), nil
}
