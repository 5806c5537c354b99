package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"

	"github.com/rgehrsitz/calcform/internal/domain"
	"github.com/rgehrsitz/calcform/internal/encoder"
	"github.com/rgehrsitz/calcform/internal/logging"
)

// DefaultEndpoint is the calculation path relative to the base URL
const DefaultEndpoint = "api/start"

// Client posts encoded form payloads to the calculation endpoint
type Client struct {
	endpoint   *url.URL
	httpClient *http.Client
	logger     logging.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger; nil selects a no-op logger
func WithLogger(l logging.Logger) Option {
	return func(c *Client) {
		if l == nil {
			l = logging.NopLogger{}
		}
		c.logger = l
	}
}

// New creates a client for endpoint resolved against baseURL.
//
// The default HTTP client follows up to 10 redirects without sending a Referer,
// has no timeout, and keeps a cookie jar that only returns cookies to the
// host that set them.
func New(baseURL, endpoint string, opts ...Option) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if !base.IsAbs() {
		return nil, fmt.Errorf("base URL %q must be absolute", baseURL)
	}
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	ref, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	c := &Client{
		endpoint:   base.ResolveReference(ref),
		httpClient: &http.Client{Jar: jar, CheckRedirect: dropReferer},
		logger:     logging.NopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// maxRedirects matches the net/http default
const maxRedirects = 10

// dropReferer keeps redirected requests free of the Referer header that
// net/http adds on every hop.
func dropReferer(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return fmt.Errorf("stopped after %d redirects", maxRedirects)
	}
	req.Header.Del("Referer")
	return nil
}

// Endpoint returns the resolved calculation URL
func (c *Client) Endpoint() string {
	return c.endpoint.String()
}

// Submit posts payload and returns the response body.
//
// A non-success status yields a *domain.RequestFailedError carrying the body,
// or the status reason phrase when the body is empty. A transport failure
// yields a *domain.NetworkError.
func (c *Client) Submit(ctx context.Context, payload encoder.Payload) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.String(), strings.NewReader(payload.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", encoder.ContentType)
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	c.logger.Debugf("posting %d fields to %s", len(payload), c.endpoint)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warnf("calculation request failed: %v", err)
		return "", &domain.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &domain.NetworkError{Err: fmt.Errorf("failed to read response: %w", err)}
	}
	text := string(body)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		c.logger.Infof("calculation succeeded with status %d", resp.StatusCode)
		return text, nil
	}

	if text == "" {
		text = reasonPhrase(resp)
	}
	c.logger.Warnf("calculation rejected with status %d: %s", resp.StatusCode, text)
	return "", &domain.RequestFailedError{StatusCode: resp.StatusCode, Message: text}
}

// reasonPhrase extracts the text after the status code in the status line
func reasonPhrase(resp *http.Response) string {
	phrase := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if phrase == "" {
		phrase = http.StatusText(resp.StatusCode)
	}
	return phrase
}
