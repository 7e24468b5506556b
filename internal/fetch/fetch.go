// Package fetch retrieves cert pages from the PSA reference site.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// FailureKind classifies why a fetch failed.
type FailureKind string

const (
	FailureTimeout    FailureKind = "timeout"
	FailureTransport  FailureKind = "transport"
	FailureHTTPStatus FailureKind = "http_status"
)

// Failure is the classified error for a cert fetch whose primary and
// fallback attempts both failed.
type Failure struct {
	Kind   FailureKind
	Status int // set for FailureHTTPStatus
	URL    string
	cause  error
}

func (f *Failure) Error() string {
	if f.Kind == FailureHTTPStatus {
		return fmt.Sprintf("fetch: http %d from %s", f.Status, f.URL)
	}
	return fmt.Sprintf("fetch: %s fetching %s: %v", f.Kind, f.URL, f.cause)
}

func (f *Failure) Unwrap() error { return f.cause }

// Options configures the cert fetcher.
type Options struct {
	BaseURL    string
	UserAgent  string
	Timeout    time.Duration
	RatePerSec float64
}

// Client fetches cert pages with a primary and one fallback URL shape.
type Client struct {
	client  *http.Client
	opts    Options
	limiter *rate.Limiter
}

// Product-line segment appended to the primary URL shape.
const productLineSegment = "psacard"

// NewClient creates a Client with the given options. Zero-value options get
// the defaults: 30s timeout, a browser user agent, 2 req/s.
func NewClient(opts Options) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
	}
	if opts.BaseURL == "" {
		opts.BaseURL = "https://www.psacard.com"
	}
	if opts.RatePerSec == 0 {
		opts.RatePerSec = 2
	}
	return &Client{
		client:  &http.Client{Timeout: opts.Timeout},
		opts:    opts,
		limiter: rate.NewLimiter(rate.Limit(opts.RatePerSec), 1),
	}
}

// FetchCert retrieves the raw cert page for a cert number. It tries the
// primary URL (with the product-line segment), then once more against the
// shorter fallback shape. No further retry: beyond the fallback, retry is a
// user action.
func (c *Client) FetchCert(ctx context.Context, certNumber string) (string, error) {
	primary := fmt.Sprintf("%s/cert/%s/%s", c.opts.BaseURL, certNumber, productLineSegment)
	fallback := fmt.Sprintf("%s/cert/%s", c.opts.BaseURL, certNumber)

	body, err := c.get(ctx, primary)
	if err == nil {
		return body, nil
	}
	zap.L().Debug("fetch: primary url failed, trying fallback",
		zap.String("cert", certNumber),
		zap.Error(err),
	)

	body, fbErr := c.get(ctx, fallback)
	if fbErr == nil {
		return body, nil
	}
	return "", fbErr
}

func (c *Client) get(ctx context.Context, rawURL string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", eris.Wrap(err, "fetch: rate limiter wait")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", eris.Wrap(err, "fetch: create request")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		kind := FailureTransport
		var netErr interface{ Timeout() bool }
		if errors.As(err, &netErr) && netErr.Timeout() {
			kind = FailureTimeout
		} else if errors.Is(err, context.DeadlineExceeded) {
			kind = FailureTimeout
		}
		return "", &Failure{Kind: kind, URL: rawURL, cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &Failure{Kind: FailureHTTPStatus, Status: resp.StatusCode, URL: rawURL}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Failure{Kind: FailureTransport, URL: rawURL, cause: err}
	}
	return string(body), nil
}
