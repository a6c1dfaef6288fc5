// Package http provides an HTTP-based implementation of sitewalk.Fetcher.
package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/sitewalk"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultMaxRedirects is the number of redirects followed before a fetch
// fails with EREDIRECT.
const DefaultMaxRedirects = 30

// DefaultUserAgent identifies the crawler on every request.
const DefaultUserAgent = "sitewalk/1.0 (+https://github.com/fwojciec/sitewalk)"

// maxBodySize caps how much of a response body is read.
const maxBodySize = 10 << 20

var errTooManyRedirects = errors.New("too many redirects")

// Ensure Fetcher implements sitewalk.Fetcher at compile time.
var _ sitewalk.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves pages using plain HTTP GET requests. It does not execute
// JavaScript.
type Fetcher struct {
	client       *http.Client
	transport    http.RoundTripper
	timeout      time.Duration
	userAgent    string
	maxRedirects int
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent on every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxRedirects sets how many redirects are followed.
func WithMaxRedirects(n int) Option {
	return func(f *Fetcher) {
		f.maxRedirects = n
	}
}

// WithTransport replaces the underlying round tripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(f *Fetcher) {
		f.transport = rt
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:      DefaultFetchTimeout,
		userAgent:    DefaultUserAgent,
		maxRedirects: DefaultMaxRedirects,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout:   f.timeout,
		Transport: f.transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) > f.maxRedirects {
				return errTooManyRedirects
			}
			return nil
		},
	}

	return f
}

// UserAgent returns the User-Agent header the fetcher sends.
func (f *Fetcher) UserAgent() string {
	return f.userAgent
}

// Fetch retrieves the URL and returns its body decoded to UTF-8.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*sitewalk.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, sitewalk.Errorf(sitewalk.ETRANSPORT, "creating request for %s: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(err, errTooManyRedirects) {
			return nil, sitewalk.Errorf(sitewalk.EREDIRECT, "stopped after %d redirects for %s", f.maxRedirects, url)
		}
		return nil, sitewalk.Errorf(sitewalk.ETRANSPORT, "%v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, sitewalk.Errorf(sitewalk.ESTATUS, "HTTP %d for %s", resp.StatusCode, url)
	}

	contentType := resp.Header.Get("Content-Type")
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, sitewalk.Errorf(sitewalk.ETRANSPORT, "reading body of %s: %v", url, err)
	}

	return &sitewalk.Response{
		URL:         resp.Request.URL.String(),
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		Body:        decode(raw, contentType),
	}, nil
}

// decode converts body to UTF-8 using the declared or sniffed charset.
// The raw bytes are returned when decoding fails.
func decode(raw []byte, contentType string) []byte {
	if len(raw) == 0 {
		return raw
	}
	r, err := charset.NewReader(bytes.NewReader(raw), contentType)
	if err != nil {
		return raw
	}
	decoded, err := io.ReadAll(r)
	if err != nil {
		return raw
	}
	return decoded
}

// Close releases idle connections.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}

// String describes the fetcher for logs.
func (f *Fetcher) String() string {
	return fmt.Sprintf("http(timeout=%s, redirects=%d)", f.timeout, f.maxRedirects)
}
