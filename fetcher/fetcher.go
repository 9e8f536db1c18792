// Package fetcher retrieves the target page for a relay request.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/use-agent/faleproxy/models"
)

// Fetcher is implemented by anything that can retrieve an HTML page.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*Result, error)
}

// Result is the output of a successful fetch.
type Result struct {
	HTML        string
	StatusCode  int
	FinalURL    string
	ContentType string
}

// Options configures an HTTPFetcher.
type Options struct {
	// Timeout is the client deadline. Zero means no deadline.
	Timeout time.Duration

	// MaxBodyBytes is the largest body accepted. Larger bodies fail the
	// fetch rather than being truncated. Zero or less means 10 MiB.
	MaxBodyBytes int64

	UserAgent string
}

const defaultMaxBody = 10 << 20

// HTTPFetcher performs a single GET per call with browser-like headers and
// a Chrome TLS fingerprint. It is safe for concurrent use.
type HTTPFetcher struct {
	client    *http.Client
	maxBody   int64
	userAgent string
}

// NewHTTPFetcher creates an HTTPFetcher from opts.
func NewHTTPFetcher(opts Options) *HTTPFetcher {
	maxBody := opts.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBody
	}
	return &HTTPFetcher{
		client: &http.Client{
			Transport: newTransport(),
			Timeout:   opts.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
		maxBody:   maxBody,
		userAgent: opts.UserAgent,
	}
}

// Fetch issues one GET against rawURL. No retries are attempted.
//
// Every failure is returned as a *models.FetchError.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (*Result, error) {
	target, err := ValidateURL(rawURL)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, models.NewFetchError(models.ErrCodeInvalidURL, "invalid URL", err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, models.NewFetchError(models.ErrCodeFetchFailed, "failed to fetch "+target.String(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, models.NewFetchError(models.ErrCodeUpstreamStatus,
			fmt.Sprintf("upstream returned HTTP %d for %s", resp.StatusCode, target.String()), nil)
	}

	ct := resp.Header.Get("Content-Type")
	if ct != "" && !isHTMLContentType(ct) {
		return nil, models.NewFetchError(models.ErrCodeUnsupportedContent,
			fmt.Sprintf("unsupported content type %q", ct), nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody+1))
	if err != nil {
		return nil, models.NewFetchError(models.ErrCodeFetchFailed, "failed to read response body", err)
	}
	if int64(len(body)) > f.maxBody {
		return nil, models.NewFetchError(models.ErrCodeBodyTooLarge,
			fmt.Sprintf("response body from %s exceeds %d bytes", target.String(), f.maxBody), nil)
	}

	return &Result{
		HTML:        string(body),
		StatusCode:  resp.StatusCode,
		FinalURL:    resp.Request.URL.String(),
		ContentType: ct,
	}, nil
}

// ValidateURL checks that rawURL is an absolute http or https URL with a host.
func ValidateURL(rawURL string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, models.NewFetchError(models.ErrCodeInvalidURL, "invalid URL", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, models.NewFetchError(models.ErrCodeInvalidURL,
			fmt.Sprintf("invalid URL %q: scheme must be http or https", rawURL), nil)
	}
	if u.Host == "" {
		return nil, models.NewFetchError(models.ErrCodeInvalidURL,
			fmt.Sprintf("invalid URL %q: missing host", rawURL), nil)
	}
	return u, nil
}

// isHTMLContentType returns true if the content-type header looks like HTML.
func isHTMLContentType(ct string) bool {
	ct = strings.ToLower(ct)
	return strings.Contains(ct, "text/html") || strings.Contains(ct, "application/xhtml+xml")
}
