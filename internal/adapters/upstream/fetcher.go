// Package upstream is the shared outbound HTTP client for knowledge-base and
// speech providers.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/samirrijal/touristapi/internal/core/domain"
	"github.com/samirrijal/touristapi/internal/pkg/metrics"
)

// maxBody caps how much of a response body is read.
const maxBody = 16 << 20

// StatusError is returned for non-2xx responses. It unwraps to domain.ErrUpstream.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d for %s", e.Code, e.URL)
}

func (e *StatusError) Unwrap() error { return domain.ErrUpstream }

// IsNotFound reports whether err is a 404 from the provider.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}

// Response is a fully read provider response.
type Response struct {
	Status      int
	ContentType string
	Body        []byte
}

// Fetcher performs traced GET requests with a fixed User-Agent and records
// per-provider latency and outcome.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// NewFetcher creates a Fetcher. A nil client gets an otelhttp-instrumented default.
func NewFetcher(client *http.Client, userAgent string) *Fetcher {
	if client == nil {
		client = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	return &Fetcher{client: client, userAgent: userAgent}
}

// Get fetches rawURL within timeout. Transport failures and non-2xx statuses
// are returned as errors wrapping domain.ErrUpstream.
func (f *Fetcher) Get(ctx context.Context, provider, rawURL string, timeout time.Duration, header http.Header) (resp *Response, err error) {
	start := time.Now()
	defer func() {
		outcome := "ok"
		switch {
		case IsNotFound(err):
			outcome = "absent"
		case err != nil:
			outcome = "error"
		}
		metrics.ObserveUpstream(provider, outcome, start)
	}()

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	httpResp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %w", domain.ErrUpstream, rawURL, err)
	}
	defer func() {
		if cerr := httpResp.Body.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing body: %w", cerr)
		}
	}()

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(httpResp.Body, maxBody))
		return nil, &StatusError{Code: httpResp.StatusCode, URL: rawURL}
	}

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", domain.ErrUpstream, err)
	}

	return &Response{
		Status:      httpResp.StatusCode,
		ContentType: httpResp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

// GetJSON fetches rawURL and decodes the body into dst.
func (f *Fetcher) GetJSON(ctx context.Context, provider, rawURL string, timeout time.Duration, header http.Header, dst any) (*Response, error) {
	resp, err := f.Get(ctx, provider, rawURL, timeout, header)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(resp.Body, dst); err != nil {
		return resp, fmt.Errorf("%w: decode %s: %w", domain.ErrUpstream, provider, err)
	}
	return resp, nil
}

// IsProblem reports whether the response is an RFC 7807 problem document.
func (r *Response) IsProblem() bool {
	ct := r.ContentType
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.HasSuffix(strings.TrimSpace(ct), "problem+json")
}
