// Package netutil fetches remote documents.
package netutil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

type httpOpts struct {
	client      *http.Client
	maxBytes    int64
	timeout     time.Duration
	bearerToken string
	header      http.Header
	query       url.Values
}

type HTTPOpt func(opts *httpOpts, urlStr string) error

func WithHTTPClient(client *http.Client) HTTPOpt {
	return func(opts *httpOpts, _ string) error {
		opts.client = client
		return nil
	}
}

const DefaultHTTPMaxBytes = 64 * 1024 * 1024 // 64 MiB

func WithHTTPMaxBytes(maxBytes int64) HTTPOpt {
	return func(opts *httpOpts, _ string) error {
		opts.maxBytes = maxBytes
		return nil
	}
}

// DefaultTimeout is the deadline of a single request, including reading the body.
const DefaultTimeout = 60 * time.Second

func WithTimeout(d time.Duration) HTTPOpt {
	return func(opts *httpOpts, _ string) error {
		opts.timeout = d
		return nil
	}
}

func WithBearerToken(bearerToken string) HTTPOpt {
	return func(opts *httpOpts, _ string) error {
		opts.bearerToken = bearerToken
		return nil
	}
}

// WithHeader sets a request header. It may be specified multiple times.
func WithHeader(key, value string) HTTPOpt {
	return func(opts *httpOpts, _ string) error {
		if opts.header == nil {
			opts.header = make(http.Header)
		}
		opts.header.Set(key, value)
		return nil
	}
}

// WithQuery merges q into the query string of the URL.
func WithQuery(q url.Values) HTTPOpt {
	return func(opts *httpOpts, _ string) error {
		if opts.query == nil {
			opts.query = make(url.Values)
		}
		for k, v := range q {
			opts.query[k] = v
		}
		return nil
	}
}

func isGitHubDomain(urlStr string) (bool, error) {
	u, err := url.Parse(urlStr)
	if err != nil {
		return false, err
	}
	hostname := u.Hostname()
	hostname = strings.TrimSuffix(hostname, ".")
	switch hostname {
	case "github.com", "api.github.com", "raw.githubusercontent.com":
		return true, nil
	}
	return false, nil
}

// WithAutoGitHubToken automatically sends $GITHUB_TOKEN so as to relax the rate limit
// of raw.githubusercontent.com.
func WithAutoGitHubToken() HTTPOpt {
	return func(opts *httpOpts, urlStr string) error {
		isGH, err := isGitHubDomain(urlStr)
		if err != nil {
			return err
		}
		if isGH {
			token := os.Getenv("GITHUB_TOKEN")
			if token == "" {
				// `gh` prioritizes $GH_TOKEN over $GITHUB_TOKEN
				token = os.Getenv("GH_TOKEN")
			}
			if token != "" {
				opts.bearerToken = token
			}
		}
		return nil
	}
}

type UnexpectedStatusCodeError struct {
	URL        *url.URL
	StatusCode int
	Body       string
}

func (e *UnexpectedStatusCodeError) Error() string {
	return fmt.Sprintf("%s: unexpected status code %d: %s", e.URL.Redacted(), e.StatusCode, e.Body)
}

// Get fetches urlStr and returns the body.
// A non-200 response is returned as [*UnexpectedStatusCodeError].
func Get(ctx context.Context, urlStr string, o ...HTTPOpt) ([]byte, error) {
	var opts httpOpts
	for _, f := range o {
		if err := f(&opts, urlStr); err != nil {
			return nil, err
		}
	}
	if opts.client == nil {
		opts.client = http.DefaultClient
	}
	if opts.maxBytes == 0 {
		opts.maxBytes = DefaultHTTPMaxBytes
	}
	if opts.timeout == 0 {
		opts.timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, err
	}
	if len(opts.query) > 0 {
		q := req.URL.Query()
		for k, v := range opts.query {
			q[k] = v
		}
		req.URL.RawQuery = q.Encode()
	}
	for k, v := range opts.header {
		req.Header[k] = v
	}
	if opts.bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+opts.bearerToken)
	}
	resp, err := opts.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	lr := &io.LimitedReader{
		R: resp.Body,
		N: opts.maxBytes,
	}
	body, err := io.ReadAll(lr)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &UnexpectedStatusCodeError{
			URL:        req.URL,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}
	return body, nil
}
