// Package transport builds the browser-profiled HTTP client shared by the
// assistant REST backend, the preview fetcher and the contact mailer.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
)

// Options configures a new HTTP client
type Options struct {
	TimeoutSeconds  int
	FollowRedirects bool
}

// DefaultOptions returns the options used for API calls
func DefaultOptions() Options {
	return Options{
		TimeoutSeconds:  120,
		FollowRedirects: false,
	}
}

// New creates a tls-client HTTP client with a Chrome profile
func New(opts Options) (tls_client.HttpClient, error) {
	if opts.TimeoutSeconds <= 0 {
		opts.TimeoutSeconds = DefaultOptions().TimeoutSeconds
	}

	options := []tls_client.HttpClientOption{
		tls_client.WithTimeoutSeconds(opts.TimeoutSeconds),
		tls_client.WithClientProfile(profiles.Chrome_120),
	}
	if !opts.FollowRedirects {
		options = append(options, tls_client.WithNotFollowRedirects())
	}

	client, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}
	return client, nil
}

// MaxErrorBody bounds how much of a failed response is kept for diagnostics
const MaxErrorBody = 4096

// ReadBody reads at most limit bytes of the response body; limit <= 0 reads all
func ReadBody(resp *http.Response, limit int64) ([]byte, error) {
	if resp == nil || resp.Body == nil {
		return nil, nil
	}
	var r io.Reader = resp.Body
	if limit > 0 {
		r = io.LimitReader(resp.Body, limit)
	}
	return io.ReadAll(r)
}

// Response is a fully read HTTP response
type Response struct {
	StatusCode int
	Body       []byte
}

// PostJSON marshals payload, posts it to url and reads the whole reply.
// Transport failures are returned as-is; callers classify status codes.
func PostJSON(ctx context.Context, client tls_client.HttpClient, url string, headers map[string]string, payload any) (*Response, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	body, err := ReadBody(resp, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}
