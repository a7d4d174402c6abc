package transport

import (
	"bytes"
	"io"
	"net/url"
	"sync"

	fhttp "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/bandwidth"
)

// MockHttpClient is a tls_client.HttpClient that returns a canned response
// and records every request it receives. Used by package tests.
type MockHttpClient struct {
	Response *fhttp.Response
	Err      error

	mu       sync.Mutex
	requests []RecordedRequest
}

// RecordedRequest is a request captured by MockHttpClient with its body read
type RecordedRequest struct {
	Method string
	URL    string
	Header fhttp.Header
	Body   []byte
}

var _ tls_client.HttpClient = (*MockHttpClient)(nil)

// NewMockHttpClient creates a MockHttpClient answering with body and statusCode
func NewMockHttpClient(body []byte, statusCode int) *MockHttpClient {
	return &MockHttpClient{
		Response: &fhttp.Response{
			StatusCode: statusCode,
			Body:       io.NopCloser(bytes.NewReader(body)),
			Header:     make(fhttp.Header),
		},
	}
}

// NewMockHttpClientWithError creates a MockHttpClient whose calls all fail
func NewMockHttpClientWithError(err error) *MockHttpClient {
	return &MockHttpClient{Err: err}
}

// Requests returns the requests seen so far
func (m *MockHttpClient) Requests() []RecordedRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]RecordedRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

// LastRequest returns the most recent request, or a zero value
func (m *MockHttpClient) LastRequest() RecordedRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return RecordedRequest{}
	}
	return m.requests[len(m.requests)-1]
}

func (m *MockHttpClient) record(req *fhttp.Request) {
	rec := RecordedRequest{Method: req.Method, URL: req.URL.String(), Header: req.Header.Clone()}
	if req.Body != nil {
		rec.Body, _ = io.ReadAll(req.Body)
	}
	m.mu.Lock()
	m.requests = append(m.requests, rec)
	m.mu.Unlock()
}

func (m *MockHttpClient) GetCookies(u *url.URL) []*fhttp.Cookie { return nil }
func (m *MockHttpClient) SetCookies(u *url.URL, cookies []*fhttp.Cookie) {}
func (m *MockHttpClient) SetCookieJar(jar fhttp.CookieJar) {}
func (m *MockHttpClient) GetCookieJar() fhttp.CookieJar { return nil }
func (m *MockHttpClient) SetProxy(proxyUrl string) error { return nil }
func (m *MockHttpClient) GetProxy() string { return "" }
func (m *MockHttpClient) SetFollowRedirect(followRedirect bool) {}
func (m *MockHttpClient) GetFollowRedirect() bool { return false }
func (m *MockHttpClient) CloseIdleConnections() {}
func (m *MockHttpClient) GetBandwidthTracker() bandwidth.BandwidthTracker { return nil }

// Do implements the tls_client.HttpClient interface
func (m *MockHttpClient) Do(req *fhttp.Request) (*fhttp.Response, error) {
	m.record(req)
	return m.Response, m.Err
}

// Get implements the tls_client.HttpClient interface
func (m *MockHttpClient) Get(url string) (*fhttp.Response, error) {
	req, err := fhttp.NewRequest(fhttp.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return m.Do(req)
}

// Head implements the tls_client.HttpClient interface
func (m *MockHttpClient) Head(url string) (*fhttp.Response, error) {
	req, err := fhttp.NewRequest(fhttp.MethodHead, url, nil)
	if err != nil {
		return nil, err
	}
	return m.Do(req)
}

// Post implements the tls_client.HttpClient interface
func (m *MockHttpClient) Post(url, contentType string, body io.Reader) (*fhttp.Response, error) {
	req, err := fhttp.NewRequest(fhttp.MethodPost, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	return m.Do(req)
}
