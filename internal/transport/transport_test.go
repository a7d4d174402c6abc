package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	fhttp "github.com/bogdanfinn/fhttp"
)

func TestNew(t *testing.T) {
	client, err := New(DefaultOptions())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if client.GetFollowRedirect() {
		t.Error("API client should not follow redirects")
	}

	client, err = New(Options{FollowRedirects: true})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if !client.GetFollowRedirect() {
		t.Error("expected redirects to be followed")
	}
}

func TestPostJSON(t *testing.T) {
	mock := NewMockHttpClient([]byte(`{"ok":true}`), 200)

	resp, err := PostJSON(context.Background(), mock, "https://example.com/send",
		map[string]string{"Content-Type": "application/json"},
		map[string]string{"hello": "world"})
	if err != nil {
		t.Fatalf("PostJSON() error: %v", err)
	}
	if resp.StatusCode != 200 || string(resp.Body) != `{"ok":true}` {
		t.Errorf("resp = %d %s", resp.StatusCode, resp.Body)
	}

	req := mock.LastRequest()
	if req.Method != fhttp.MethodPost || req.URL != "https://example.com/send" {
		t.Errorf("request = %s %s", req.Method, req.URL)
	}
	if req.Header.Get("Content-Type") != "application/json" {
		t.Errorf("Content-Type = %q", req.Header.Get("Content-Type"))
	}
	var got map[string]string
	if err := json.Unmarshal(req.Body, &got); err != nil || got["hello"] != "world" {
		t.Errorf("body = %s (%v)", req.Body, err)
	}
}

func TestPostJSONTransportError(t *testing.T) {
	boom := errors.New("connection reset")
	mock := NewMockHttpClientWithError(boom)

	_, err := PostJSON(context.Background(), mock, "https://example.com", nil, struct{}{})
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
	if len(mock.Requests()) != 1 {
		t.Errorf("requests = %d", len(mock.Requests()))
	}
}

func TestReadBodyLimit(t *testing.T) {
	resp := &fhttp.Response{Body: io.NopCloser(bytes.NewReader(bytes.Repeat([]byte("x"), 100)))}

	body, err := ReadBody(resp, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(body) != 10 {
		t.Errorf("len = %d, want 10", len(body))
	}

	if body, _ := ReadBody(nil, 10); body != nil {
		t.Error("nil response should yield nil body")
	}
}
