package preview

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	apierrors "github.com/diogo/folio/internal/errors"
	"github.com/diogo/folio/internal/transport"
)

const samplePage = `<!doctype html>
<html>
<head>
  <title>  Nexus   DeFi </title>
  <meta name="description" content="Track every chain in one place.">
  <style>p { color: red }</style>
  <script>var p = "<p>not a paragraph</p>";</script>
</head>
<body>
  <nav><p>Home About Pricing Blog Careers and a long enough nav paragraph</p></nav>
  <h1>Portfolio analytics</h1>
  <p>Short.</p>
  <p>Nexus aggregates balances from <b>multiple chains</b> and renders
     them with D3 visualisations.</p>
  <footer><p>Copyright notice that is long enough to count as a paragraph</p></footer>
</body>
</html>`

func TestParse(t *testing.T) {
	page, err := Parse(strings.NewReader(samplePage))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	want := &Page{
		Title:       "Nexus DeFi",
		Description: "Track every chain in one place.",
		Paragraphs: []string{
			"Portfolio analytics",
			"Nexus aggregates balances from multiple chains and renders them with D3 visualisations.",
		},
	}
	if diff := cmp.Diff(want, page); diff != "" {
		t.Errorf("page (-want +got):\n%s", diff)
	}
}

func TestParseOpenGraphDescription(t *testing.T) {
	page, err := Parse(strings.NewReader(`<html><head><meta property="og:description" content="OG text"></head></html>`))
	if err != nil {
		t.Fatal(err)
	}
	if page.Description != "OG text" {
		t.Errorf("Description = %q", page.Description)
	}
}

func TestFetch(t *testing.T) {
	mock := transport.NewMockHttpClient([]byte(samplePage), 200)
	f := NewFetcherWithClient(mock)

	page, err := f.Fetch(context.Background(), "https://www.tradingview.com")
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if page.URL != "https://www.tradingview.com" || page.Title != "Nexus DeFi" {
		t.Errorf("page = %+v", page)
	}

	req := mock.LastRequest()
	if req.Method != "GET" || !strings.Contains(req.Header.Get("Accept"), "text/html") {
		t.Errorf("request = %s accept=%q", req.Method, req.Header.Get("Accept"))
	}
}

func TestFetchErrors(t *testing.T) {
	t.Run("placeholder", func(t *testing.T) {
		mock := transport.NewMockHttpClient(nil, 200)
		if _, err := NewFetcherWithClient(mock).Fetch(context.Background(), "#"); err == nil {
			t.Error("expected error")
		}
		if len(mock.Requests()) != 0 {
			t.Error("placeholder should not be fetched")
		}
	})

	t.Run("status", func(t *testing.T) {
		mock := transport.NewMockHttpClient([]byte("gone"), 404)
		_, err := NewFetcherWithClient(mock).Fetch(context.Background(), "https://x.example")
		if apierrors.GetHTTPStatus(err) != 404 {
			t.Errorf("err = %v", err)
		}
	})

	t.Run("transport", func(t *testing.T) {
		mock := transport.NewMockHttpClientWithError(errors.New("no such host"))
		_, err := NewFetcherWithClient(mock).Fetch(context.Background(), "https://wondertalesin1.com.cdoo")
		if !apierrors.IsNetworkError(err) {
			t.Errorf("err = %v", err)
		}
	})
}
