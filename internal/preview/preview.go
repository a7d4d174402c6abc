// Package preview fetches a project's demo page and reduces it to text the
// terminal can show in place of an embedded frame.
package preview

import (
	"context"
	"fmt"
	"io"
	"strings"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	apierrors "github.com/diogo/folio/internal/errors"
	"github.com/diogo/folio/internal/models"
	"github.com/diogo/folio/internal/transport"
)

const (
	maxPageBytes  = 2 << 20
	maxParagraphs = 8
	minParagraph  = 40
)

// Page is the readable outline of a demo page
type Page struct {
	URL         string
	Title       string
	Description string
	Paragraphs  []string
}

// Fetcher loads demo pages
type Fetcher struct {
	httpClient tls_client.HttpClient
}

// NewFetcher creates a Fetcher that follows redirects like a browser would
func NewFetcher() (*Fetcher, error) {
	client, err := transport.New(transport.Options{TimeoutSeconds: 20, FollowRedirects: true})
	if err != nil {
		return nil, err
	}
	return NewFetcherWithClient(client), nil
}

// NewFetcherWithClient creates a Fetcher around an existing client
func NewFetcherWithClient(client tls_client.HttpClient) *Fetcher {
	return &Fetcher{httpClient: client}
}

// Fetch downloads url and extracts its title, description and paragraphs
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Page, error) {
	if strings.TrimSpace(url) == "" || url == models.DemoPlaceholder {
		return nil, fmt.Errorf("no demo url")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for key, value := range models.BrowserHeaders() {
		req.Header.Set(key, value)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, apierrors.NewNetworkError(url, err)
	}
	defer func() {
		if resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apierrors.NewAPIError(resp.StatusCode, url, "demo page unavailable")
	}

	page, err := Parse(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, apierrors.NewParseError(err.Error(), url)
	}
	page.URL = url
	return page, nil
}

// Parse extracts a Page from an HTML document
func Parse(r io.Reader) (*Page, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	page := &Page{}
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript, atom.Nav, atom.Footer, atom.Svg:
				return
			case atom.Title:
				if page.Title == "" {
					page.Title = collapse(textOf(n))
				}
				return
			case atom.Meta:
				if page.Description == "" && isDescription(n) {
					page.Description = collapse(attr(n, "content"))
				}
			case atom.P, atom.H1, atom.H2, atom.Li:
				if len(page.Paragraphs) < maxParagraphs {
					if text := collapse(textOf(n)); len(text) >= minParagraph || (n.DataAtom != atom.P && n.DataAtom != atom.Li && text != "") {
						page.Paragraphs = append(page.Paragraphs, text)
					}
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return page, nil
}

func isDescription(n *html.Node) bool {
	name := strings.ToLower(attr(n, "name"))
	prop := strings.ToLower(attr(n, "property"))
	return name == "description" || prop == "og:description"
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

// textOf concatenates the text below n, skipping scripts and styles
func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
			return
		}
		if n.Type == html.ElementNode && (n.DataAtom == atom.Script || n.DataAtom == atom.Style) {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
