package render

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/glamour"
)

// rendererCache keeps one glamour renderer per option set. A TermRenderer is
// not safe for concurrent Render calls, so each entry carries its own lock.
type rendererCache struct {
	mu      sync.Mutex
	entries map[string]*cachedRenderer
}

type cachedRenderer struct {
	mu       sync.Mutex
	renderer *glamour.TermRenderer
}

var globalCache = &rendererCache{entries: make(map[string]*cachedRenderer)}

func cacheKey(opts Options) string {
	return fmt.Sprintf("%s:%d:%t:%t:%t:%t",
		opts.Style,
		opts.Width,
		opts.EnableEmoji,
		opts.PreserveNewLines,
		opts.TableWrap,
		opts.InlineTableLinks,
	)
}

// render renders content with the renderer cached for opts
func (c *rendererCache) render(content string, opts Options) (string, error) {
	key := cacheKey(opts)

	c.mu.Lock()
	entry, ok := c.entries[key]
	if !ok {
		r, err := createRenderer(opts)
		if err != nil {
			c.mu.Unlock()
			return "", err
		}
		entry = &cachedRenderer{renderer: r}
		c.entries[key] = entry
	}
	c.mu.Unlock()

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.renderer.Render(content)
}

// createRenderer creates a new TermRenderer with the specified options.
func createRenderer(opts Options) (*glamour.TermRenderer, error) {
	rendererOpts := []glamour.TermRendererOption{
		glamour.WithStylePath(glamourStyle(opts.Style)),
		glamour.WithWordWrap(opts.Width),
		glamour.WithTableWrap(opts.TableWrap),
		glamour.WithInlineTableLinks(opts.InlineTableLinks),
	}

	if opts.EnableEmoji {
		rendererOpts = append(rendererOpts, glamour.WithEmoji())
	}

	if opts.PreserveNewLines {
		rendererOpts = append(rendererOpts, glamour.WithPreservedNewLines())
	}

	return glamour.NewTermRenderer(rendererOpts...)
}

// ClearCache drops every cached renderer
func ClearCache() {
	globalCache.mu.Lock()
	globalCache.entries = make(map[string]*cachedRenderer)
	globalCache.mu.Unlock()
}

// CacheSize returns the number of cached renderers
func CacheSize() int {
	globalCache.mu.Lock()
	defer globalCache.mu.Unlock()
	return len(globalCache.entries)
}
