package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diogo/folio/internal/content"
	"github.com/diogo/folio/internal/models"
)

func ids(ps []models.Project) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func currentID(t *testing.T, l *Library) string {
	t.Helper()
	p, ok := l.Current()
	require.True(t, ok, "overlay should be open")
	return p.ID
}

// testCatalog has two AI projects so traversal within the filter is observable
func testCatalog(t *testing.T) *content.Registry {
	t.Helper()
	r, err := content.New([]models.Project{
		{ID: "a", Title: "A", Category: models.CategoryWeb, DemoURL: "https://a.example"},
		{ID: "b", Title: "B", Category: models.CategoryAI, DemoURL: "#"},
		{ID: "c", Title: "C", Category: models.CategoryWeb, DemoURL: ""},
		{ID: "d", Title: "D", Category: models.CategoryAI, DemoURL: "https://d.example"},
		{ID: "e", Title: "E", Category: models.CategoryMobile, DemoURL: "https://e.example"},
	}, nil)
	require.NoError(t, err)
	return r
}

func TestFilterAIAndCycle(t *testing.T) {
	l := New(testCatalog(t))

	l.SetFilter(content.FilterAI)
	assert.Equal(t, []string{"b", "d"}, ids(l.Visible()))

	require.NoError(t, l.Open("b"))
	l.Next()
	assert.Equal(t, "d", currentID(t, l))
	l.Next()
	assert.Equal(t, "b", currentID(t, l), "next wraps from last to first")
	l.Previous()
	assert.Equal(t, "d", currentID(t, l), "previous wraps from first to last")
	l.Previous()
	assert.Equal(t, "b", currentID(t, l))
}

func TestFilterDefaultCatalog(t *testing.T) {
	l := New(content.Default())

	l.SetFilter(content.FilterAI)
	assert.Equal(t, []string{"2"}, ids(l.Visible()))

	require.NoError(t, l.Open("2"))
	l.Next()
	assert.Equal(t, "2", currentID(t, l))
	l.Previous()
	assert.Equal(t, "2", currentID(t, l))
}

func TestFullCycleAll(t *testing.T) {
	l := New(testCatalog(t))
	require.NoError(t, l.Open("e"))

	var seen []string
	for i := 0; i < 5; i++ {
		l.Next()
		seen = append(seen, currentID(t, l))
	}
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, seen)
}

func TestOpenOutsideFilter(t *testing.T) {
	l := New(testCatalog(t))
	l.SetFilter(content.FilterWeb)

	assert.ErrorIs(t, l.Open("b"), ErrNotVisible)
	assert.False(t, l.IsOpen())
}

func TestTogglePreviewRejectsPlaceholder(t *testing.T) {
	for _, id := range []string{"b", "c"} {
		l := New(testCatalog(t))
		require.NoError(t, l.Open(id))
		idx := l.Index()

		err := l.TogglePreview()

		assert.ErrorIs(t, err, ErrDemoUnavailable)
		assert.Equal(t, PreviewOff, l.Preview())
		assert.True(t, l.IsOpen())
		assert.Equal(t, idx, l.Index())
		assert.Equal(t, id, currentID(t, l))
	}
}

func TestPreviewLifecycle(t *testing.T) {
	l := New(testCatalog(t))
	require.NoError(t, l.Open("a"))

	require.NoError(t, l.TogglePreview())
	assert.Equal(t, PreviewLoading, l.Preview())

	assert.False(t, l.PreviewLoaded("https://other.example", true), "load for another url is ignored")
	assert.Equal(t, PreviewLoading, l.Preview())

	assert.True(t, l.PreviewLoaded("https://a.example", true))
	assert.Equal(t, PreviewLoaded, l.Preview())

	require.NoError(t, l.TogglePreview())
	assert.Equal(t, PreviewOff, l.Preview())

	require.NoError(t, l.TogglePreview())
	assert.True(t, l.PreviewLoaded("https://a.example", false))
	assert.Equal(t, PreviewFailed, l.Preview())
	assert.True(t, l.InPreview(), "a failed load keeps preview mode")
}

func TestTraversalResetsPreview(t *testing.T) {
	l := New(testCatalog(t))
	require.NoError(t, l.Open("a"))
	require.NoError(t, l.TogglePreview())

	l.Next()
	assert.Equal(t, PreviewOff, l.Preview())
	assert.False(t, l.PreviewLoaded("https://a.example", true), "late load for the previous project is ignored")
}

func TestHandleKey(t *testing.T) {
	l := New(testCatalog(t))
	assert.False(t, l.HandleKey("right"), "keys are ignored with the overlay closed")

	require.NoError(t, l.Open("a"))
	require.NoError(t, l.TogglePreview())

	assert.True(t, l.HandleKey("right"))
	assert.Equal(t, "b", currentID(t, l), "arrows navigate even in preview mode")

	require.NoError(t, l.Open("d"))
	require.NoError(t, l.TogglePreview())
	assert.True(t, l.HandleKey("left"))
	assert.Equal(t, "c", currentID(t, l))

	require.NoError(t, l.Open("d"))
	require.NoError(t, l.TogglePreview())
	assert.True(t, l.HandleKey("esc"))
	assert.True(t, l.IsOpen(), "esc leaves preview first")
	assert.Equal(t, PreviewOff, l.Preview())

	assert.True(t, l.HandleKey("esc"))
	assert.False(t, l.IsOpen())

	require.NoError(t, l.Open("a"))
	assert.False(t, l.HandleKey("x"))
}

func TestFilterChangeWhileOpen(t *testing.T) {
	t.Run("project still visible", func(t *testing.T) {
		l := New(testCatalog(t))
		require.NoError(t, l.Open("d"))
		assert.Equal(t, 3, l.Index())

		l.SetFilter(content.FilterAI)

		assert.True(t, l.IsOpen())
		assert.Equal(t, "d", currentID(t, l))
		assert.Equal(t, 1, l.Index(), "index is reconciled against the new set")

		l.Next()
		assert.Equal(t, "b", currentID(t, l))
	})

	t.Run("project filtered out", func(t *testing.T) {
		l := New(testCatalog(t))
		require.NoError(t, l.Open("e"))

		l.SetFilter(content.FilterAI)

		assert.False(t, l.IsOpen())
		_, ok := l.Current()
		assert.False(t, ok)
	})

	t.Run("empty filter", func(t *testing.T) {
		l := New(testCatalog(t))
		require.NoError(t, l.Open("a"))

		l.SetFilter(content.FilterDesign)

		assert.False(t, l.IsOpen())
		assert.Empty(t, l.Visible())
		_, ok := l.Selected()
		assert.False(t, ok)
	})
}

func TestCursor(t *testing.T) {
	l := New(testCatalog(t))

	l.MoveCursor(-3)
	assert.Equal(t, 0, l.Cursor())
	l.MoveCursor(10)
	assert.Equal(t, 4, l.Cursor())

	l.SetFilter(content.FilterAI)
	assert.Equal(t, 1, l.Cursor(), "cursor clamps to the shorter set")

	require.NoError(t, l.OpenSelected())
	assert.Equal(t, "d", currentID(t, l))
}

func TestCycleFilter(t *testing.T) {
	l := New(testCatalog(t))

	l.CycleFilter(1)
	assert.Equal(t, content.FilterWeb, l.Filter())
	l.CycleFilter(-2)
	assert.Equal(t, content.FilterDesign, l.Filter())
	l.CycleFilter(1)
	assert.Equal(t, content.FilterAll, l.Filter())
}

func TestRelated(t *testing.T) {
	l := New(testCatalog(t))
	assert.Nil(t, l.Related(2))

	require.NoError(t, l.Open("a"))
	assert.Equal(t, []string{"c"}, ids(l.Related(2)))
}

func TestBackToLibrary(t *testing.T) {
	l := New(testCatalog(t))
	require.NoError(t, l.Open("a"))
	require.NoError(t, l.TogglePreview())

	l.BackToLibrary()
	assert.False(t, l.IsOpen())
	assert.Equal(t, PreviewOff, l.Preview())
}
