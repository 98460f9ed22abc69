package catalog

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zachkp/folio/internal/model"
)

var testIDCounter int

func testProject(title, categories string) model.Project {
	testIDCounter++
	return model.Project{
		FolioID:    fmt.Sprintf("%026d", testIDCounter),
		Title:      title,
		Summary:    "summary of " + title,
		Categories: categories,
		AddedAt:    time.Now().Unix(),
	}
}

func testProjectWithTime(title string, addedAt int64) model.Project {
	p := testProject(title, "web")
	p.AddedAt = addedAt
	return p
}

func TestNew(t *testing.T) {
	c := New(nil)
	assert.NotNil(t, c)
	assert.Equal(t, 0, c.Count())
}

func TestCatalog_Add(t *testing.T) {
	c := New(nil)
	defer c.Close()

	p := testProject("one", "web")
	require.NoError(t, c.Add(p))
	assert.Equal(t, 1, c.Count())

	// Duplicate content is skipped
	require.NoError(t, c.Add(p))
	assert.Equal(t, 1, c.Count())

	require.NoError(t, c.Add(testProject("two", "ml")))
	assert.Equal(t, 2, c.Count())
}

func TestCatalog_AddBatch(t *testing.T) {
	c := New(nil)
	defer c.Close()

	ps := []model.Project{
		testProject("a", "web"),
		testProject("b", "ml"),
		testProject("c", "tui"),
	}
	require.NoError(t, c.AddBatch(ps))
	assert.Equal(t, 3, c.Count())

	// Batch with duplicates only adds the new entry
	require.NoError(t, c.AddBatch([]model.Project{
		testProject("c", "tui"),
		testProject("d", "web"),
	}))
	assert.Equal(t, 4, c.Count())
}

func TestCatalog_AllNewestFirst(t *testing.T) {
	c := New(nil)
	defer c.Close()

	now := time.Now().Unix()
	require.NoError(t, c.Add(testProjectWithTime("old", now-100)))
	require.NoError(t, c.Add(testProjectWithTime("new", now)))

	all := c.All()
	require.Len(t, all, 2)
	assert.Equal(t, "new", all[0].Title)
	assert.Equal(t, "old", all[1].Title)
}

func TestCatalog_Filter_HappyPath(t *testing.T) {
	c := New(nil)
	defer c.Close()

	require.NoError(t, c.Add(testProject("card1", "web")))
	require.NoError(t, c.Add(testProject("card2", "ml")))
	require.NoError(t, c.Add(testProject("card3", "web,ml")))

	visible := c.Filter(FilterOptions{Category: "web"})
	titles := projectTitles(visible)
	assert.ElementsMatch(t, []string{"card1", "card3"}, titles)

	visible = c.Filter(FilterOptions{Category: "all"})
	assert.Len(t, visible, 3)

	// Empty category behaves like "all"
	visible = c.Filter(FilterOptions{})
	assert.Len(t, visible, 3)
}

func TestCatalog_Filter_SubstringQuirk(t *testing.T) {
	c := New(nil)
	defer c.Close()

	require.NoError(t, c.Add(testProject("tools", "html-tools")))

	// Substring mode matches "ml" inside "html-tools"
	assert.Len(t, c.Filter(FilterOptions{Category: "ml"}), 1)

	// Exact mode does not
	assert.Len(t, c.Filter(FilterOptions{Category: "ml", Exact: true}), 0)
}

func TestCatalog_Filter_Idempotent(t *testing.T) {
	c := New(nil)
	defer c.Close()

	require.NoError(t, c.Add(testProject("card1", "web")))
	require.NoError(t, c.Add(testProject("card2", "ml")))

	first := c.Filter(FilterOptions{Category: "web"})
	second := c.Filter(FilterOptions{Category: "web"})
	assert.Equal(t, first, second)
}

func TestCatalog_Filter_Limit(t *testing.T) {
	c := New(nil)
	defer c.Close()

	for i := 0; i < 5; i++ {
		require.NoError(t, c.Add(testProject(fmt.Sprintf("p%d", i), "web")))
	}

	assert.Len(t, c.Filter(FilterOptions{Category: "web", Limit: 3}), 3)
}

func TestCatalog_Categories(t *testing.T) {
	c := New(nil)
	defer c.Close()

	require.NoError(t, c.Add(testProject("one", "web,ml")))
	require.NoError(t, c.Add(testProject("two", "TUI")))

	assert.Equal(t, []string{"all", "ml", "tui", "web"}, c.Categories())
}

func TestCatalog_GetByID(t *testing.T) {
	c := New(nil)
	defer c.Close()

	p := testProject("one", "web")
	require.NoError(t, c.Add(p))

	got := c.GetByID(p.FolioID)
	require.NotNil(t, got)
	assert.Equal(t, "one", got.Title)

	assert.Nil(t, c.GetByID("missing"))
}

func TestCatalog_Delete(t *testing.T) {
	c := New(nil)
	defer c.Close()

	p := testProject("one", "web")
	require.NoError(t, c.Add(p))
	require.NoError(t, c.Add(testProject("two", "ml")))

	require.NoError(t, c.Delete(p.FolioID))
	assert.Equal(t, 1, c.Count())
	assert.Nil(t, c.GetByID(p.FolioID))

	// Deleting a missing id is a no-op
	require.NoError(t, c.Delete("missing"))
	assert.Equal(t, 1, c.Count())
}

func TestCatalog_Update(t *testing.T) {
	c := New(nil)
	defer c.Close()

	p := testProject("one", "web")
	require.NoError(t, c.Add(p))

	p.Summary = "rewritten"
	require.NoError(t, c.Update(p))

	got := c.GetByID(p.FolioID)
	require.NotNil(t, got)
	assert.Equal(t, "rewritten", got.Summary)
}

func TestCatalog_Clear(t *testing.T) {
	c := New(nil)
	defer c.Close()

	require.NoError(t, c.Add(testProject("one", "web")))
	require.NoError(t, c.Clear())
	assert.Equal(t, 0, c.Count())
}

func TestCatalog_Subscribe(t *testing.T) {
	c := New(nil)
	defer c.Close()

	ch := c.Subscribe()

	require.NoError(t, c.Add(testProject("one", "web")))

	select {
	case ev := <-ch:
		assert.Equal(t, ChangeTypeAdd, ev.Type)
		assert.Equal(t, 1, ev.Count)
	case <-time.After(time.Second):
		t.Fatal("no change event received")
	}
}

func TestCatalog_ClosedErrors(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.Close())

	assert.ErrorIs(t, c.Add(testProject("one", "web")), ErrCatalogClosed)
	assert.ErrorIs(t, c.Clear(), ErrCatalogClosed)

	// Closing twice is fine
	assert.NoError(t, c.Close())
}

func TestSeed(t *testing.T) {
	projects := Seed()
	require.NotEmpty(t, projects)

	for _, p := range projects {
		assert.NoError(t, p.Validate())
		assert.NotEmpty(t, p.ContentHash)
	}

	// Seeded twice into one catalog still yields one copy of each by title
	c := New(nil)
	defer c.Close()
	require.NoError(t, c.AddBatch(Seed()))
	count := c.Count()
	require.NoError(t, c.AddBatch(Seed()))
	assert.Equal(t, count, c.Count())
}

func projectTitles(ps []model.Project) []string {
	titles := make([]string, len(ps))
	for i, p := range ps {
		titles[i] = p.Title
	}
	return titles
}
