package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zachkp/folio/internal/model"
)

func titles(projects []model.Project) []string {
	out := make([]string, len(projects))
	for i, p := range projects {
		out[i] = p.Title
	}
	return out
}

func TestSort_ByAddedDesc(t *testing.T) {
	projects := sampleProjects()
	Sort(projects, DefaultSortOptions())

	assert.Equal(t, []string{"Portfolio Site", "Terminal Email Client", "Game Recommender"}, titles(projects))
}

func TestSort_ByAddedAsc(t *testing.T) {
	projects := sampleProjects()
	Sort(projects, SortOptions{Field: SortByAdded, Order: SortAsc})

	assert.Equal(t, []string{"Game Recommender", "Terminal Email Client", "Portfolio Site"}, titles(projects))
}

func TestSort_ByTitle(t *testing.T) {
	projects := sampleProjects()
	Sort(projects, SortOptions{Field: SortByTitle, Order: SortAsc})

	assert.Equal(t, []string{"Game Recommender", "Portfolio Site", "Terminal Email Client"}, titles(projects))
}

func TestSort_Stable(t *testing.T) {
	projects := []model.Project{
		{FolioID: "00000000000000000000000001", Title: "first", AddedAt: 100},
		{FolioID: "00000000000000000000000002", Title: "second", AddedAt: 100},
	}
	Sort(projects, SortOptions{Field: SortByAdded, Order: SortAsc})

	assert.Equal(t, []string{"first", "second"}, titles(projects))
}

func TestSort_Empty(t *testing.T) {
	Sort(nil, DefaultSortOptions())
}

func TestParseSortField(t *testing.T) {
	for input, want := range map[string]SortField{
		"added":   SortByAdded,
		"time":    SortByAdded,
		"title":   SortByTitle,
		"name":    SortByTitle,
		"tech":    SortByTech,
		"unknown": SortByAdded,
	} {
		got, err := ParseSortField(input)
		assert.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}
}

func TestParseSortOrder(t *testing.T) {
	for input, want := range map[string]SortOrder{
		"asc":     SortAsc,
		"desc":    SortDesc,
		"unknown": SortDesc,
	} {
		got, err := ParseSortOrder(input)
		assert.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}
}
