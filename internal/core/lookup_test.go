package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupByID(t *testing.T) {
	projects := sampleProjects()

	p := LookupByID(projects, "00000000000000000000000002")
	require.NotNil(t, p)
	assert.Equal(t, "Game Recommender", p.Title)

	assert.Nil(t, LookupByID(projects, "missing"))
	assert.Nil(t, LookupByID(nil, "00000000000000000000000002"))
}

func TestLookupByIndex(t *testing.T) {
	projects := sampleProjects()

	p := LookupByIndex(projects, 1)
	require.NotNil(t, p)
	assert.Equal(t, "Terminal Email Client", p.Title)

	p = LookupByIndex(projects, 3)
	require.NotNil(t, p)
	assert.Equal(t, "Portfolio Site", p.Title)

	assert.Nil(t, LookupByIndex(projects, 0))
	assert.Nil(t, LookupByIndex(projects, 4))
	assert.Nil(t, LookupByIndex(projects, -1))
}

func TestSearch(t *testing.T) {
	projects := sampleProjects()

	result := Search(projects, "email")
	require.Len(t, result, 1)
	assert.Equal(t, "Terminal Email Client", result[0].Title)

	// Matches tech too, case-insensitive
	result = Search(projects, "PYTHON")
	require.Len(t, result, 1)
	assert.Equal(t, "Game Recommender", result[0].Title)

	assert.Len(t, Search(projects, ""), 3)
	assert.Empty(t, Search(projects, "nomatch"))
}
