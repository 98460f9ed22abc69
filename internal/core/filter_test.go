package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zachkp/folio/internal/model"
)

func sampleProjects() []model.Project {
	now := time.Now().Unix()
	return []model.Project{
		{
			FolioID:    "00000000000000000000000001",
			Title:      "Terminal Email Client",
			Summary:    "A TUI email client",
			Categories: "tui,go",
			Tech:       "Go, bubbletea",
			AddedAt:    now - 3600,
		},
		{
			FolioID:    "00000000000000000000000002",
			Title:      "Game Recommender",
			Summary:    "ML-based game recommendations",
			Categories: "ml,web",
			Tech:       "Python, scikit-learn",
			AddedAt:    now - 14*24*3600,
		},
		{
			FolioID:    "00000000000000000000000003",
			Title:      "Portfolio Site",
			Summary:    "Personal portfolio website",
			Categories: "web,go",
			Tech:       "Go, gin, HTMX",
			AddedAt:    now - 600,
		},
	}
}

func TestParseFilter_Empty(t *testing.T) {
	expr, err := ParseFilter("")
	require.NoError(t, err)
	assert.Empty(t, expr.Conditions)
}

func TestParseFilter_SingleCondition(t *testing.T) {
	expr, err := ParseFilter("category=web")
	require.NoError(t, err)
	require.Len(t, expr.Conditions, 1)
	assert.Equal(t, "category", expr.Conditions[0].Field)
	assert.Equal(t, FilterOpEqual, expr.Conditions[0].Operator)
	assert.Equal(t, "web", expr.Conditions[0].Value)
}

func TestParseFilter_MultipleConditions(t *testing.T) {
	expr, err := ParseFilter("category=web,tech~go")
	require.NoError(t, err)
	assert.Len(t, expr.Conditions, 2)

	// Semicolon separator works too
	expr, err = ParseFilter("category=web;tech~go")
	require.NoError(t, err)
	assert.Len(t, expr.Conditions, 2)
}

func TestParseFilter_FieldAliases(t *testing.T) {
	tests := []struct {
		input string
		field string
	}{
		{"name~email", "title"},
		{"desc~client", "summary"},
		{"body~x", "detail"},
		{"stack~go", "tech"},
		{"tag=web", "category"},
		{"url~github", "link"},
		{"time>1h", "added"},
	}

	for _, tt := range tests {
		expr, err := ParseFilter(tt.input)
		require.NoError(t, err, tt.input)
		require.Len(t, expr.Conditions, 1, tt.input)
		assert.Equal(t, tt.field, expr.Conditions[0].Field, tt.input)
	}
}

func TestParseFilter_Errors(t *testing.T) {
	_, err := ParseFilter("nosuchfield=x")
	assert.Error(t, err)

	_, err = ParseFilter("title")
	assert.Error(t, err)

	_, err = ParseFilter("title~=[invalid")
	assert.Error(t, err)

	_, err = ParseFilter("added>notaduration")
	assert.Error(t, err)
}

func TestFilterWithExpr_StringOps(t *testing.T) {
	projects := sampleProjects()

	expr, err := ParseFilter("title~email")
	require.NoError(t, err)
	result := FilterWithExpr(projects, expr)
	require.Len(t, result, 1)
	assert.Equal(t, "Terminal Email Client", result[0].Title)

	expr, err = ParseFilter("title=Portfolio Site")
	require.NoError(t, err)
	result = FilterWithExpr(projects, expr)
	require.Len(t, result, 1)
	assert.Equal(t, "Portfolio Site", result[0].Title)

	expr, err = ParseFilter("title!=Portfolio Site")
	require.NoError(t, err)
	assert.Len(t, FilterWithExpr(projects, expr), 2)

	expr, err = ParseFilter("tech~=(?i)python")
	require.NoError(t, err)
	result = FilterWithExpr(projects, expr)
	require.Len(t, result, 1)
	assert.Equal(t, "Game Recommender", result[0].Title)
}

func TestFilterWithExpr_CategoryEqualMatchesWholeTags(t *testing.T) {
	projects := []model.Project{
		{FolioID: "00000000000000000000000011", Title: "a", Categories: "web,ml"},
		{FolioID: "00000000000000000000000012", Title: "b", Categories: "html-tools"},
	}

	// Equality matches whole tags
	expr, err := ParseFilter("category=ml")
	require.NoError(t, err)
	result := FilterWithExpr(projects, expr)
	require.Len(t, result, 1)
	assert.Equal(t, "a", result[0].Title)

	// Containment matches the raw string, picking up "ml" in "html-tools"
	expr, err = ParseFilter("category~ml")
	require.NoError(t, err)
	assert.Len(t, FilterWithExpr(projects, expr), 2)
}

func TestFilterWithExpr_Added(t *testing.T) {
	projects := sampleProjects()

	// Projects from the last week (excludes the 14-day-old one)
	expr, err := ParseFilter("added>1w")
	require.NoError(t, err)
	result := FilterWithExpr(projects, expr)
	assert.Len(t, result, 2)

	expr, err = ParseFilter("added<1w")
	require.NoError(t, err)
	result = FilterWithExpr(projects, expr)
	require.Len(t, result, 1)
	assert.Equal(t, "Game Recommender", result[0].Title)
}

func TestFilterWithExpr_AndLogic(t *testing.T) {
	projects := sampleProjects()

	expr, err := ParseFilter("category=go,tech~gin")
	require.NoError(t, err)
	result := FilterWithExpr(projects, expr)
	require.Len(t, result, 1)
	assert.Equal(t, "Portfolio Site", result[0].Title)
}

func TestFilterWithExpr_NilAndEmpty(t *testing.T) {
	projects := sampleProjects()

	assert.Len(t, FilterWithExpr(projects, nil), 3)
	assert.Len(t, FilterWithExpr(projects, &FilterExpr{}), 3)
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"0", 0, false},
		{"", 0, false},
		{"48h", 48 * time.Hour, false},
		{"7d", 7 * 24 * time.Hour, false},
		{"1w", 7 * 24 * time.Hour, false},
		{"90m", 90 * time.Minute, false},
		{"xyz", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseDuration(tt.input)
		if tt.wantErr {
			assert.Error(t, err, tt.input)
			continue
		}
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}
}
