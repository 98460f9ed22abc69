// Package core provides filtering, sorting, and lookup logic for projects.
package core

import (
	"sort"
	"strings"

	"github.com/zachkp/folio/internal/model"
)

// SortField represents a field to sort by.
type SortField string

const (
	SortByAdded SortField = "added"
	SortByTitle SortField = "title"
	SortByTech  SortField = "tech"
)

// SortOrder represents ascending or descending order.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// SortOptions specifies sorting criteria.
type SortOptions struct {
	Field SortField // Field to sort by
	Order SortOrder // Sort order (asc/desc)
}

// DefaultSortOptions returns default sort options (newest first).
func DefaultSortOptions() SortOptions {
	return SortOptions{
		Field: SortByAdded,
		Order: SortDesc,
	}
}

// Sort sorts projects in place based on the provided options.
func Sort(projects []model.Project, opts SortOptions) {
	if len(projects) == 0 {
		return
	}

	sort.SliceStable(projects, func(i, j int) bool {
		var less bool

		switch opts.Field {
		case SortByAdded:
			less = projects[i].AddedAt < projects[j].AddedAt
		case SortByTitle:
			less = strings.ToLower(projects[i].Title) < strings.ToLower(projects[j].Title)
		case SortByTech:
			less = strings.ToLower(projects[i].Tech) < strings.ToLower(projects[j].Tech)
		default:
			less = projects[i].AddedAt < projects[j].AddedAt
		}

		if opts.Order == SortDesc {
			return !less
		}
		return less
	})
}

// ParseSortField parses a sort field string.
func ParseSortField(s string) (SortField, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "added", "time", "a":
		return SortByAdded, nil
	case "title", "name", "t":
		return SortByTitle, nil
	case "tech", "stack":
		return SortByTech, nil
	default:
		return SortByAdded, nil
	}
}

// ParseSortOrder parses a sort order string.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending", "a":
		return SortAsc, nil
	case "desc", "descending", "d":
		return SortDesc, nil
	default:
		return SortDesc, nil
	}
}
