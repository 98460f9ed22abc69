// Package core provides filtering, sorting, and lookup logic for projects.
package core

import (
	"strings"

	"github.com/zachkp/folio/internal/model"
)

// LookupByID finds a project by its FolioID.
// Returns nil if not found.
func LookupByID(projects []model.Project, id string) *model.Project {
	for i := range projects {
		if projects[i].FolioID == id {
			return &projects[i]
		}
	}
	return nil
}

// LookupByIndex finds a project by its index (1-based for user-friendliness).
// Returns nil if index is out of bounds.
func LookupByIndex(projects []model.Project, index int) *model.Project {
	// Convert to 0-based
	idx := index - 1
	if idx < 0 || idx >= len(projects) {
		return nil
	}
	return &projects[idx]
}

// Search finds projects matching a search term in title, summary, detail
// or tech. Case-insensitive substring match.
func Search(projects []model.Project, term string) []model.Project {
	if term == "" {
		return projects
	}

	term = strings.ToLower(term)
	var result []model.Project

	for _, p := range projects {
		if strings.Contains(strings.ToLower(p.Title), term) ||
			strings.Contains(strings.ToLower(p.Summary), term) ||
			strings.Contains(strings.ToLower(p.Detail), term) ||
			strings.Contains(strings.ToLower(p.Tech), term) {
			result = append(result, p)
		}
	}

	return result
}
