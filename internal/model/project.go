// Package model defines the core data structures for folio.
package model

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/oklog/ulid/v2"
)

// FilterAll is the filter tag that matches every project.
const FilterAll = "all"

// Project represents a single portfolio entry.
// This is the normalized format stored in the catalog and rendered by the TUI
// and the HTTP API.
type Project struct {
	// folio metadata
	FolioID     string `json:"folio_id" yaml:"folio_id"`
	AddedAt     int64  `json:"added_at" yaml:"added_at"`
	ContentHash string `json:"content_hash,omitempty" yaml:"content_hash,omitempty"` // SHA256 hash for deduplication

	// Portfolio fields
	Title      string `json:"title" yaml:"title"`
	Summary    string `json:"summary" yaml:"summary"`
	Detail     string `json:"detail,omitempty" yaml:"detail,omitempty"`
	Categories string `json:"categories" yaml:"categories"` // comma-separated tags, e.g. "web,ml"
	Link       string `json:"link,omitempty" yaml:"link,omitempty"`
	Tech       string `json:"tech,omitempty" yaml:"tech,omitempty"`
}

// Validation errors.
var (
	ErrEmptyFolioID    = errors.New("folio_id cannot be empty")
	ErrEmptyTitle      = errors.New("title cannot be empty")
	ErrEmptyCategories = errors.New("categories cannot be empty")
	ErrInvalidAddedAt  = errors.New("added_at must be greater than 0")
)

// NewProject creates a new Project with a generated ULID and metadata.
func NewProject(title string) (*Project, error) {
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ULID: %w", err)
	}

	return &Project{
		FolioID: id.String(),
		AddedAt: time.Now().Unix(),
		Title:   title,
	}, nil
}

// Validate checks that the project has all required fields.
func (p *Project) Validate() error {
	if p.FolioID == "" {
		return ErrEmptyFolioID
	}
	if p.Title == "" {
		return ErrEmptyTitle
	}
	if p.Categories == "" {
		return ErrEmptyCategories
	}
	if p.AddedAt <= 0 {
		return ErrInvalidAddedAt
	}
	return nil
}

// MatchesFilter reports whether the project should be visible for the given
// filter tag. The "all" tag matches every project. In substring mode the tag
// only needs to appear somewhere in the categories string, which mirrors the
// original page behaviour. Exact mode compares against the individual tags.
// Both modes ignore case, so a tag offered by the filter bar (which
// lowercases) always matches the project it came from.
func (p *Project) MatchesFilter(tag string, exact bool) bool {
	if tag == FilterAll {
		return true
	}
	if exact {
		return p.HasCategory(tag)
	}
	return strings.Contains(strings.ToLower(p.Categories), strings.ToLower(tag))
}

// HasCategory reports whether tag is one of the project's category tags.
// Tags are compared case-insensitively after trimming.
func (p *Project) HasCategory(tag string) bool {
	for _, c := range p.CategoryList() {
		if strings.EqualFold(c, strings.TrimSpace(tag)) {
			return true
		}
	}
	return false
}

// CategoryList returns the individual category tags, split on commas and
// whitespace with empty entries dropped.
func (p *Project) CategoryList() []string {
	fields := strings.FieldsFunc(p.Categories, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// RelativeAdded returns a human-readable relative time for AddedAt,
// e.g. "3 months ago".
func (p *Project) RelativeAdded() string {
	return humanize.Time(time.Unix(p.AddedAt, 0))
}

// SummaryTruncated returns the summary truncated to maxLen characters.
// If the summary is longer, it is truncated and "..." is appended.
func (p *Project) SummaryTruncated(maxLen int) string {
	if maxLen <= 0 {
		return ""
	}

	// Collapse whitespace and newlines to single spaces
	summary := strings.Join(strings.Fields(p.Summary), " ")

	if len(summary) <= maxLen {
		return summary
	}
	if maxLen <= 3 {
		return summary[:maxLen]
	}
	return summary[:maxLen-3] + "..."
}

// DedupeKey returns a string key for deduplication.
// Projects with the same title, summary and categories are considered the
// same entry even when reimported with a fresh ULID.
func (p *Project) DedupeKey() string {
	return fmt.Sprintf("%s:%s:%s", p.Title, p.Summary, p.Categories)
}

// ComputeContentHash generates a SHA256 hash of the project content.
func (p *Project) ComputeContentHash() string {
	hash := sha256.Sum256([]byte(p.DedupeKey()))
	return hex.EncodeToString(hash[:])
}

// EnsureContentHash computes and sets the ContentHash if not already set.
func (p *Project) EnsureContentHash() {
	if p.ContentHash == "" {
		p.ContentHash = p.ComputeContentHash()
	}
}

// AddedAtTime returns the added timestamp as a time.Time.
func (p *Project) AddedAtTime() time.Time {
	return time.Unix(p.AddedAt, 0)
}

// Clone creates a copy of the project.
func (p *Project) Clone() *Project {
	clone := *p
	return &clone
}
