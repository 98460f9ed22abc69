// Package core provides filtering, sorting, and lookup logic for projects.
package core

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/zachkp/folio/internal/model"
)

// FilterOp represents a comparison operator.
type FilterOp string

const (
	FilterOpEqual     FilterOp = "="  // Exact match
	FilterOpNotEqual  FilterOp = "!=" // Not equal
	FilterOpContains  FilterOp = "~"  // Contains substring
	FilterOpRegex     FilterOp = "~=" // Regex match
	FilterOpGreater   FilterOp = ">"  // Greater than
	FilterOpLess      FilterOp = "<"  // Less than
	FilterOpGreaterEq FilterOp = ">=" // Greater than or equal
	FilterOpLessEq    FilterOp = "<=" // Less than or equal
)

// FilterCondition represents a single filter condition.
type FilterCondition struct {
	Field    string   // Field name: title, summary, detail, tech, category, link, added
	Operator FilterOp // Comparison operator
	Value    string   // Value to compare against

	// Cached parsed values for efficiency
	regex   *regexp.Regexp // Compiled regex for ~= operator
	addedOp time.Time      // Parsed cutoff for added comparisons
}

// FilterExpr represents a compound filter expression.
// Multiple conditions are ANDed together.
type FilterExpr struct {
	Conditions []FilterCondition
}

// ParseDuration parses a duration string with extended formats.
// Supports: 48h, 7d, 1w, 0 (all time)
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)

	// Special case: 0 means no filter (all time)
	if s == "0" || s == "" {
		return 0, nil
	}

	// Handle day suffix (7d -> 168h)
	if daysStr, found := strings.CutSuffix(s, "d"); found {
		days, err := parseInt(daysStr)
		if err != nil {
			return 0, fmt.Errorf("invalid duration: %s", s)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}

	// Handle week suffix (1w -> 168h)
	if weeksStr, found := strings.CutSuffix(s, "w"); found {
		weeks, err := parseInt(weeksStr)
		if err != nil {
			return 0, fmt.Errorf("invalid duration: %s", s)
		}
		return time.Duration(weeks) * 7 * 24 * time.Hour, nil
	}

	// Standard Go duration parsing
	return time.ParseDuration(s)
}

func parseInt(s string) (int, error) {
	var n int
	_, err := fmt.Sscanf(s, "%d", &n)
	return n, err
}

// ParseFilter parses a filter expression string into a FilterExpr.
// Format: "field=value,field2~value2,field3>value3"
// Multiple conditions are comma-separated and ANDed together.
//
// Supported fields: title, summary, detail, tech, category, link, added
// Supported operators: = (equal), != (not equal), ~ (contains), ~= (regex), >, <, >=, <=
//
// Examples:
//   - "category=web" - whole categories string matches "web"
//   - "title~email" - title contains "email"
//   - "tech~=(?i)go" - tech matches regex (case-insensitive "go")
//   - "added>1w" - projects added in the last week
//   - "category~ml;tech~python" - tagged ml AND built with python
//
// Conditions may be separated with "," or ";".
func ParseFilter(expr string) (*FilterExpr, error) {
	if expr == "" {
		return &FilterExpr{}, nil
	}

	filter := &FilterExpr{
		Conditions: make([]FilterCondition, 0),
	}

	// Split by comma or semicolon
	for part := range strings.FieldsFuncSeq(expr, func(r rune) bool {
		return r == ',' || r == ';'
	}) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		cond, err := parseCondition(part)
		if err != nil {
			return nil, err
		}
		filter.Conditions = append(filter.Conditions, cond)
	}

	return filter, nil
}

// parseCondition parses a single condition like "category=web" or "title~email"
func parseCondition(s string) (FilterCondition, error) {
	// Try operators in order of specificity (longest first)
	operators := []FilterOp{
		FilterOpNotEqual,  // != (must be before =)
		FilterOpGreaterEq, // >= (must be before >)
		FilterOpLessEq,    // <= (must be before <)
		FilterOpRegex,     // ~= (must be before ~)
		FilterOpEqual,
		FilterOpContains,
		FilterOpGreater,
		FilterOpLess,
	}

	for _, op := range operators {
		idx := strings.Index(s, string(op))
		if idx > 0 {
			field := strings.TrimSpace(s[:idx])
			value := strings.TrimSpace(s[idx+len(op):])

			cond := FilterCondition{
				Field:    strings.ToLower(field),
				Operator: op,
				Value:    value,
			}

			// Pre-parse and validate based on field type
			if err := cond.init(); err != nil {
				return FilterCondition{}, err
			}

			return cond, nil
		}
	}

	return FilterCondition{}, fmt.Errorf("invalid filter condition: %s (missing operator)", s)
}

// init pre-parses and validates the condition value.
func (c *FilterCondition) init() error {
	switch c.Field {
	case "title", "name":
		c.Field = "title" // Normalize
	case "summary", "description", "desc":
		c.Field = "summary"
	case "detail", "body":
		c.Field = "detail"
	case "tech", "stack":
		c.Field = "tech"
	case "category", "categories", "cat", "tag":
		c.Field = "category"
	case "link", "url":
		c.Field = "link"
	case "added", "time", "ts":
		c.Field = "added"
		// Parse duration for relative time comparisons
		dur, err := ParseDuration(c.Value)
		if err != nil {
			return fmt.Errorf("invalid added value: %w", err)
		}
		c.addedOp = time.Now().Add(-dur)
	default:
		return fmt.Errorf("unknown filter field: %s", c.Field)
	}

	// Compile regex if needed
	if c.Operator == FilterOpRegex {
		re, err := regexp.Compile(c.Value)
		if err != nil {
			return fmt.Errorf("invalid regex: %w", err)
		}
		c.regex = re
	}

	return nil
}

// Match tests if a project matches the filter expression.
// All conditions must match (AND logic).
func (f *FilterExpr) Match(p model.Project) bool {
	for _, cond := range f.Conditions {
		if !cond.Match(p) {
			return false
		}
	}
	return true
}

// Match tests if a project matches this single condition.
func (c *FilterCondition) Match(p model.Project) bool {
	switch c.Field {
	case "title":
		return c.matchString(p.Title)
	case "summary":
		return c.matchString(p.Summary)
	case "detail":
		return c.matchString(p.Detail)
	case "tech":
		return c.matchString(p.Tech)
	case "category":
		return c.matchCategory(p)
	case "link":
		return c.matchString(p.Link)
	case "added":
		return c.matchAdded(time.Unix(p.AddedAt, 0))
	default:
		return false
	}
}

// matchString matches a string field.
func (c *FilterCondition) matchString(fieldValue string) bool {
	switch c.Operator {
	case FilterOpEqual:
		return fieldValue == c.Value
	case FilterOpNotEqual:
		return fieldValue != c.Value
	case FilterOpContains:
		return strings.Contains(strings.ToLower(fieldValue), strings.ToLower(c.Value))
	case FilterOpRegex:
		return c.regex != nil && c.regex.MatchString(fieldValue)
	default:
		return false
	}
}

// matchCategory matches the category field. Equality compares whole tags
// rather than the raw categories string, so "category=ml" matches "web,ml"
// but not "html-tools".
func (c *FilterCondition) matchCategory(p model.Project) bool {
	switch c.Operator {
	case FilterOpEqual:
		return p.HasCategory(c.Value)
	case FilterOpNotEqual:
		return !p.HasCategory(c.Value)
	case FilterOpContains:
		return strings.Contains(strings.ToLower(p.Categories), strings.ToLower(c.Value))
	case FilterOpRegex:
		return c.regex != nil && c.regex.MatchString(p.Categories)
	default:
		return false
	}
}

// matchAdded matches the added timestamp field.
func (c *FilterCondition) matchAdded(fieldValue time.Time) bool {
	switch c.Operator {
	case FilterOpGreater:
		return fieldValue.After(c.addedOp)
	case FilterOpLess:
		return fieldValue.Before(c.addedOp)
	case FilterOpGreaterEq:
		return fieldValue.After(c.addedOp) || fieldValue.Equal(c.addedOp)
	case FilterOpLessEq:
		return fieldValue.Before(c.addedOp) || fieldValue.Equal(c.addedOp)
	default:
		return false
	}
}

// FilterWithExpr filters projects using a filter expression.
func FilterWithExpr(projects []model.Project, expr *FilterExpr) []model.Project {
	if expr == nil || len(expr.Conditions) == 0 {
		return projects
	}

	result := make([]model.Project, 0, len(projects))
	for _, p := range projects {
		if expr.Match(p) {
			result = append(result, p)
		}
	}
	return result
}
