package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zachkp/folio/internal/catalog"
	"github.com/zachkp/folio/internal/core"
	"github.com/zachkp/folio/internal/model"
)

var projectsOpts struct {
	// Filter options
	category string
	exact    bool
	filter   string
	search   string
	limit    int

	// Sort options
	sortBy    string
	sortOrder string

	// Output options
	format string
}

var projectsCmd = &cobra.Command{
	Use:   "projects [index|id]",
	Short: "Query and output the project catalog",
	Long: `Query the project catalog and output in various formats.

Without arguments, outputs all projects. With an index (1-based) or ID
argument, outputs that specific project.

Examples:
  # List all projects
  folio projects

  # Projects tagged "web", whole-tag matching
  folio projects --category web --exact

  # Filter expressions (AND logic, comma-separated)
  folio projects --filter "category=go,tech~gin"
  folio projects --filter "added>1w"

  # Free-text search across title, summary, detail and tech
  folio projects --search recommender

  # Get a specific project
  folio projects 2

  # Export as JSON or YAML
  folio projects --format json
  folio projects --format yaml`,
	RunE: runProjects,
}

func init() {
	rootCmd.AddCommand(projectsCmd)

	// Filter flags
	projectsCmd.Flags().StringVarP(&projectsOpts.category, "category", "c", "",
		"Filter by category tag (\"all\" or empty shows everything)")
	projectsCmd.Flags().BoolVar(&projectsOpts.exact, "exact", false,
		"Require whole-tag matches instead of substring matches")
	projectsCmd.Flags().StringVar(&projectsOpts.filter, "filter", "",
		"Filter expression (e.g. \"category=go,tech~gin\")")
	projectsCmd.Flags().StringVarP(&projectsOpts.search, "search", "s", "",
		"Search in title, summary, detail and tech")
	projectsCmd.Flags().IntVarP(&projectsOpts.limit, "limit", "n", 0,
		"Maximum number of projects to show (0=unlimited)")

	// Sort flags
	projectsCmd.Flags().StringVar(&projectsOpts.sortBy, "sort", "added",
		"Sort by field (added, title, tech)")
	projectsCmd.Flags().StringVar(&projectsOpts.sortOrder, "order", "desc",
		"Sort order (asc, desc)")

	// Output flags
	projectsCmd.Flags().StringVarP(&projectsOpts.format, "format", "f", "plain",
		"Output format (plain, json, yaml)")
}

func runProjects(cmd *cobra.Command, args []string) error {
	exact := projectsOpts.exact || cfg.Filter.Exact
	projects := projectCatalog.Filter(catalog.FilterOptions{
		Category: projectsOpts.category,
		Exact:    exact,
	})

	if projectsOpts.filter != "" {
		expr, err := core.ParseFilter(projectsOpts.filter)
		if err != nil {
			return fmt.Errorf("invalid filter: %w", err)
		}
		projects = core.FilterWithExpr(projects, expr)
	}

	if projectsOpts.search != "" {
		projects = core.Search(projects, projectsOpts.search)
	}

	sortField, _ := core.ParseSortField(projectsOpts.sortBy)
	sortOrder, _ := core.ParseSortOrder(projectsOpts.sortOrder)
	core.Sort(projects, core.SortOptions{Field: sortField, Order: sortOrder})

	if projectsOpts.limit > 0 && len(projects) > projectsOpts.limit {
		projects = projects[:projectsOpts.limit]
	}

	// Positional argument: index or ID lookup against the filtered view
	if len(args) > 0 {
		p, err := lookupProject(projects, args[0])
		if err != nil {
			return err
		}
		return outputProjects([]model.Project{*p})
	}

	return outputProjects(projects)
}

// lookupProject resolves a positional argument to a project. Small numbers
// are treated as 1-based indexes, anything else as a FolioID.
func lookupProject(projects []model.Project, arg string) (*model.Project, error) {
	if idx, err := strconv.Atoi(arg); err == nil {
		if p := core.LookupByIndex(projects, idx); p != nil {
			return p, nil
		}
		return nil, fmt.Errorf("no project at index %d (have %d)", idx, len(projects))
	}

	if p := core.LookupByID(projects, arg); p != nil {
		return p, nil
	}
	return nil, fmt.Errorf("no project with ID %s", arg)
}

func outputProjects(projects []model.Project) error {
	switch projectsOpts.format {
	case "plain":
		return outputPlain(projects)
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(projects)
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()
		return enc.Encode(projects)
	default:
		return fmt.Errorf("unknown format: %s (valid: plain, json, yaml)", projectsOpts.format)
	}
}

func outputPlain(projects []model.Project) error {
	for _, p := range projects {
		fmt.Printf("%s\t[%s]\t%s\t%s\n",
			p.Title,
			strings.Join(p.CategoryList(), ","),
			p.RelativeAdded(),
			p.Summary)
	}
	return nil
}
