package catalog

import (
	"time"

	"github.com/zachkp/folio/internal/model"
)

// Seed returns the built-in starter projects used when no data file exists
// yet, so a fresh install has something to show.
func Seed() []model.Project {
	now := time.Now().Unix()

	entries := []struct {
		title      string
		summary    string
		categories string
		tech       string
	}{
		{
			title: "Terminal Email Client",
			summary: "A terminal-based email client built in Go with fuzzyfinder " +
				"capabilities using the Charmbracelet TUI framework and go-imap.",
			categories: "tui,go",
			tech:       "Go, Bubbletea, go-imap",
		},
		{
			title: "Music Streaming TUI",
			summary: "A terminal-based music streaming application with an elegant " +
				"TUI interface, leveraging yt-dlp and mpv for YouTube Music playback " +
				"directly from the command line.",
			categories: "tui,audio,go",
			tech:       "Go, Bubbletea, mpv",
		},
		{
			title: "Game Recommender",
			summary: "A machine learning-powered web application that uses TF-IDF " +
				"vectorization and cosine similarity to recommend games based on " +
				"content analysis, with interactive data visualizations.",
			categories: "ml,web",
			tech:       "Python, scikit-learn, Flask",
		},
		{
			title: "Portfolio Site",
			summary: "A modern, responsive portfolio website built with Go, the Gin " +
				"framework, and HTMX for dynamic interactions without a client-side " +
				"framework.",
			categories: "web,go",
			tech:       "Go, Gin, HTMX",
		},
	}

	projects := make([]model.Project, 0, len(entries))
	for i, e := range entries {
		p, err := model.NewProject(e.title)
		if err != nil {
			continue
		}
		p.Summary = e.summary
		p.Categories = e.categories
		p.Tech = e.tech
		// Spread added times so the newest-first ordering is stable
		p.AddedAt = now - int64(i)
		p.EnsureContentHash()
		projects = append(projects, *p)
	}

	return projects
}
