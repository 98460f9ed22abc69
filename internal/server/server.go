// Package server exposes the project catalog over a small HTTP API.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zachkp/folio/internal/catalog"
	"github.com/zachkp/folio/internal/config"
	"github.com/zachkp/folio/internal/core"
	"github.com/zachkp/folio/internal/theme"
)

// Server serves the catalog and theme preference as JSON.
type Server struct {
	cfg      *config.Config
	catalog  *catalog.Catalog
	themeCtl *theme.Controller
	engine   *gin.Engine
	logger   *slog.Logger
}

// New creates a server over the given catalog and theme controller.
func New(cfg *config.Config, c *catalog.Catalog, themeCtl *theme.Controller, logger *slog.Logger) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		cfg:      cfg,
		catalog:  c,
		themeCtl: themeCtl,
		engine:   engine,
		logger:   logger,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", s.handleHealth)

	api := s.engine.Group("/api")
	api.GET("/projects", s.handleProjects)
	api.GET("/projects/:id", s.handleProject)
	api.GET("/categories", s.handleCategories)
	api.GET("/theme", s.handleTheme)
}

// Engine exposes the underlying router, mainly for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) handleHealth(c *gin.Context) {
	count := 0
	if s.catalog != nil {
		count = s.catalog.Count()
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"projects": count,
	})
}

// handleProjects lists projects, optionally filtered by category.
// ?category= selects a tag ("all" or empty returns everything),
// ?exact=true requires whole-tag matches instead of substring matches,
// ?filter= applies a filter expression, ?search= does free-text search,
// ?sort= and ?order= control ordering, ?limit= caps the result count.
func (s *Server) handleProjects(c *gin.Context) {
	if s.catalog == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog unavailable"})
		return
	}

	opts := catalog.FilterOptions{
		Category: c.Query("category"),
		Exact:    s.cfg.Filter.Exact,
	}
	if v := c.Query("exact"); v != "" {
		exact, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "exact must be a boolean"})
			return
		}
		opts.Exact = exact
	}

	projects := s.catalog.Filter(opts)

	if v := c.Query("filter"); v != "" {
		expr, err := core.ParseFilter(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filter: " + err.Error()})
			return
		}
		projects = core.FilterWithExpr(projects, expr)
	}

	if v := c.Query("search"); v != "" {
		projects = core.Search(projects, v)
	}

	if v := c.Query("sort"); v != "" {
		field, _ := core.ParseSortField(v)
		order, _ := core.ParseSortOrder(c.Query("order"))
		core.Sort(projects, core.SortOptions{Field: field, Order: order})
	}

	if v := c.Query("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		if limit > 0 && len(projects) > limit {
			projects = projects[:limit]
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": projects,
		"count":    len(projects),
	})
}

func (s *Server) handleProject(c *gin.Context) {
	if s.catalog == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog unavailable"})
		return
	}

	p := s.catalog.GetByID(c.Param("id"))
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) handleCategories(c *gin.Context) {
	if s.catalog == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": s.catalog.Categories()})
}

func (s *Server) handleTheme(c *gin.Context) {
	name := theme.DefaultName
	if s.themeCtl != nil {
		name = s.themeCtl.Name()
	}
	c.JSON(http.StatusOK, gin.H{"theme": name})
}

// Run serves HTTP on the configured address until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Serve.Addr,
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.cfg.Serve.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
