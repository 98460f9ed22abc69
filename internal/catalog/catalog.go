// Package catalog provides the project catalog backing the TUI and the
// HTTP API.
package catalog

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/zachkp/folio/internal/model"
)

// ChangeType indicates the type of catalog change.
type ChangeType int

const (
	// ChangeTypeAdd indicates projects were added.
	ChangeTypeAdd ChangeType = iota
	// ChangeTypeDelete indicates a project was deleted.
	ChangeTypeDelete
	// ChangeTypeClear indicates all projects were cleared.
	ChangeTypeClear
)

// ChangeEvent signals catalog content changes.
type ChangeEvent struct {
	Type  ChangeType
	Count int
}

// FilterOptions specifies criteria for filtering projects.
type FilterOptions struct {
	Category string // Filter tag; "all" or empty matches every project
	Exact    bool   // Exact tag membership instead of substring containment
	Limit    int    // Maximum results (0=unlimited)
}

// ErrCatalogClosed is returned when operations are attempted on a closed catalog.
var ErrCatalogClosed = errors.New("catalog is closed")

// Catalog manages the project collection with thread-safe operations.
type Catalog struct {
	mu        sync.RWMutex
	projects  []model.Project
	index     map[string]int // folio_id -> slice index
	hashIndex map[string]int // content_hash -> slice index (for deduplication)

	persistence Persistence

	subscribers []chan ChangeEvent
	closed      bool
}

// New creates a Catalog. If persistence is not nil, it is used to persist
// projects.
func New(persistence Persistence) *Catalog {
	return &Catalog{
		projects:    make([]model.Project, 0),
		index:       make(map[string]int),
		hashIndex:   make(map[string]int),
		persistence: persistence,
		subscribers: make([]chan ChangeEvent, 0),
	}
}

// Add adds a single project to the catalog.
func (c *Catalog) Add(p model.Project) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrCatalogClosed
	}

	p.EnsureContentHash()

	// Skip duplicates by content hash, then by ULID
	if _, exists := c.hashIndex[p.ContentHash]; exists {
		return nil
	}
	if _, exists := c.index[p.FolioID]; exists {
		return nil
	}

	idx := len(c.projects)
	c.projects = append(c.projects, p)
	c.index[p.FolioID] = idx
	c.hashIndex[p.ContentHash] = idx

	if c.persistence != nil {
		if err := c.persistence.Append(p); err != nil {
			return err
		}
	}

	c.notifyChange(ChangeEvent{Type: ChangeTypeAdd, Count: 1})
	return nil
}

// AddBatch adds multiple projects efficiently.
func (c *Catalog) AddBatch(ps []model.Project) error {
	if len(ps) == 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrCatalogClosed
	}

	toAdd := make([]model.Project, 0, len(ps))
	seenHashes := make(map[string]bool) // dedupe within the batch too

	for i := range ps {
		ps[i].EnsureContentHash()
		hash := ps[i].ContentHash

		if _, exists := c.hashIndex[hash]; exists {
			continue
		}
		if seenHashes[hash] {
			continue
		}
		if _, exists := c.index[ps[i].FolioID]; exists {
			continue
		}

		seenHashes[hash] = true
		toAdd = append(toAdd, ps[i])
	}

	if len(toAdd) == 0 {
		return nil
	}

	startIdx := len(c.projects)
	c.projects = append(c.projects, toAdd...)
	for i, p := range toAdd {
		idx := startIdx + i
		c.index[p.FolioID] = idx
		c.hashIndex[p.ContentHash] = idx
	}

	if c.persistence != nil {
		if err := c.persistence.AppendBatch(toAdd); err != nil {
			return err
		}
	}

	c.notifyChange(ChangeEvent{Type: ChangeTypeAdd, Count: len(toAdd)})
	return nil
}

// All returns all projects sorted by added time, newest first.
func (c *Catalog) All() []model.Project {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]model.Project, len(c.projects))
	copy(result, c.projects)

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].AddedAt > result[j].AddedAt
	})

	return result
}

// Filter returns projects matching the criteria, newest first.
// The same project set always comes back for the same options; repeated
// calls with an unchanged active filter are idempotent.
func (c *Catalog) Filter(opts FilterOptions) []model.Project {
	tag := opts.Category
	if tag == "" {
		tag = model.FilterAll
	}

	all := c.All()
	result := make([]model.Project, 0, len(all))
	for _, p := range all {
		if p.MatchesFilter(tag, opts.Exact) {
			result = append(result, p)
		}
	}

	if opts.Limit > 0 && len(result) > opts.Limit {
		result = result[:opts.Limit]
	}

	return result
}

// Categories returns the distinct category tags across all projects,
// sorted, with the "all" tag first. This drives the TUI filter bar.
func (c *Catalog) Categories() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]bool)
	for _, p := range c.projects {
		for _, tag := range p.CategoryList() {
			seen[strings.ToLower(tag)] = true
		}
	}

	tags := make([]string, 0, len(seen)+1)
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	return append([]string{model.FilterAll}, tags...)
}

// GetByID returns a project by its ULID.
func (c *Catalog) GetByID(id string) *model.Project {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if idx, exists := c.index[id]; exists {
		p := c.projects[idx]
		return &p
	}
	return nil
}

// Count returns the total number of projects.
func (c *Catalog) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.projects)
}

// Delete removes a project by its ULID.
func (c *Catalog) Delete(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrCatalogClosed
	}

	idx, exists := c.index[id]
	if !exists {
		return nil
	}

	c.projects = append(c.projects[:idx], c.projects[idx+1:]...)
	c.rebuildIndices()

	if c.persistence != nil {
		if err := c.persistence.Rewrite(c.projects); err != nil {
			return err
		}
	}

	c.notifyChange(ChangeEvent{Type: ChangeTypeDelete, Count: 1})
	return nil
}

// Update modifies a project in the catalog.
func (c *Catalog) Update(p model.Project) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrCatalogClosed
	}

	idx, exists := c.index[p.FolioID]
	if !exists {
		return nil
	}

	c.projects[idx] = p
	c.rebuildIndices()

	if c.persistence != nil {
		return c.persistence.Rewrite(c.projects)
	}
	return nil
}

// Clear removes all projects from the catalog.
func (c *Catalog) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrCatalogClosed
	}

	count := len(c.projects)
	c.projects = make([]model.Project, 0)
	c.index = make(map[string]int)
	c.hashIndex = make(map[string]int)

	if c.persistence != nil {
		if err := c.persistence.Clear(); err != nil {
			return err
		}
	}

	c.notifyChange(ChangeEvent{Type: ChangeTypeClear, Count: count})
	return nil
}

// Hydrate loads projects from persistence into the catalog.
func (c *Catalog) Hydrate() error {
	if c.persistence == nil {
		return nil
	}

	projects, err := c.persistence.Load()
	if err != nil {
		return err
	}

	c.mu.Lock()
	added := 0
	for i := range projects {
		p := &projects[i]
		p.EnsureContentHash()

		if _, exists := c.hashIndex[p.ContentHash]; exists {
			continue
		}
		if _, exists := c.index[p.FolioID]; exists {
			continue
		}

		idx := len(c.projects)
		c.projects = append(c.projects, *p)
		c.index[p.FolioID] = idx
		c.hashIndex[p.ContentHash] = idx
		added++
	}
	c.mu.Unlock()

	if added > 0 {
		c.mu.Lock()
		c.notifyChange(ChangeEvent{Type: ChangeTypeAdd, Count: added})
		c.mu.Unlock()
	}

	return nil
}

// Subscribe returns a channel that receives change events.
func (c *Catalog) Subscribe() <-chan ChangeEvent {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan ChangeEvent, 10)
	c.subscribers = append(c.subscribers, ch)
	return ch
}

// Unsubscribe removes a subscription.
func (c *Catalog) Unsubscribe(ch <-chan ChangeEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, sub := range c.subscribers {
		if sub == ch {
			c.subscribers = append(c.subscribers[:i], c.subscribers[i+1:]...)
			close(sub)
			return
		}
	}
}

// Close releases resources and closes all subscriber channels.
func (c *Catalog) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	for _, ch := range c.subscribers {
		close(ch)
	}
	c.subscribers = nil

	if c.persistence != nil {
		return c.persistence.Close()
	}
	return nil
}

// rebuildIndices recomputes the id and hash indices after slice surgery.
// Callers must hold the write lock.
func (c *Catalog) rebuildIndices() {
	c.index = make(map[string]int, len(c.projects))
	c.hashIndex = make(map[string]int, len(c.projects))
	for i, p := range c.projects {
		c.index[p.FolioID] = i
		if p.ContentHash != "" {
			c.hashIndex[p.ContentHash] = i
		}
	}
}

// notifyChange sends a change event to all subscribers (non-blocking).
// Callers must hold the lock.
func (c *Catalog) notifyChange(event ChangeEvent) {
	for _, ch := range c.subscribers {
		select {
		case ch <- event:
		default:
			// Channel full, skip
		}
	}
}
