// Package tui provides the BubbleTea-based terminal user interface.
package tui

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zachkp/folio/internal/catalog"
	"github.com/zachkp/folio/internal/config"
	"github.com/zachkp/folio/internal/model"
	"github.com/zachkp/folio/internal/prefs"
	"github.com/zachkp/folio/internal/theme"
	"github.com/zachkp/folio/internal/typewriter"
)

// Mode represents the current UI mode.
type Mode int

const (
	ModeList Mode = iota
	ModeDetail
	ModeHelp
)

// Model is the main TUI model.
type Model struct {
	// Configuration
	cfg      *config.Config
	catalog  *catalog.Catalog
	themeCtl *theme.Controller

	// Current mode
	mode Mode

	// Components
	list     list.Model
	viewport viewport.Model

	// Filter bar state. Exactly one filter is active at a time.
	filters      []string
	activeFilter int

	// Typewriter header state. animGen is the stop handle: ticks from an
	// older generation are dropped, so bumping it cancels the animation.
	anim    typewriter.Animator
	animGen int
	animOn  bool

	// State
	selected *model.Project
	width    int
	height   int
	ready    bool

	// Key bindings
	keys KeyMap

	// Status message
	statusMsg string
	statusErr bool

	// Refresh channel subscription
	refreshCh <-chan catalog.ChangeEvent
}

// projectItem wraps a project for the list component.
type projectItem struct {
	project model.Project
	summary int // summary truncation length
}

func (i projectItem) Title() string {
	return i.project.Title
}

func (i projectItem) Description() string {
	return fmt.Sprintf("[%s] %s - %s",
		i.project.Categories,
		i.project.RelativeAdded(),
		i.project.SummaryTruncated(i.summary))
}

func (i projectItem) FilterValue() string {
	return i.project.Title + " " + i.project.Summary + " " + i.project.Categories
}

// projectDelegate renders list items with the active palette.
type projectDelegate struct {
	list.DefaultDelegate
	palette theme.Palette
}

// newProjectDelegate creates a delegate styled from the given palette.
func newProjectDelegate(p theme.Palette) projectDelegate {
	d := list.NewDefaultDelegate()
	return projectDelegate{DefaultDelegate: d, palette: p}
}

// Render renders a list item using the palette's card styles.
func (d projectDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	pi, ok := item.(projectItem)
	if !ok {
		d.DefaultDelegate.Render(w, m, index, item)
		return
	}

	isSelected := index == m.Index()

	itemWidth := m.Width() - d.DefaultDelegate.Styles.NormalTitle.GetHorizontalPadding()

	var titleStyle, descStyle lipgloss.Style
	if isSelected {
		titleStyle = d.palette.CardTitleFocused
		descStyle = d.palette.CardDescFocused
	} else {
		titleStyle = d.palette.CardTitle
		descStyle = d.palette.CardDesc
	}

	title := pi.Title()
	if itemWidth > 0 && len(title) > itemWidth {
		title = title[:itemWidth-1] + "…"
	}

	desc := pi.Description()
	if itemWidth > 0 && len(desc) > itemWidth {
		desc = desc[:itemWidth-1] + "…"
	}

	fmt.Fprint(w, titleStyle.Render(title))
	fmt.Fprint(w, "\n")
	fmt.Fprint(w, descStyle.Render(desc))
}

// New creates a new TUI model.
func New(cfg *config.Config, c *catalog.Catalog, themeCtl *theme.Controller) Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if themeCtl == nil {
		themeCtl = theme.NewController(nil)
	}

	delegate := newProjectDelegate(themeCtl.Palette())
	l := list.New(nil, delegate, 0, 0)
	l.Title = "Projects"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	anim, err := typewriter.NewWithTiming(cfg.Typewriter.Roles, cfg.Typewriter.Timing())
	animOn := err == nil

	m := Model{
		cfg:          cfg,
		catalog:      c,
		themeCtl:     themeCtl,
		mode:         ModeList,
		list:         l,
		filters:      []string{model.FilterAll},
		activeFilter: 0,
		anim:         anim,
		animOn:       animOn,
		keys:         DefaultKeyMap(),
	}

	if c != nil {
		m.refreshCh = c.Subscribe()
	}

	return m
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.loadProjects,
		m.watchForChanges,
	}
	if m.animOn {
		// First animation tick fires immediately
		gen := m.animGen
		cmds = append(cmds, func() tea.Msg { return animTickMsg{gen: gen} })
	}
	return tea.Batch(cmds...)
}

// loadProjects fetches projects from the catalog.
func (m Model) loadProjects() tea.Msg {
	return loadProjectsMsg{}
}

type loadProjectsMsg struct{}

// watchForChanges watches for catalog changes.
func (m Model) watchForChanges() tea.Msg {
	if m.refreshCh == nil {
		return nil
	}
	if _, ok := <-m.refreshCh; !ok {
		return nil
	}
	return refreshMsg{}
}

type refreshMsg struct{}

type animTickMsg struct {
	gen int
}

type statusMsg struct {
	text  string
	isErr bool
}

type clearStatusMsg struct{}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		// Header (2) + filter bar (1) + status bar (1)
		m.list.SetSize(msg.Width, msg.Height-4)
		m.viewport = viewport.New(msg.Width, msg.Height-4)
		m.viewport.YPosition = 2

		return m, nil

	case loadProjectsMsg:
		m.filters = m.fetchFilters()
		m.clampActiveFilter()
		m.list.SetItems(m.buildListItems())
		return m, nil

	case refreshMsg:
		m.filters = m.fetchFilters()
		m.clampActiveFilter()
		m.list.SetItems(m.buildListItems())
		return m, m.watchForChanges

	case animTickMsg:
		// Stale generation: the animation was stopped or restarted
		if !m.animOn || msg.gen != m.animGen {
			return m, nil
		}
		var delay time.Duration
		m.anim, delay = m.anim.Advance()
		gen := m.animGen
		return m, tea.Tick(delay, func(time.Time) tea.Msg {
			return animTickMsg{gen: gen}
		})

	case statusMsg:
		m.statusMsg = msg.text
		m.statusErr = msg.isErr
		return m, tea.Tick(3*time.Second, func(t time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case clearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil
	}

	// Update child components
	switch m.mode {
	case ModeList:
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		cmds = append(cmds, cmd)
	case ModeDetail:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		if m.mode == ModeHelp {
			m.mode = ModeList
		} else {
			m.mode = ModeHelp
		}
		return m, nil
	case key.Matches(msg, m.keys.ToggleTheme):
		return m.toggleTheme()
	}

	// Mode-specific keys
	switch m.mode {
	case ModeList:
		return m.handleListKey(msg)
	case ModeDetail:
		return m.handleDetailKey(msg)
	case ModeHelp:
		if key.Matches(msg, m.keys.Back) {
			m.mode = ModeList
		}
		return m, nil
	}

	return m, nil
}

// handleListKey handles keys in list mode.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Enter):
		if item, ok := m.list.SelectedItem().(projectItem); ok {
			m.selected = &item.project
			m.mode = ModeDetail
			m.viewport.SetContent(m.renderDetail(item.project))
			m.viewport.GotoTop()
		}
		return m, nil

	case key.Matches(msg, m.keys.NextFilter):
		return m.selectFilter(m.activeFilter + 1)

	case key.Matches(msg, m.keys.PrevFilter):
		return m.selectFilter(m.activeFilter - 1)

	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadProjects
	}

	// Digit keys jump straight to a filter. Digits past the last tag are
	// ignored rather than wrapped; only tab/shift-tab wrap.
	if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		if idx := int(s[0] - '1'); idx < len(m.filters) {
			return m.selectFilter(idx)
		}
		return m, nil
	}

	// Pass to list
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleDetailKey handles keys in detail mode.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back) {
		m.mode = ModeList
		m.selected = nil
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// selectFilter activates the filter at index i, wrapping at both ends.
// The previously active filter is deactivated; selecting the active filter
// again just reapplies the same visibility.
func (m Model) selectFilter(i int) (tea.Model, tea.Cmd) {
	if len(m.filters) == 0 {
		return m, nil
	}

	i = ((i % len(m.filters)) + len(m.filters)) % len(m.filters)
	m.activeFilter = i
	m.list.SetItems(m.buildListItems())
	m.list.ResetSelected()
	return m, nil
}

// toggleTheme flips dark/light, persists the preference and restyles.
func (m Model) toggleTheme() (tea.Model, tea.Cmd) {
	if err := m.themeCtl.Toggle(); err != nil {
		return m, func() tea.Msg {
			return statusMsg{text: "Failed to save theme: " + err.Error(), isErr: true}
		}
	}

	m.list.SetDelegate(newProjectDelegate(m.themeCtl.Palette()))
	name := m.themeCtl.Name()
	return m, func() tea.Msg {
		return statusMsg{text: "Theme: " + name, isErr: false}
	}
}

// fetchFilters builds the filter bar tags from the catalog.
func (m Model) fetchFilters() []string {
	if m.catalog == nil {
		return []string{model.FilterAll}
	}
	return m.catalog.Categories()
}

// clampActiveFilter keeps the active index valid after the tag set changed.
func (m *Model) clampActiveFilter() {
	if m.activeFilter >= len(m.filters) {
		m.activeFilter = 0
	}
}

// buildListItems creates list items for the active filter.
func (m Model) buildListItems() []list.Item {
	if m.catalog == nil {
		return nil
	}

	tag := model.FilterAll
	if m.activeFilter < len(m.filters) {
		tag = m.filters[m.activeFilter]
	}

	projects := m.catalog.Filter(catalog.FilterOptions{
		Category: tag,
		Exact:    m.cfg.Filter.Exact,
	})

	items := make([]list.Item, len(projects))
	for i, p := range projects {
		items[i] = projectItem{project: p, summary: m.cfg.TUI.SummaryLength}
	}
	return items
}

// renderDetail renders the detail view for a project.
func (m Model) renderDetail(p model.Project) string {
	pal := m.themeCtl.Palette()

	var s string
	s += pal.Title.Render(p.Title) + "\n\n"

	s += pal.Muted.Render("Categories: ") + p.Categories + "\n"
	s += pal.Muted.Render("Added: ") + p.RelativeAdded() + "\n"
	if p.Tech != "" {
		s += pal.Muted.Render("Tech: ") + p.Tech + "\n"
	}
	if p.Link != "" {
		s += pal.Muted.Render("Link: ") + p.Link + "\n"
	}

	s += "\n" + pal.Muted.Render("About:") + "\n"
	s += p.Summary + "\n"

	if p.Detail != "" {
		s += "\n" + p.Detail + "\n"
	}

	return s
}

// View renders the TUI.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	switch m.mode {
	case ModeList:
		return m.viewList()
	case ModeDetail:
		return m.viewDetail()
	case ModeHelp:
		return m.viewHelp()
	default:
		return ""
	}
}

func (m Model) viewList() string {
	var s string
	s += m.viewHeader() + "\n"
	s += m.viewFilterBar() + "\n"
	s += m.list.View()

	// Status bar. The keybind hints can be turned off in config.
	if m.statusMsg != "" {
		pal := m.themeCtl.Palette()
		style := pal.Subtitle
		if m.statusErr {
			style = pal.Error
		}
		s += "\n" + style.Render(m.statusMsg)
	} else if m.cfg.TUI.ShowHelp {
		s += "\n" + m.buildKeybindBar(m.width, "list")
	} else {
		s += "\n"
	}

	return s
}

// viewHeader renders the name line with the typewriter frame.
func (m Model) viewHeader() string {
	pal := m.themeCtl.Palette()
	frame := ""
	if m.animOn {
		frame = m.anim.Frame()
	}
	return pal.Title.Render("zach ") + pal.Subtitle.Render(frame+"▌")
}

// viewFilterBar renders the filter tags with the active one highlighted.
func (m Model) viewFilterBar() string {
	pal := m.themeCtl.Palette()

	var s string
	for i, tag := range m.filters {
		if i == m.activeFilter {
			s += pal.FilterActive.Render(tag)
		} else {
			s += pal.FilterInactive.Render(tag)
		}
	}
	return s
}

func (m Model) viewDetail() string {
	pal := m.themeCtl.Palette()
	header := pal.Title.Render("Project Detail")
	s := header + "\n" + m.viewport.View()
	if m.cfg.TUI.ShowHelp {
		s += "\n" + m.buildKeybindBar(m.width, "detail")
	}
	return s
}

func (m Model) viewHelp() string {
	pal := m.themeCtl.Palette()

	titleStyle := pal.Title.MarginBottom(1)
	sectionStyle := pal.Muted
	keyStyle := pal.Accent

	s := titleStyle.Render("Keyboard Shortcuts") + "\n\n"

	s += sectionStyle.Render("Navigation") + "\n"
	s += keyStyle.Render("  j/k, ↑/↓") + "     Move up/down\n"
	s += keyStyle.Render("  pgup/pgdn") + "    Page up/down\n"
	s += "\n"

	s += sectionStyle.Render("Filters") + "\n"
	s += keyStyle.Render("  tab/→") + "        Next filter\n"
	s += keyStyle.Render("  shift+tab/←") + "  Previous filter\n"
	s += keyStyle.Render("  1-9") + "          Jump to filter\n"
	s += "\n"

	s += sectionStyle.Render("Actions") + "\n"
	s += keyStyle.Render("  enter") + "        View project details\n"
	s += keyStyle.Render("  t") + "            Toggle dark/light theme\n"
	s += keyStyle.Render("  r") + "            Refresh projects\n"
	s += "\n"

	s += sectionStyle.Render("General") + "\n"
	s += keyStyle.Render("  ?") + "            Toggle this help\n"
	s += keyStyle.Render("  esc") + "          Back / Cancel\n"
	s += keyStyle.Render("  q") + "            Quit\n"

	s += "\n" + pal.Muted.Render("Press ? or esc to return")

	return s
}

// keybind represents a single keybind with priority for the status bar.
type keybind struct {
	key      string
	desc     string
	priority int // lower = more important (shown first)
}

// buildKeybindBar builds a keybind bar that fits within the given width.
// mode determines which keybinds are shown: "list", "detail"
func (m Model) buildKeybindBar(width int, mode string) string {
	pal := m.themeCtl.Palette()
	style := pal.Muted
	keyStyle := pal.Accent

	var binds []keybind

	switch mode {
	case "list":
		binds = []keybind{
			{"q", "quit", 1},
			{"enter", "view", 2},
			{"?", "help", 3},
			{"tab", "filter", 4},
			{"t", "theme", 5},
			{"r", "refresh", 6},
		}
	case "detail":
		binds = []keybind{
			{"q", "quit", 1},
			{"esc", "back", 2},
			{"t", "theme", 3},
			{"j/k", "scroll", 4},
		}
	}

	const separator = "  "
	result := ""
	for _, b := range binds {
		item := keyStyle.Render(b.key) + " " + b.desc
		plainItem := b.key + " " + b.desc
		testLen := len(plainItem)
		if result != "" {
			testLen = len(stripANSI(result)) + len(separator) + len(plainItem)
		}

		if width > 0 && testLen > width {
			break
		}
		if result != "" {
			result += separator
		}
		result += item
	}

	return style.Render(result)
}

// stripANSI removes ANSI escape codes for length calculation.
func stripANSI(s string) string {
	result := make([]byte, 0, len(s))
	inEscape := false
	for i := 0; i < len(s); i++ {
		if s[i] == '\x1b' {
			inEscape = true
			continue
		}
		if inEscape {
			if s[i] == 'm' {
				inEscape = false
			}
			continue
		}
		result = append(result, s[i])
	}
	return string(result)
}

// RunOptions configures the TUI.
type RunOptions struct {
	Config       *config.Config
	Catalog      *catalog.Catalog
	Prefs        prefs.Store
	ProjectsPath string // Path to watch for changes (empty = no watching)
}

// Run starts the TUI with the given options.
func Run(opts RunOptions) error {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	c := opts.Catalog
	if c == nil {
		c = catalog.New(nil)
	}

	themeCtl := theme.NewControllerWithDefault(opts.Prefs, cfg.Theme.Default)

	// Start file watcher if a projects path is provided
	var watcher *catalog.FileWatcher
	if opts.ProjectsPath != "" {
		var err error
		watcher, err = catalog.NewFileWatcher(c, opts.ProjectsPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to create file watcher: %v\n", err)
		} else {
			if err := watcher.Start(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to start file watcher: %v\n", err)
			}
		}
	}

	m := New(cfg, c, themeCtl)
	p := tea.NewProgram(m, tea.WithAltScreen())

	_, err := p.Run()

	if watcher != nil {
		watcher.Stop()
	}

	return err
}
