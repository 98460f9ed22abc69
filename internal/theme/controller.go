package theme

import (
	"github.com/zachkp/folio/internal/prefs"
)

// Controller owns the active palette and mirrors it into the preference
// store. The store is injected so the controller can be tested in isolation.
type Controller struct {
	store   prefs.Store
	palette Palette
}

// NewController creates a controller and applies the persisted preference.
// A persisted "light" activates the light palette; "dark" or an absent key
// leaves the built-in dark default in place. An absent key is not written
// back, so a user who never toggled has no preference on disk.
func NewController(store prefs.Store) *Controller {
	return NewControllerWithDefault(store, DefaultName)
}

// NewControllerWithDefault is NewController with a configured fallback name
// used when no preference is persisted. The persisted preference still wins,
// and the fallback is never written back. An invalid fallback is treated as
// the built-in default.
func NewControllerWithDefault(store prefs.Store, fallback string) *Controller {
	c := &Controller{store: store}

	name := fallback
	if !IsValid(name) {
		name = DefaultName
	}
	if store != nil {
		if v, ok := store.Get(prefs.KeyTheme); ok && IsValid(v) {
			name = v
		}
	}
	c.palette = PaletteByName(name)

	return c
}

// Palette returns the active palette.
func (c *Controller) Palette() Palette {
	return c.palette
}

// Name returns the active theme name.
func (c *Controller) Name() string {
	return c.palette.Name
}

// IsLight reports whether the light theme is active. This is the "checked"
// state of a theme toggle control.
func (c *Controller) IsLight() bool {
	return c.palette.Name == Light
}

// Toggle switches between dark and light, persisting the new preference.
func (c *Controller) Toggle() error {
	if c.IsLight() {
		return c.Set(Dark)
	}
	return c.Set(Light)
}

// Set activates the named theme and persists it. Unknown names are
// normalised to the default before applying.
func (c *Controller) Set(name string) error {
	if !IsValid(name) {
		name = DefaultName
	}
	c.palette = PaletteByName(name)

	if c.store == nil {
		return nil
	}
	return c.store.Set(prefs.KeyTheme, name)
}
