package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zachkp/folio/internal/prefs"
)

func TestPaletteByName(t *testing.T) {
	assert.Equal(t, Dark, PaletteByName(Dark).Name)
	assert.Equal(t, Light, PaletteByName(Light).Name)

	// Unknown falls back to dark
	assert.Equal(t, Dark, PaletteByName("solarized").Name)
	assert.Equal(t, Dark, PaletteByName("").Name)
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid(Dark))
	assert.True(t, IsValid(Light))
	assert.False(t, IsValid("neon"))
	assert.False(t, IsValid(""))
}

func TestController_DefaultWhenNoPreference(t *testing.T) {
	store := prefs.NewMemStore()
	c := NewController(store)

	assert.Equal(t, Dark, c.Name())
	assert.False(t, c.IsLight())

	// A mere read must not persist anything
	_, ok := store.Get(prefs.KeyTheme)
	assert.False(t, ok)
}

func TestController_AppliesPersistedLight(t *testing.T) {
	store := prefs.NewMemStore()
	require.NoError(t, store.Set(prefs.KeyTheme, Light))

	c := NewController(store)
	assert.Equal(t, Light, c.Name())
	assert.True(t, c.IsLight())
}

func TestController_AppliesPersistedDark(t *testing.T) {
	store := prefs.NewMemStore()
	require.NoError(t, store.Set(prefs.KeyTheme, Dark))

	c := NewController(store)
	assert.Equal(t, Dark, c.Name())
	assert.False(t, c.IsLight())
}

func TestController_IgnoresInvalidPersistedValue(t *testing.T) {
	store := prefs.NewMemStore()
	require.NoError(t, store.Set(prefs.KeyTheme, "mauve"))

	c := NewController(store)
	assert.Equal(t, Dark, c.Name())
}

func TestController_ToggleRoundTrip(t *testing.T) {
	store := prefs.NewMemStore()
	c := NewController(store)

	// dark -> light
	require.NoError(t, c.Toggle())
	assert.Equal(t, Light, c.Name())
	v, ok := store.Get(prefs.KeyTheme)
	require.True(t, ok)
	assert.Equal(t, Light, v)

	// light -> dark
	require.NoError(t, c.Toggle())
	assert.Equal(t, Dark, c.Name())
	v, ok = store.Get(prefs.KeyTheme)
	require.True(t, ok)
	assert.Equal(t, Dark, v)
}

func TestController_Set(t *testing.T) {
	store := prefs.NewMemStore()
	c := NewController(store)

	require.NoError(t, c.Set(Light))
	assert.Equal(t, Light, c.Palette().Name)

	// Unknown names normalise to the default and persist it
	require.NoError(t, c.Set("nonsense"))
	assert.Equal(t, Dark, c.Name())
	v, _ := store.Get(prefs.KeyTheme)
	assert.Equal(t, Dark, v)
}

func TestController_NilStore(t *testing.T) {
	c := NewController(nil)
	assert.Equal(t, Dark, c.Name())

	require.NoError(t, c.Toggle())
	assert.Equal(t, Light, c.Name())
}

func TestController_ConfiguredDefault(t *testing.T) {
	store := prefs.NewMemStore()
	c := NewControllerWithDefault(store, Light)
	assert.Equal(t, Light, c.Name())

	// The configured fallback is not written back
	_, ok := store.Get(prefs.KeyTheme)
	assert.False(t, ok)
}

func TestController_PersistedPreferenceWinsOverDefault(t *testing.T) {
	store := prefs.NewMemStore()
	require.NoError(t, store.Set(prefs.KeyTheme, Dark))

	c := NewControllerWithDefault(store, Light)
	assert.Equal(t, Dark, c.Name())
}

func TestController_InvalidConfiguredDefault(t *testing.T) {
	c := NewControllerWithDefault(prefs.NewMemStore(), "nonsense")
	assert.Equal(t, Dark, c.Name())
}
