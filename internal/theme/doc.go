// Package theme provides the dark and light colour palettes for the folio
// TUI and the controller that keeps the active palette in sync with the
// persisted user preference.
package theme
