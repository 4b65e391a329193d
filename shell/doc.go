// Package shell is the interactive consumer of the navigation core: a
// bubbletea program rendering the tab bar, the active view's content, and the
// confirmation prompt for blocked navigations.
//
// Allowed here:
// - key handling that calls the navigation facade
// - tab bar, content pane, status/footer, and modal rendering
// - session toggles that demo the auth and unsaved-changes guards
//
// Not allowed here:
// - navigation semantics (see package nav) or view metadata (see package views)
package shell
