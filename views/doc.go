// Package views is the read-only registry of the shell's top-level
// destinations: static metadata, manifest loading, and the policy helpers
// (auth guard, badges) built on that metadata.
//
// Allowed here:
// - view metadata and the fixed registry built from it
// - manifest parsing and validation
// - guards derived from view metadata (e.g. auth requirements)
//
// Not allowed here:
// - navigation state or history (see package nav)
// - rendering of any kind
package views
