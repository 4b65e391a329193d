// Package nav is the navigation core of the tabbed shell: which view is
// active, how the user got there, and who may veto the next move.
//
// Allowed here:
// - the navigation state machine (active view, bounded history, per-view state)
// - guard registration and priority-ordered evaluation
// - the controller facade that runs guard chains and dispatches commits
// - transition observers for analytics and logging
//
// Not allowed here:
// - view metadata, manifests, or auth policy (see package views)
// - rendering of tab bars, content, or confirmation prompts
package nav
