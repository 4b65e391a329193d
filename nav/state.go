package nav

import (
	"maps"
	"slices"
	"time"
)

// ViewID identifies one of the shell's fixed top-level views.
type ViewID string

// Params carries deep-link parameters attached to a navigation. Nil means no
// parameters.
type Params map[string]string

// Point is a scroll offset.
type Point struct {
	X int
	Y int
}

// HistoryEntry records one committed navigation. Entries are immutable once
// created; Replace overwrites the slot with a fresh entry rather than editing
// the old one. Scroll snapshots the departing view's saved offset at creation
// time.
type HistoryEntry struct {
	ID     string
	View   ViewID
	Time   time.Time
	Params Params
	Scroll *Point
}

// ViewState is the ephemeral per-view record restored when the user returns
// to a view: scroll offset, selections, in-progress form data. Every field is
// optional; a save merges only the fields it sets. This is UI state, distinct
// from the view's own business data.
type ViewState struct {
	Scroll      *Point
	Form        map[string]string
	Expanded    []string
	Selected    []string
	Custom      map[string]any
	LastVisited time.Time
}

// maxHistory bounds the back/forward stack. The oldest entry is evicted
// first, never the newest.
const maxHistory = 50

// State is the full navigation state. The reducer treats it as immutable and
// returns a fresh State on every change; nothing here is mutated in place, so
// a held State is a stable snapshot of the maps and slices it references.
type State struct {
	Active        ViewID
	Previous      ViewID
	History       []HistoryEntry
	Index         int
	ViewState     map[ViewID]ViewState
	Transitioning bool
	DeepLink      Params
	Preloaded     map[ViewID]struct{}
}

// NewState returns the initial state: the given view active with a single
// history entry at index zero.
func NewState(view ViewID, at time.Time, entryID string) State {
	return State{
		Active:    view,
		History:   []HistoryEntry{{ID: entryID, View: view, Time: at}},
		ViewState: map[ViewID]ViewState{},
		Preloaded: map[ViewID]struct{}{},
	}
}

// entryFor builds the history entry for a committed move to view, carrying
// the departing view's saved scroll offset.
func (s State) entryFor(view ViewID, params Params, at time.Time, id string) HistoryEntry {
	var scroll *Point
	if vs, ok := s.ViewState[s.Active]; ok {
		scroll = clonePoint(vs.Scroll)
	}
	return HistoryEntry{
		ID:     id,
		View:   view,
		Time:   at,
		Params: cloneParams(params),
		Scroll: scroll,
	}
}

// clone deep-copies the state for caller-facing snapshots, so holders never
// share the internal maps and slices with later dispatches.
func (s State) clone() State {
	out := s
	out.History = make([]HistoryEntry, len(s.History))
	for i, e := range s.History {
		e.Params = cloneParams(e.Params)
		e.Scroll = clonePoint(e.Scroll)
		out.History[i] = e
	}
	out.ViewState = make(map[ViewID]ViewState, len(s.ViewState))
	for id, vs := range s.ViewState {
		out.ViewState[id] = cloneViewState(vs)
	}
	out.DeepLink = cloneParams(s.DeepLink)
	out.Preloaded = maps.Clone(s.Preloaded)
	return out
}

// merge shallow-merges patch into base: each field the patch sets replaces
// the stored field wholesale, fields left unset survive from base, and
// LastVisited is stamped with the save time.
func merge(base, patch ViewState, at time.Time) ViewState {
	out := cloneViewState(base)
	if patch.Scroll != nil {
		out.Scroll = clonePoint(patch.Scroll)
	}
	if patch.Form != nil {
		out.Form = maps.Clone(patch.Form)
	}
	if patch.Expanded != nil {
		out.Expanded = slices.Clone(patch.Expanded)
	}
	if patch.Selected != nil {
		out.Selected = slices.Clone(patch.Selected)
	}
	if patch.Custom != nil {
		out.Custom = maps.Clone(patch.Custom)
	}
	out.LastVisited = at
	return out
}

func cloneViewState(vs ViewState) ViewState {
	return ViewState{
		Scroll:      clonePoint(vs.Scroll),
		Form:        maps.Clone(vs.Form),
		Expanded:    slices.Clone(vs.Expanded),
		Selected:    slices.Clone(vs.Selected),
		Custom:      maps.Clone(vs.Custom),
		LastVisited: vs.LastVisited,
	}
}

func clonePoint(p *Point) *Point {
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}

func cloneParams(p Params) Params {
	return maps.Clone(p)
}
