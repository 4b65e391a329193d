package nav

import (
	"cmp"
	"context"
	"slices"
	"sync"
)

// ---------------------------------------------------------------------------
// Guard registry: priority-ordered veto chain for navigation
// ---------------------------------------------------------------------------
//
// Independently developed features register guards to veto transitions they
// care about without knowing about each other. The controller snapshots the
// matching chain when a navigation is requested and awaits each check in
// strict order; the first block ends the chain, so a lower-priority guard
// never runs a side effect once a higher-priority guard has already vetoed.

// Decision is a guard verdict. Reason is surfaced to the caller when Allow is
// false so the shell can explain the block.
type Decision struct {
	Allow  bool
	Reason string
}

// CheckFunc decides whether a transition between two views may proceed.
// Checks may suspend on slow work (confirmation prompts, pending writes); an
// error counts as a block.
type CheckFunc func(ctx context.Context, from, to ViewID) (Decision, error)

// Guard is one registered veto. View scopes the guard to transitions leaving
// that view; the zero value matches any departure. Higher Priority runs
// first.
type Guard struct {
	ID       string
	View     ViewID
	Priority int
	Check    CheckFunc
}

type guardEntry struct {
	Guard
	seq uint64 // registration order, breaks priority ties
}

// GuardRegistry holds the guard set keyed by id. It is shared: construct one
// and hand it to the controller and to every feature that registers guards.
// Registering an id twice replaces the earlier guard and takes a fresh
// position in registration order.
type GuardRegistry struct {
	mu     sync.Mutex
	seq    uint64
	guards map[string]guardEntry
}

func NewGuardRegistry() *GuardRegistry {
	return &GuardRegistry{guards: map[string]guardEntry{}}
}

// Register adds g and returns an unregister handle. The handle removes only
// the registration it belongs to: once the id has been replaced by a newer
// Register call, the older handle is a no-op.
func (r *GuardRegistry) Register(g Guard) (func(), error) {
	if g.ID == "" {
		return nil, ErrMissingGuardID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	seq := r.seq
	r.guards[g.ID] = guardEntry{Guard: g, seq: seq}
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if cur, ok := r.guards[g.ID]; ok && cur.seq == seq {
			delete(r.guards, g.ID)
		}
	}, nil
}

// Unregister removes the guard with the given id, if present.
func (r *GuardRegistry) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.guards, id)
}

// Len reports the number of registered guards.
func (r *GuardRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.guards)
}

// chainFor snapshots the guards that apply to a departure from the given
// view: unscoped guards plus guards scoped to it, highest priority first,
// ties in registration order.
func (r *GuardRegistry) chainFor(from ViewID) []Guard {
	r.mu.Lock()
	entries := make([]guardEntry, 0, len(r.guards))
	for _, e := range r.guards {
		if e.View == "" || e.View == from {
			entries = append(entries, e)
		}
	}
	r.mu.Unlock()

	slices.SortFunc(entries, func(a, b guardEntry) int {
		if a.Priority != b.Priority {
			return cmp.Compare(b.Priority, a.Priority)
		}
		return cmp.Compare(a.seq, b.seq)
	})
	chain := make([]Guard, len(entries))
	for i, e := range entries {
		chain[i] = e.Guard
	}
	return chain
}
