package nav

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"
)

// ViewSet is the read-only view collection the controller validates against.
// It is typically a views.Registry; the controller never mutates it.
type ViewSet interface {
	Has(id ViewID) bool
	Default() ViewID
}

// suggester is an optional ViewSet upgrade used to decorate unknown-view
// errors with a near-miss hint.
type suggester interface {
	Suggest(id string) (string, bool)
}

// LoadFunc triggers the lazy content load for a view. Supplied by the shell;
// the controller guarantees it runs at most once per view.
type LoadFunc func(ctx context.Context, view ViewID) error

// DefaultTransitionDelay is how long Transitioning stays set after a commit
// before the controller clears it.
const DefaultTransitionDelay = 150 * time.Millisecond

// Outcome reports what RequestNavigate did with a request.
type Outcome string

const (
	// OutcomeCommitted: every guard allowed and the navigation dispatched.
	OutcomeCommitted Outcome = "committed"
	// OutcomeNoop: the target is already the active view.
	OutcomeNoop Outcome = "noop"
	// OutcomeBlocked: a guard vetoed; see Result.Reason.
	OutcomeBlocked Outcome = "blocked"
	// OutcomeSuperseded: a newer request was issued while this one's guard
	// chain was still running, so its verdict was discarded.
	OutcomeSuperseded Outcome = "superseded"
)

// Result is the outcome of one RequestNavigate call.
type Result struct {
	Outcome Outcome
	Reason  string
}

// Pending is a blocked navigation waiting for explicit confirmation. At most
// one exists; a later blocked attempt overwrites an earlier one (last request
// wins, not a queue).
type Pending struct {
	View   ViewID
	Params Params
}

// Config wires a Controller. Views is required; everything else defaults.
type Config struct {
	// Views is the closed set of navigable views.
	Views ViewSet
	// Guards is the shared guard registry. One is created when nil.
	Guards *GuardRegistry
	// Observer receives one notification per committed transition.
	Observer TransitionObserver
	// Loader runs lazy view content loads. Nil disables Preload side effects.
	Loader LoadFunc
	// TransitionDelay overrides how long Transitioning stays set after a
	// commit. DefaultTransitionDelay when zero.
	TransitionDelay time.Duration
	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Controller is the navigation facade: the one entry point through which a
// navigation actually happens once guards are registered. It owns the state
// machine, serializes dispatches, and runs guard chains outside the state
// lock so a suspended check never freezes readers.
type Controller struct {
	views  ViewSet
	guards *GuardRegistry
	obs    TransitionObserver
	loader LoadFunc
	delay  time.Duration
	now    func() time.Time

	seq      atomic.Uint64 // latest RequestNavigate attempt; stale chains are discarded
	timerGen atomic.Uint64 // invalidates superseded transition-clear timers

	mu      sync.Mutex
	state   State
	pending *Pending
	timer   *time.Timer
}

// NewController builds a Controller positioned on the view set's default
// view.
func NewController(cfg Config) (*Controller, error) {
	if cfg.Views == nil {
		return nil, fmt.Errorf("nav: config needs a view set")
	}
	c := &Controller{
		views:  cfg.Views,
		guards: cfg.Guards,
		obs:    cfg.Observer,
		loader: cfg.Loader,
		delay:  cfg.TransitionDelay,
		now:    cfg.Now,
	}
	if c.guards == nil {
		c.guards = NewGuardRegistry()
	}
	if c.obs == nil {
		c.obs = NoopObserver{}
	}
	if c.delay <= 0 {
		c.delay = DefaultTransitionDelay
	}
	if c.now == nil {
		c.now = time.Now
	}
	c.state = NewState(cfg.Views.Default(), c.now(), newEntryID())
	return c, nil
}

func newEntryID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// RequestNavigate runs the guard chain for a transition to the given view
// and commits it when every guard allows. A blocked transition is parked as
// the pending navigation for ConfirmPending / CancelPending. Overlapping
// requests each snapshot the departing view at call time and race freely;
// only the latest request's verdict is applied, earlier chains finish but
// their results are discarded.
func (c *Controller) RequestNavigate(ctx context.Context, to ViewID, params Params) (Result, error) {
	if err := c.checkView(to); err != nil {
		return Result{}, err
	}

	c.mu.Lock()
	if to == c.state.Active {
		c.mu.Unlock()
		return Result{Outcome: OutcomeNoop}, nil
	}
	from := c.state.Active
	c.mu.Unlock()

	token := c.seq.Inc()

	decision, err := c.evaluate(ctx, from, to)
	if err != nil {
		// A failing guard blocks the move, but nothing is parked: confirming
		// must not bypass a guard that never reached a verdict.
		return Result{Outcome: OutcomeBlocked, Reason: decision.Reason}, err
	}

	c.mu.Lock()
	if c.seq.Load() != token {
		c.mu.Unlock()
		return Result{Outcome: OutcomeSuperseded}, nil
	}
	if !decision.Allow {
		c.pending = &Pending{View: to, Params: cloneParams(params)}
		c.mu.Unlock()
		return Result{Outcome: OutcomeBlocked, Reason: decision.Reason}, nil
	}
	c.pending = nil
	t, changed := c.navigateLocked(to, params, true)
	c.mu.Unlock()
	if changed {
		c.obs.OnTransition(ctx, t)
	}
	return Result{Outcome: OutcomeCommitted}, nil
}

// evaluate awaits each matching guard in strict sequence. The first block
// ends the chain and later guards never run; a guard error also ends the
// chain and counts as a block with a generic reason.
func (c *Controller) evaluate(ctx context.Context, from, to ViewID) (Decision, error) {
	for _, g := range c.guards.chainFor(from) {
		if g.Check == nil {
			continue
		}
		d, err := g.Check(ctx, from, to)
		if err != nil {
			return Decision{Reason: "navigation guard failed"}, fmt.Errorf("guard %s: %w", g.ID, err)
		}
		if !d.Allow {
			return d, nil
		}
	}
	return Decision{Allow: true}, nil
}

// navigateLocked dispatches a navigate commit and arms the transition clear.
// Callers hold mu. The returned Transition is meaningful when changed is
// true.
func (c *Controller) navigateLocked(to ViewID, params Params, addToHistory bool) (Transition, bool) {
	if to == c.state.Active && params == nil {
		return Transition{}, false
	}
	from := c.state.Active
	at := c.now()
	c.state = apply(c.state, navigateAction{
		view:         to,
		params:       params,
		addToHistory: addToHistory,
		at:           at,
		entryID:      newEntryID(),
	})
	c.armTransitionClearLocked()
	return Transition{From: from, To: to, At: at}, from != to
}

// armTransitionClearLocked schedules the one-shot that drops Transitioning
// after the configured delay. A newer commit supersedes an armed timer; the
// generation check keeps a late fire from stomping the fresher flag.
func (c *Controller) armTransitionClearLocked() {
	gen := c.timerGen.Inc()
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.delay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.timerGen.Load() != gen {
			return
		}
		c.state = apply(c.state, setTransitioningAction{on: false})
	})
}

// Replace swaps the current history entry for a fresh one pointing at the
// given view, without growing the stack and without running guards. Use it
// to canonicalize a deep link in place.
func (c *Controller) Replace(ctx context.Context, to ViewID, params Params) error {
	if err := c.checkView(to); err != nil {
		return err
	}
	c.mu.Lock()
	from := c.state.Active
	at := c.now()
	c.state = apply(c.state, replaceAction{view: to, params: params, at: at, entryID: newEntryID()})
	c.mu.Unlock()
	if from != to {
		c.obs.OnTransition(ctx, Transition{From: from, To: to, At: at})
	}
	return nil
}

// Back moves one entry toward the oldest history entry. Reports false at the
// boundary, with the state untouched.
func (c *Controller) Back() bool {
	return c.moveHistory(-1)
}

// Forward moves one entry toward the newest history entry. Reports false at
// the boundary, with the state untouched.
func (c *Controller) Forward() bool {
	return c.moveHistory(1)
}

func (c *Controller) moveHistory(dir int) bool {
	c.mu.Lock()
	if dir < 0 && c.state.Index == 0 {
		c.mu.Unlock()
		return false
	}
	if dir > 0 && c.state.Index >= len(c.state.History)-1 {
		c.mu.Unlock()
		return false
	}
	from := c.state.Active
	at := c.now()
	if dir < 0 {
		c.state = apply(c.state, backAction{})
	} else {
		c.state = apply(c.state, forwardAction{})
	}
	to := c.state.Active
	c.mu.Unlock()
	if from != to {
		c.obs.OnTransition(context.Background(), Transition{From: from, To: to, At: at})
	}
	return true
}

// RegisterGuard adds a guard to the shared registry and returns its
// unregister handle. Registering the same id again replaces the earlier
// guard.
func (c *Controller) RegisterGuard(g Guard) (func(), error) {
	return c.guards.Register(g)
}

// PendingNavigation returns the blocked navigation waiting for confirmation,
// if any.
func (c *Controller) PendingNavigation() (Pending, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return Pending{}, false
	}
	return Pending{View: c.pending.View, Params: cloneParams(c.pending.Params)}, true
}

// ConfirmPending commits the pending navigation without re-running guards:
// the caller vouches that the user has approved the block reason.
func (c *Controller) ConfirmPending(ctx context.Context) error {
	c.mu.Lock()
	if c.pending == nil {
		c.mu.Unlock()
		return ErrNoPending
	}
	p := *c.pending
	c.pending = nil
	t, changed := c.navigateLocked(p.View, p.Params, true)
	c.mu.Unlock()
	if changed {
		c.obs.OnTransition(ctx, t)
	}
	return nil
}

// CancelPending drops the pending navigation without navigating.
func (c *Controller) CancelPending() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = nil
}

// SaveViewState shallow-merges patch into the view's saved record, creating
// it on first save. Only the fields the patch sets are replaced.
func (c *Controller) SaveViewState(view ViewID, patch ViewState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = apply(c.state, saveStateAction{view: view, patch: patch, at: c.now()})
}

// ViewStateFor returns a copy of the view's saved record; ok is false when
// the view has never saved state. Callers always get a fresh copy, never a
// reference into the store.
func (c *Controller) ViewStateFor(view ViewID) (ViewState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	vs, ok := c.state.ViewState[view]
	if !ok {
		return ViewState{}, false
	}
	return cloneViewState(vs), true
}

// ClearViewState drops the view's saved record.
func (c *Controller) ClearViewState(view ViewID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = apply(c.state, clearStateAction{view: view})
}

// ClearAllViewState drops every saved record, for flows like sign-out.
func (c *Controller) ClearAllViewState() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = apply(c.state, clearAllStateAction{})
}

// SetDeepLinkParams replaces the current deep-link params without touching
// history.
func (c *Controller) SetDeepLinkParams(params Params) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = apply(c.state, setDeepLinkAction{params: params})
}

// ClearDeepLinkParams nulls out the deep-link params.
func (c *Controller) ClearDeepLinkParams() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = apply(c.state, clearDeepLinkAction{})
}

// Preload triggers the view's lazy content load on first call and marks it
// preloaded; repeat calls do nothing. The mark sticks even when the load
// fails, so a broken load surfaces through the returned error instead of a
// retry storm.
func (c *Controller) Preload(ctx context.Context, view ViewID) error {
	if err := c.checkView(view); err != nil {
		return err
	}
	c.mu.Lock()
	if _, ok := c.state.Preloaded[view]; ok {
		c.mu.Unlock()
		return nil
	}
	c.state = apply(c.state, markPreloadedAction{view: view})
	loader := c.loader
	c.mu.Unlock()
	if loader == nil {
		return nil
	}
	if err := loader(ctx, view); err != nil {
		return fmt.Errorf("preload %s: %w", view, err)
	}
	return nil
}

// Preloaded reports whether the view's content load has been triggered.
func (c *Controller) Preloaded(view ViewID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.state.Preloaded[view]
	return ok
}

// ActiveView returns the current view id.
func (c *Controller) ActiveView() ViewID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Active
}

// State returns a deep snapshot of the navigation state. Holders never
// observe later dispatches.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// ClearHistory collapses history to a single entry for the active view.
func (c *Controller) ClearHistory() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = apply(c.state, clearHistoryAction{at: c.now(), entryID: newEntryID()})
}

// Reset returns the controller to its initial state on the default view,
// dropping any pending navigation and armed timer.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = nil
	c.stopTimerLocked()
	c.state = apply(c.state, resetAction{view: c.views.Default(), at: c.now(), entryID: newEntryID()})
}

// Close releases the transition timer. Call it when the controller is no
// longer needed.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopTimerLocked()
}

func (c *Controller) stopTimerLocked() {
	c.timerGen.Inc()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller) checkView(id ViewID) error {
	if c.views.Has(id) {
		return nil
	}
	if s, ok := c.views.(suggester); ok {
		if hint, ok := s.Suggest(string(id)); ok {
			return fmt.Errorf("%w: %q (closest known view is %q)", ErrUnknownView, id, hint)
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownView, id)
}
