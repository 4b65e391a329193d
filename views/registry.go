package views

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/jask/tabnav/nav"
)

// View is the static metadata for one top-level destination. The navigation
// core consumes it and never mutates it.
type View struct {
	ID            nav.ViewID
	Title         string
	Icon          string
	Path          string
	RequiresAuth  bool
	PreserveState bool
	// Load fetches the view's lazy content. Nil means the view has nothing to
	// preload.
	Load func(ctx context.Context) error
	// Badge supplies the count shown on the view's tab. Nil means no badge.
	Badge func() int
}

// Registry is the fixed, closed set of views. Built once, then read-only; it
// satisfies nav.ViewSet so the controller can validate targets against it.
type Registry struct {
	byID   map[nav.ViewID]View
	byPath map[string]nav.ViewID
	order  []nav.ViewID
	def    nav.ViewID
}

// New builds a registry from the given views. The default must be one of
// them; duplicate ids and duplicate non-empty paths fail closed.
func New(vs []View, def nav.ViewID) (*Registry, error) {
	if len(vs) == 0 {
		return nil, fmt.Errorf("views: registry needs at least one view")
	}
	r := &Registry{
		byID:   make(map[nav.ViewID]View, len(vs)),
		byPath: make(map[string]nav.ViewID, len(vs)),
		order:  make([]nav.ViewID, 0, len(vs)),
		def:    def,
	}
	for _, v := range vs {
		if v.ID == "" {
			return nil, fmt.Errorf("views: view %q has no id", v.Title)
		}
		if _, dup := r.byID[v.ID]; dup {
			return nil, fmt.Errorf("views: duplicate view id %q", v.ID)
		}
		if v.Path != "" {
			if other, dup := r.byPath[v.Path]; dup {
				return nil, fmt.Errorf("views: path %q claimed by both %q and %q", v.Path, other, v.ID)
			}
			r.byPath[v.Path] = v.ID
		}
		r.byID[v.ID] = v
		r.order = append(r.order, v.ID)
	}
	if _, ok := r.byID[def]; !ok {
		return nil, fmt.Errorf("views: default view %q is not in the set", def)
	}
	return r, nil
}

// Has reports whether id names a registered view.
func (r *Registry) Has(id nav.ViewID) bool {
	_, ok := r.byID[id]
	return ok
}

// Get returns the view's metadata.
func (r *Registry) Get(id nav.ViewID) (View, bool) {
	v, ok := r.byID[id]
	return v, ok
}

// Default returns the view the shell starts on and falls back to.
func (r *Registry) Default() nav.ViewID { return r.def }

// All returns every view in registration order.
func (r *Registry) All() []View {
	out := make([]View, len(r.order))
	for i, id := range r.order {
		out[i] = r.byID[id]
	}
	return out
}

// ByPath resolves a deep-link path to its view.
func (r *Registry) ByPath(path string) (View, bool) {
	id, ok := r.byPath[path]
	if !ok {
		return View{}, false
	}
	return r.byID[id], true
}

// Suggest returns the nearest known id when the given one is a close
// misspelling, for decorating unknown-view errors.
func (r *Registry) Suggest(id string) (string, bool) {
	best, bestDist := "", -1
	for _, known := range r.order {
		d := levenshtein.ComputeDistance(strings.ToLower(id), string(known))
		if bestDist < 0 || d < bestDist {
			best, bestDist = string(known), d
		}
	}
	if bestDist < 0 || bestDist > 3 || bestDist >= len(best) {
		return "", false
	}
	return best, true
}

// BadgeFor returns the view's current badge count, zero when the view has no
// badge source.
func (r *Registry) BadgeFor(id nav.ViewID) int {
	v, ok := r.byID[id]
	if !ok || v.Badge == nil {
		return 0
	}
	return v.Badge()
}

// Loader adapts the per-view Load hooks into the controller's preload
// callback. Views without a Load hook preload as a no-op.
func (r *Registry) Loader() nav.LoadFunc {
	return func(ctx context.Context, id nav.ViewID) error {
		v, ok := r.byID[id]
		if !ok {
			return fmt.Errorf("%w: %q", nav.ErrUnknownView, id)
		}
		if v.Load == nil {
			return nil
		}
		return v.Load(ctx)
	}
}

// ResolveLink parses a deep-link URL ("app://draft?round=3" or
// "/draft?round=3") into a view id and its parameters. The view is matched by
// id first, then by registered path; anything else fails closed.
func (r *Registry) ResolveLink(raw string) (nav.ViewID, nav.Params, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", nil, fmt.Errorf("views: parse link %q: %w", raw, err)
	}
	target := u.Host
	if target == "" {
		target = strings.TrimPrefix(u.Path, "/")
		if i := strings.IndexByte(target, '/'); i >= 0 {
			target = target[:i]
		}
	}
	if target == "" {
		return "", nil, fmt.Errorf("views: link %q names no view", raw)
	}

	id := nav.ViewID(target)
	if !r.Has(id) {
		if v, ok := r.ByPath(u.Path); ok {
			id = v.ID
		} else {
			return "", nil, fmt.Errorf("%w: %q", nav.ErrUnknownView, target)
		}
	}

	var params nav.Params
	if q := u.Query(); len(q) > 0 {
		params = make(nav.Params, len(q))
		for k, vals := range q {
			if len(vals) > 0 {
				params[k] = vals[0]
			}
		}
	}
	return id, params, nil
}
