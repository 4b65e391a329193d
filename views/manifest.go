package views

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/jask/tabnav/nav"
)

// Manifest is the on-disk description of the view set. Behavior hooks (Load,
// Badge) cannot come from a file; attach them after loading with Attach.
type Manifest struct {
	Default string         `yaml:"default"`
	Views   []ManifestView `yaml:"views"`
}

// ManifestView is one view's declarable metadata.
type ManifestView struct {
	ID            string `yaml:"id"`
	Title         string `yaml:"title"`
	Icon          string `yaml:"icon"`
	Path          string `yaml:"path"`
	RequiresAuth  bool   `yaml:"requires_auth"`
	PreserveState bool   `yaml:"preserve_state"`
}

// LoadManifest reads and validates a YAML manifest and builds the registry
// from it. Duplicate ids, an unknown default, and malformed YAML all fail
// closed. The filesystem is abstracted so tests run against an in-memory fs.
func LoadManifest(fs afero.Fs, path string) (*Registry, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("views: read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("views: parse manifest %s: %w", path, err)
	}
	return m.Build()
}

// Build turns the manifest into a registry, running the same validation as
// New.
func (m Manifest) Build() (*Registry, error) {
	if m.Default == "" {
		return nil, fmt.Errorf("views: manifest declares no default view")
	}
	vs := make([]View, len(m.Views))
	for i, mv := range m.Views {
		title := mv.Title
		if title == "" {
			title = mv.ID
		}
		vs[i] = View{
			ID:            nav.ViewID(mv.ID),
			Title:         title,
			Icon:          mv.Icon,
			Path:          mv.Path,
			RequiresAuth:  mv.RequiresAuth,
			PreserveState: mv.PreserveState,
		}
	}
	return New(vs, nav.ViewID(m.Default))
}

// Attach sets the behavior hooks for one view after a manifest load. Unknown
// ids are rejected so a typo does not silently leave a view hookless.
func (r *Registry) Attach(id nav.ViewID, load func(ctx context.Context) error, badge func() int) error {
	v, ok := r.byID[id]
	if !ok {
		return fmt.Errorf("%w: %q", nav.ErrUnknownView, id)
	}
	if load != nil {
		v.Load = load
	}
	if badge != nil {
		v.Badge = badge
	}
	r.byID[id] = v
	return nil
}
