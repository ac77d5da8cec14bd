package templates

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownTemplate = errors.New("unknown template")
	ErrUnknownColor    = errors.New("color not in template palette")
)

// Registry resolves template ids to catalog entries. It is read-only
// after construction and safe for concurrent use.
type Registry struct {
	byID  map[string]*Template
	order []string
}

// NewRegistry builds a registry over the built-in catalog.
func NewRegistry() *Registry {
	r := &Registry{byID: make(map[string]*Template, len(catalog))}
	for i := range catalog {
		t := &catalog[i]
		r.byID[t.ID] = t
		r.order = append(r.order, t.ID)
	}
	return r
}

// Get resolves a template id. Unregistered ids are a hard error; callers
// must not substitute a fallback template.
func (r *Registry) Get(id string) (*Template, error) {
	t, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, id)
	}
	return t, nil
}

// All returns the catalog in display order.
func (r *Registry) All() []*Template {
	out := make([]*Template, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// ColorScheme resolves a color scheme within a template's declared
// palette. An empty colorID selects the template's first option.
func (r *Registry) ColorScheme(templateID, colorID string) (ColorScheme, error) {
	t, err := r.Get(templateID)
	if err != nil {
		return ColorScheme{}, err
	}
	if len(t.Colors) == 0 {
		return ColorScheme{}, fmt.Errorf("template %q declares no color schemes", templateID)
	}
	if colorID == "" {
		return t.Colors[0], nil
	}
	for _, c := range t.Colors {
		if c.ID == colorID {
			return c, nil
		}
	}
	return ColorScheme{}, fmt.Errorf("%w: %q for template %q", ErrUnknownColor, colorID, templateID)
}
