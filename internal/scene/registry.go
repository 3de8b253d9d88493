package scene

import (
	"fmt"
	"strings"
)

// Registry is an ordered, read-only set of descriptors.
type Registry struct {
	order []Descriptor
	index map[string]int
}

func NewRegistry(descs ...Descriptor) (*Registry, error) {
	r := &Registry{
		order: make([]Descriptor, 0, len(descs)),
		index: make(map[string]int, len(descs)),
	}
	for _, d := range descs {
		if strings.TrimSpace(d.Slug) == "" {
			return nil, fmt.Errorf("%w: empty slug (title %q)", ErrInvalidDescriptor, d.Title)
		}
		if _, ok := r.index[d.Slug]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSlug, d.Slug)
		}
		r.index[d.Slug] = len(r.order)
		r.order = append(r.order, d.clone())
	}
	return r, nil
}

// All returns the descriptors in registration order.
func (r *Registry) All() []Descriptor {
	out := make([]Descriptor, len(r.order))
	for i, d := range r.order {
		out[i] = d.clone()
	}
	return out
}

// Lookup accepts a bare slug or a "/viz/<slug>" path.
func (r *Registry) Lookup(slug string) (Descriptor, error) {
	key := NormalizeSlug(slug)
	i, ok := r.index[key]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return r.order[i].clone(), nil
}

func (r *Registry) Len() int { return len(r.order) }

func (r *Registry) Slugs() []string {
	slugs := make([]string, len(r.order))
	for i, d := range r.order {
		slugs[i] = d.Slug
	}
	return slugs
}

// NormalizeSlug strips a leading "/viz/" route prefix and surrounding slashes.
func NormalizeSlug(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "/")
	s = strings.TrimPrefix(s, "viz/")
	return strings.Trim(s, "/")
}
