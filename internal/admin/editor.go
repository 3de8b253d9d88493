// Package admin is the metadata editing surface. Edits live in a working
// copy of the catalog and are never written back to the registry.
package admin

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/san-kum/vizvault/internal/scene"
)

var ErrNoSelection = errors.New("no scene selected")

// Editor holds a working copy of every descriptor in a registry.
type Editor struct {
	drafts   []scene.Descriptor
	selected int
	dirty    map[string]bool
}

func NewEditor(reg *scene.Registry) *Editor {
	return &Editor{drafts: reg.All(), selected: -1, dirty: map[string]bool{}}
}

// Select makes slug the scene the setters act on.
func (e *Editor) Select(slug string) error {
	slug = scene.NormalizeSlug(slug)
	for i, d := range e.drafts {
		if d.Slug == slug {
			e.selected = i
			return nil
		}
	}
	return fmt.Errorf("%w: %s", scene.ErrNotFound, slug)
}

func (e *Editor) Selected() (scene.Descriptor, error) {
	if e.selected < 0 {
		return scene.Descriptor{}, ErrNoSelection
	}
	return e.drafts[e.selected], nil
}

func (e *Editor) SetTitle(title string) error {
	return e.edit(func(d *scene.Descriptor) { d.Title = strings.TrimSpace(title) })
}

func (e *Editor) SetDescription(desc string) error {
	return e.edit(func(d *scene.Descriptor) { d.Description = strings.TrimSpace(desc) })
}

func (e *Editor) edit(fn func(*scene.Descriptor)) error {
	if e.selected < 0 {
		return ErrNoSelection
	}
	d := &e.drafts[e.selected]
	fn(d)
	e.dirty[d.Slug] = true
	return nil
}

// Dirty reports whether the selected scene has unsaved edits.
func (e *Editor) Dirty() bool {
	return e.selected >= 0 && e.dirty[e.drafts[e.selected].Slug]
}

// Preview renders the selected working copy as indented JSON.
func (e *Editor) Preview() ([]byte, error) {
	d, err := e.Selected()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(d, "", "  ")
}

// Drafts returns the whole working copy in registry order.
func (e *Editor) Drafts() []scene.Descriptor {
	return append([]scene.Descriptor(nil), e.drafts...)
}
