package admin

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/san-kum/vizvault/internal/scene"
)

func TestEditsNeverReachRegistry(t *testing.T) {
	reg := scene.Builtin()
	e := NewEditor(reg)

	if err := e.Select("/viz/galaxy-network"); err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if e.Dirty() {
		t.Error("fresh selection should be clean")
	}
	if err := e.SetTitle("  Star Map "); err != nil {
		t.Fatal(err)
	}
	if err := e.SetDescription("edited"); err != nil {
		t.Fatal(err)
	}
	if !e.Dirty() {
		t.Error("expected dirty after edit")
	}

	raw, err := e.Preview()
	if err != nil {
		t.Fatalf("preview failed: %v", err)
	}
	var got scene.Descriptor
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("preview is not JSON: %v", err)
	}
	if got.Title != "Star Map" || got.Description != "edited" || got.Slug != "galaxy-network" {
		t.Errorf("unexpected preview %+v", got)
	}

	orig, err := reg.Lookup("galaxy-network")
	if err != nil {
		t.Fatal(err)
	}
	if orig.Title != "Galaxy Network" {
		t.Errorf("registry was modified: %q", orig.Title)
	}
}

func TestEditorRequiresSelection(t *testing.T) {
	e := NewEditor(scene.Builtin())

	if err := e.SetTitle("x"); !errors.Is(err, ErrNoSelection) {
		t.Errorf("expected ErrNoSelection, got %v", err)
	}
	if _, err := e.Preview(); !errors.Is(err, ErrNoSelection) {
		t.Errorf("expected ErrNoSelection, got %v", err)
	}
	if err := e.Select("missing"); !errors.Is(err, scene.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDraftsAreCopies(t *testing.T) {
	e := NewEditor(scene.Builtin())
	drafts := e.Drafts()
	drafts[0].Title = "changed"

	if err := e.Select(drafts[0].Slug); err != nil {
		t.Fatal(err)
	}
	d, _ := e.Selected()
	if d.Title == "changed" {
		t.Error("Drafts must not alias the working copy")
	}
}
