package surface

import (
	"errors"

	"github.com/san-kum/vizvault/internal/scene"
)

type ViewKind int

const (
	ViewOK ViewKind = iota
	ViewNotFound
	ViewUnavailable
)

const (
	NotFoundText    = "not found"
	UnavailableText = "preview unavailable"
)

// View is what a surface shows in place of a scene that cannot be drawn.
type View struct {
	Kind ViewKind
	Text string
	Err  error
}

func (v View) OK() bool { return v.Kind == ViewOK }

// Fallback maps a resolution error to a placeholder view. Errors other than
// an unknown scene are shown as an unavailable preview.
func Fallback(err error) View {
	switch {
	case err == nil:
		return View{Kind: ViewOK}
	case errors.Is(err, scene.ErrNotFound):
		return View{Kind: ViewNotFound, Text: NotFoundText, Err: err}
	}
	return View{Kind: ViewUnavailable, Text: UnavailableText, Err: err}
}
