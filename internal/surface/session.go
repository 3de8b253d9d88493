package surface

import (
	"fmt"

	"github.com/san-kum/vizvault/internal/gen"
	"github.com/san-kum/vizvault/internal/geom"
	"github.com/san-kum/vizvault/internal/params"
	"github.com/san-kum/vizvault/internal/render"
	"github.com/san-kum/vizvault/internal/scene"
)

// Session is the detail view of one active scene.
type Session struct {
	reg    *scene.Registry
	loader *gen.Loader

	desc  scene.Descriptor
	store *params.Store
	loop  *render.Loop
}

// Open resolves slug and its generator and seeds a fresh store with the
// scene defaults.
func Open(reg *scene.Registry, loader *gen.Loader, slug string) (*Session, error) {
	s := &Session{reg: reg, loader: loader, store: params.NewStore()}
	if err := s.Switch(slug); err != nil {
		return nil, err
	}
	return s, nil
}

// Switch activates another scene. The parameter set is replaced wholesale;
// on error the current scene stays active.
func (s *Session) Switch(slug string) error {
	d, err := s.reg.Lookup(slug)
	if err != nil {
		return err
	}
	g, k, err := s.loader.Load(d.Generator)
	if err != nil {
		return fmt.Errorf("scene %s: %w", d.Slug, err)
	}
	if s.loop != nil {
		s.loop.Stop()
	}
	s.desc = d
	s.store.Reset(params.Defaults(d.Params))
	s.loop = render.NewLoop(g, k, s.store)
	return nil
}

func (s *Session) Descriptor() scene.Descriptor { return s.desc }

func (s *Session) Store() *params.Store { return s.store }

func (s *Session) Loop() *render.Loop { return s.loop }

func (s *Session) Params() params.Set { return s.store.Get() }

// Set assigns one parameter as a control would: the value is clamped to the
// spec first. Unknown names are rejected.
func (s *Session) Set(name string, v params.Value) error {
	spec, ok := s.desc.Spec(name)
	if !ok {
		return fmt.Errorf("%w: %s", params.ErrUnknownParam, name)
	}
	if spec.Kind.Known() {
		v = params.Clamp(spec, v)
	}
	s.store.Set(name, v)
	return nil
}

// SetText parses raw according to the named spec and assigns it.
func (s *Session) SetText(name, raw string) error {
	spec, ok := s.desc.Spec(name)
	if !ok {
		return fmt.Errorf("%w: %s", params.ErrUnknownParam, name)
	}
	v, err := params.Parse(spec, raw)
	if err != nil {
		return err
	}
	return s.Set(name, v)
}

// Apply assigns several values, stopping at the first failure.
func (s *Session) Apply(values map[string]string) error {
	for name, raw := range values {
		if err := s.SetText(name, raw); err != nil {
			return err
		}
	}
	return nil
}

// Reset restores the scene defaults.
func (s *Session) Reset() {
	s.store.Reset(params.Defaults(s.desc.Params))
}

// Frame generates the next frame. It returns nil after Close.
func (s *Session) Frame(elapsed, delta float64) *geom.Frame {
	if s.loop == nil {
		return nil
	}
	return s.loop.Tick(elapsed, delta)
}

// Close stops the loop and releases its buffers.
func (s *Session) Close() {
	if s.loop != nil {
		s.loop.Stop()
		s.loop = nil
	}
}
