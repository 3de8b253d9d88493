package surface

import (
	"github.com/san-kum/vizvault/internal/gen"
	"github.com/san-kum/vizvault/internal/geom"
	"github.com/san-kum/vizvault/internal/params"
	"github.com/san-kum/vizvault/internal/scene"
)

// Preview renders one frame of slug from its defaults at time t. The
// returned frame is owned by the caller. On failure the view carries the
// placeholder and the frame is nil.
func Preview(reg *scene.Registry, loader *gen.Loader, slug string, t float64) (*geom.Frame, View) {
	return PreviewWith(reg, loader, slug, t, nil)
}

// PreviewWith is Preview with parameter overrides applied over the defaults.
// Overrides that fail to parse are ignored.
func PreviewWith(reg *scene.Registry, loader *gen.Loader, slug string, t float64, overrides map[string]string) (*geom.Frame, View) {
	d, err := reg.Lookup(slug)
	if err != nil {
		return nil, Fallback(err)
	}
	g, _, err := loader.Load(d.Generator)
	if err != nil {
		return nil, Fallback(err)
	}
	set := params.Defaults(d.Params)
	for name, raw := range overrides {
		spec, ok := d.Spec(name)
		if !ok {
			continue
		}
		if v, err := params.Parse(spec, raw); err == nil {
			set[name] = params.Clamp(spec, v)
		}
	}
	f := &geom.Frame{}
	g.Generate(set, gen.Clock{Elapsed: t, Delta: t}, f)
	return f, View{Kind: ViewOK}
}
