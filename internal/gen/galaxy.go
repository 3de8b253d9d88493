package gen

import (
	"github.com/san-kum/vizvault/internal/geom"
	"github.com/san-kum/vizvault/internal/params"
	"github.com/san-kum/vizvault/internal/prng"
)

type galaxyKey struct {
	nodes     int
	linkRange float64
}

type galaxy struct {
	key   galaxyKey
	built bool
	nodes []geom.Vec3
	links []geom.Segment
}

func (g *galaxy) Generate(p params.Set, c Clock, dst *geom.Frame) {
	key := galaxyKey{
		nodes:     geom.ClampInt(p.Int("nodeCount", 60), 2, 300),
		linkRange: p.Number("linkRange", 3.2),
	}
	if !g.built || key != g.key {
		g.layout(key)
	}
	pal := paletteOf(p)
	size := p.Number("pointSize", 0.35)
	speed := p.Number("rotationSpeed", 0.4)

	dst.Background = pal.BackgroundColor()
	dst.Rotation = geom.V(0, c.Elapsed*speed*0.5, 0)

	edge := pal.At(0.2)
	for _, s := range g.links {
		s.Color = edge
		dst.Segments = append(dst.Segments, s)
	}
	den := float64(max(1, len(g.nodes)-1))
	for i, n := range g.nodes {
		dst.Points = append(dst.Points, geom.Point{
			Position: n,
			Color:    pal.At(float64(i)/den*0.8 + 0.1),
			Size:     size,
		})
	}
}

// layout picks the node set and rebuilds graph and proximity links.
func (g *galaxy) layout(key galaxyKey) {
	base := galaxyGraph()
	g.nodes = g.nodes[:0]
	g.links = g.links[:0]
	for i := 0; i < len(base.Nodes) && i < key.nodes; i++ {
		g.nodes = append(g.nodes, base.Nodes[i].Position)
	}
	if key.nodes > len(base.Nodes) {
		for _, p := range prng.RadialPoints(key.nodes-len(base.Nodes), galaxyRadius, 33) {
			g.nodes = append(g.nodes, vec(p))
		}
	}
	n := len(g.nodes)
	for _, e := range base.Edges {
		if e.Source < n && e.Target < n {
			g.links = append(g.links, geom.Segment{A: g.nodes[e.Source], B: g.nodes[e.Target]})
		}
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if g.nodes[i].Distance(g.nodes[j]) <= key.linkRange {
				g.links = append(g.links, geom.Segment{A: g.nodes[i], B: g.nodes[j]})
			}
		}
	}
	g.key = key
	g.built = true
}
