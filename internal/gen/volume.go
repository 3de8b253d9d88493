package gen

import (
	"math"

	"github.com/san-kum/vizvault/internal/geom"
	"github.com/san-kum/vizvault/internal/params"
)

type volume struct {
	threshold float64
	built     bool
	kept      []volumeCell
}

func (v *volume) Generate(p params.Set, c Clock, dst *geom.Frame) {
	threshold := p.Number("threshold", 0.45)
	if !v.built || threshold != v.threshold {
		v.kept = v.kept[:0]
		for _, cell := range volumeCells() {
			if cell.Value >= threshold {
				v.kept = append(v.kept, cell)
			}
		}
		v.threshold, v.built = threshold, true
	}
	pal := paletteOf(p)
	size := p.Number("pointSize", 0.25)
	t := c.Elapsed * p.Number("speed", 1) * 0.6

	dst.Background = pal.BackgroundColor()
	dst.Rotation = geom.V(0, c.Elapsed*0.1, 0)

	for _, cell := range v.kept {
		x := volumeCoord(cell.X) * volumeGridSize
		y := volumeCoord(cell.Y) * volumeGridSize
		z := volumeCoord(cell.Z) * volumeGridSize
		sway := math.Sin(t+x*0.2+z*0.17) * 0.08
		dst.Points = append(dst.Points, geom.Point{
			Position: geom.V(x, y+sway, z),
			Color:    pal.At(math.Min(1, cell.Value)),
			Size:     size,
		})
	}
}
