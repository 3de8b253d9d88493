package gen

import (
	"math"

	"github.com/san-kum/vizvault/internal/geom"
	"github.com/san-kum/vizvault/internal/params"
)

const terrainExtent = 20

type terrain struct{}

func (terrain) Generate(p params.Set, _ Clock, dst *geom.Frame) {
	amp := p.Number("amplitude", 2.5)
	freq := p.Number("frequency", 2)
	pal := paletteOf(p)
	hm := terrainHeightmap()
	rows, cols := len(hm), len(hm[0])

	dst.Background = pal.BackgroundColor()
	dst.Wireframe = p.Bool("wireframe", false)

	for i := 0; i < rows*cols; i++ {
		x := float64(i%cols) / float64(cols-1)
		y := float64(i/cols) / float64(rows-1)
		h := hm[int(math.Floor(y*float64(rows-1)))][int(math.Floor(x*float64(cols-1)))]
		wave := math.Sin((x+y)*math.Pi*freq)*0.15 + math.Cos((x-y)*math.Pi*freq)*0.12
		dst.Points = append(dst.Points, geom.Point{
			Position: geom.V((x-0.5)*terrainExtent, (h+wave)*amp, (y-0.5)*terrainExtent),
			Color:    pal.At(h),
			Size:     0.12,
		})
	}
	if !dst.Wireframe {
		return
	}
	for r := 0; r < rows; r++ {
		for col := 0; col < cols; col++ {
			v := dst.Points[r*cols+col]
			if col+1 < cols {
				dst.Segments = append(dst.Segments, geom.Segment{A: v.Position, B: dst.Points[r*cols+col+1].Position, Color: v.Color})
			}
			if r+1 < rows {
				dst.Segments = append(dst.Segments, geom.Segment{A: v.Position, B: dst.Points[(r+1)*cols+col].Position, Color: v.Color})
			}
		}
	}
}
