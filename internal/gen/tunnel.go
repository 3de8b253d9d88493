package gen

import (
	"math"

	"github.com/san-kum/vizvault/internal/geom"
	"github.com/san-kum/vizvault/internal/params"
)

const (
	tunnelSegments = 64
	tunnelDepth    = 40
)

type tunnel struct{}

func (tunnel) Generate(p params.Set, c Clock, dst *geom.Frame) {
	rings := geom.ClampInt(p.Int("ringCount", 60), 10, 120)
	radius := p.Number("radius", 4)
	wobble := p.Number("wobble", 0.6)
	pal := paletteOf(p)
	t := c.Elapsed * p.Number("speed", 1)

	dst.Background = pal.BackgroundColor()
	dst.Rotation = geom.V(0, 0, t*0.1)

	for i := 0; i < rings; i++ {
		color := pal.At(float64(i)/float64(rings)*0.6 + 0.2)
		phase := t + float64(i)*0.12
		for j := 0; j < tunnelSegments; j++ {
			angle := float64(j) / tunnelSegments * math.Pi * 2
			wob := math.Sin(phase+angle*2) * wobble
			dst.Points = append(dst.Points, geom.Point{
				Position: geom.V(
					math.Cos(angle)*(radius+wob),
					math.Sin(angle)*(radius+wob),
					-float64(i)*(tunnelDepth/float64(rings))+math.Sin(phase*0.4+angle)*0.8,
				),
				Color: color,
				Size:  0.08,
			})
		}
	}
}
