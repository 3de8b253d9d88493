package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/vizvault/internal/geom"
	"github.com/san-kum/vizvault/internal/stats"
	"github.com/san-kum/vizvault/internal/viz"
)

const defaultBackground = "#0a0a0a"

func svgHeader(sb *strings.Builder, width, height float64, bg string) {
	if bg == "" {
		bg = defaultBackground
	}
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, bg)
}

// CanvasToSVG converts a Braille canvas to SVG format, one circle per lit
// dot in its cell colour.
func CanvasToSVG(canvas *viz.Canvas, scale float64, bg string) string {
	if canvas == nil {
		return ""
	}

	sw, sh := canvas.Dots()
	width, height := float64(sw)*scale, float64(sh)*scale

	var sb strings.Builder
	svgHeader(&sb, width, height, bg)
	sb.WriteString("<g>\n")

	dotRadius := scale * 0.4
	for y := 0; y < sh; y++ {
		for x := 0; x < sw; x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			fill := canvas.Colors[y/4][x/2].Hex()
			fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, float64(x)*scale+scale/2, float64(y)*scale+scale/2, dotRadius, fill)
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// FrameToSVG projects a frame through cam and emits vector lines and
// circles, far primitives first. A nil camera is fitted to the frame.
func FrameToSVG(f *geom.Frame, cam *viz.Camera, width, height int) string {
	if cam == nil {
		cam = viz.NewCamera()
		cam.Fit(stats.Summarize(f).Radius)
	}
	bg := defaultBackground
	if f != nil {
		bg = f.Background.Hex()
	}

	var sb strings.Builder
	svgHeader(&sb, float64(width), float64(height), bg)
	sb.WriteString(`<g stroke-linecap="round">` + "\n")

	w := viz.NewWireframe()
	w.FromFrame(f)
	for _, e := range w.Project(cam, width, height) {
		col := e.Color.Hex()
		if e.X1 == e.X2 && e.Y1 == e.Y2 {
			r := math.Max(1, float64(e.Radius))
			fmt.Fprintf(&sb, `<circle cx="%d" cy="%d" r="%.1f" fill="%s"/>
`, e.X1, e.Y1, r, col)
			continue
		}
		fmt.Fprintf(&sb, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="1.5"/>
`, e.X1, e.Y1, e.X2, e.Y2, col)
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// SeriesToSVG plots values against their index as a single path.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minY, maxY := values[0], values[0]
	for _, v := range values {
		minY, maxY = math.Min(minY, v), math.Max(maxY, v)
	}
	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY
	rangeX := float64(len(values) - 1)

	var sb strings.Builder
	svgHeader(&sb, float64(width), float64(height), "")
	fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor)

	for i, v := range values {
		x := float64(i) / rangeX * float64(width)
		y := float64(height) - (v-minY)/rangeY*float64(height)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
