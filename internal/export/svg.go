package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/nbodysim/internal/sim"
)

// Palette is cycled through for successive bodies.
var Palette = []string{"#00ffff", "#ff00ff", "#ffcc00", "#00ff88", "#ff6b6b", "#0088ff"}

type bounds struct {
	minX, maxX, minY, maxY float64
}

func frameBounds(frames []sim.Frame) bounds {
	b := bounds{math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(-1)}
	for _, f := range frames {
		for _, body := range f.Bodies {
			b.minX = math.Min(b.minX, body.Pos.X())
			b.maxX = math.Max(b.maxX, body.Pos.X())
			b.minY = math.Min(b.minY, body.Pos.Y())
			b.maxY = math.Max(b.maxY, body.Pos.Y())
		}
	}

	// Equal scale on both axes keeps orbits undistorted.
	span := math.Max(b.maxX-b.minX, b.maxY-b.minY)
	if span == 0 {
		span = 1
	}
	cx, cy := (b.minX+b.maxX)/2, (b.minY+b.maxY)/2
	half := span * 0.6
	return bounds{cx - half, cx + half, cy - half, cy + half}
}

// OrbitsSVG draws the x/y path of every body across frames, one colored
// polyline per body with a marker at its final position.
func OrbitsSVG(frames []sim.Frame, width, height int) string {
	if len(frames) < 2 || len(frames[0].Bodies) == 0 {
		return ""
	}

	b := frameBounds(frames)
	rangeX := b.maxX - b.minX
	rangeY := b.maxY - b.minY
	toScreen := func(x, y float64) (float64, float64) {
		return (x - b.minX) / rangeX * float64(width),
			float64(height) - (y-b.minY)/rangeY*float64(height)
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	n := len(frames[0].Bodies)
	for i := 0; i < n; i++ {
		color := Palette[i%len(Palette)]
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, color))
		for j, f := range frames {
			if i >= len(f.Bodies) {
				break
			}
			x, y := toScreen(f.Bodies[i].Pos.X(), f.Bodies[i].Pos.Y())
			if j == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	last := frames[len(frames)-1]
	for i, body := range last.Bodies {
		x, y := toScreen(body.Pos.X(), body.Pos.Y())
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="4" fill="%s"/>
`, x, y, Palette[i%len(Palette)]))
	}

	sb.WriteString(`</svg>`)
	return sb.String()
}
