package viz

import (
	"math"

	"github.com/san-kum/nbodysim/internal/dynamo"
)

// Camera projects world positions onto the canvas. The default view looks
// down the z axis so planar orbits appear face on.
type Camera struct {
	RotX, RotY, RotZ float64
	Zoom             float64
	// Extent is the world half-width that fits the shorter screen side at
	// zoom 1.
	Extent float64
}

func NewCamera(extent float64) *Camera {
	if extent <= 0 || math.IsNaN(extent) || math.IsInf(extent, 0) {
		extent = 1
	}
	return &Camera{Zoom: 1.0, Extent: extent}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

// Reset restores the face-on view.
func (c *Camera) Reset() {
	c.RotX, c.RotY, c.RotZ, c.Zoom = 0, 0, 0, 1
}

// RotatePoint rotates p about the x, y and z axes in turn.
func (c *Camera) RotatePoint(p dynamo.Vec3) dynamo.Vec3 {
	x, y, z := p.X(), p.Y(), p.Z()
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	y, z = y*cx-z*sx, y*sx+z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	x, z = x*cy+z*sy, -x*sy+z*cy
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	x, y = x*cz-y*sz, x*sz+y*cz
	return dynamo.V(x, y, z)
}

// Project maps p relative to center into sub-pixel coordinates of a
// sw x sh screen. The bool is false when the point falls off screen.
func (c *Camera) Project(p, center dynamo.Vec3, sw, sh int) (int, int, bool) {
	rot := c.RotatePoint(p.Sub(center)).Scale(c.Zoom)
	minDim := float64(sh)
	if float64(sw) < minDim {
		minDim = float64(sw)
	}
	scale := minDim / (2 * c.Extent)
	sx := int(math.Round(rot.X()*scale)) + sw/2
	sy := int(math.Round(-rot.Y()*scale)) + sh/2
	return sx, sy, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}
