package dynamo

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is a 3-D vector of float64 components. Arithmetic never modifies the
// receiver; Fill is the single in-place operation.
type Vec3 mgl64.Vec3

// V builds a vector from its components.
func V(x, y, z float64) Vec3 { return Vec3{x, y, z} }

func (v Vec3) X() float64 { return v[0] }
func (v Vec3) Y() float64 { return v[1] }
func (v Vec3) Z() float64 { return v[2] }

func (v Vec3) Add(u Vec3) Vec3 { return Vec3(mgl64.Vec3(v).Add(mgl64.Vec3(u))) }
func (v Vec3) Sub(u Vec3) Vec3 { return Vec3(mgl64.Vec3(v).Sub(mgl64.Vec3(u))) }

// Scale multiplies every component by s.
func (v Vec3) Scale(s float64) Vec3 { return Vec3(mgl64.Vec3(v).Mul(s)) }

// Div divides every component by s. Division by zero follows IEEE 754 and
// yields ±Inf or NaN components; it does not panic.
func (v Vec3) Div(s float64) Vec3 { return Vec3{v[0] / s, v[1] / s, v[2] / s} }

func (v Vec3) Neg() Vec3 { return Vec3{-v[0], -v[1], -v[2]} }

func (v Vec3) Dot(u Vec3) float64 { return mgl64.Vec3(v).Dot(mgl64.Vec3(u)) }

// Cross returns v × u. It is anti-commutative: v.Cross(u) == u.Cross(v).Neg().
func (v Vec3) Cross(u Vec3) Vec3 { return Vec3(mgl64.Vec3(v).Cross(mgl64.Vec3(u))) }

// Norm is the Euclidean length sqrt(v·v). Components are rescaled by the
// largest magnitude when v·v would underflow or overflow, so Norm is zero
// only for the zero vector.
func (v Vec3) Norm() float64 {
	d := v.Dot(v)
	if d >= minNormal && !math.IsInf(d, 1) {
		return math.Sqrt(d)
	}
	s := math.Max(math.Abs(v[0]), math.Max(math.Abs(v[1]), math.Abs(v[2])))
	if s == 0 || math.IsInf(s, 1) {
		return s
	}
	u := v.Div(s)
	return s * math.Sqrt(u.Dot(u))
}

const minNormal = 0x1p-1022

// Fill overwrites all three components with s in place.
func (v *Vec3) Fill(s float64) {
	v[0], v[1], v[2] = s, s, s
}

func (v Vec3) IsZero() bool { return v[0] == 0 && v[1] == 0 && v[2] == 0 }

// IsFinite reports whether no component is NaN or Inf.
func (v Vec3) IsFinite() bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v[0], v[1], v[2])
}
