package material

import (
	"math"

	"github.com/df07/go-bvh-raytracer/pkg/core"
)

// ColorSource provides spatially-varying colors for materials
type ColorSource interface {
	// Evaluate returns color at given UV coordinates and 3D point
	// UV is used for image textures, point for procedural textures
	Evaluate(uv core.Vec2, point core.Vec3) core.Vec3
}

// SolidColor provides uniform color
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color source
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Evaluate returns the solid color regardless of UV or position
func (s *SolidColor) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	return s.Color
}

// CheckerTexture alternates between two sources on a 3D grid of cubes
type CheckerTexture struct {
	InvScale float64
	Even     ColorSource
	Odd      ColorSource
}

// NewCheckerTexture creates a spatial checker with cubes of side scale
func NewCheckerTexture(scale float64, even, odd ColorSource) *CheckerTexture {
	return &CheckerTexture{InvScale: 1.0 / scale, Even: even, Odd: odd}
}

// NewSolidCheckerTexture is NewCheckerTexture with two solid colors
func NewSolidCheckerTexture(scale float64, even, odd core.Vec3) *CheckerTexture {
	return NewCheckerTexture(scale, NewSolidColor(even), NewSolidColor(odd))
}

// Evaluate picks Even or Odd by the parity of the cell containing point
func (c *CheckerTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	x := int(math.Floor(c.InvScale * point.X))
	y := int(math.Floor(c.InvScale * point.Y))
	z := int(math.Floor(c.InvScale * point.Z))

	if (x+y+z)%2 == 0 {
		return c.Even.Evaluate(uv, point)
	}
	return c.Odd.Evaluate(uv, point)
}
