package geometry

import (
	"math"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/material"
)

// Sphere represents a sphere shape.
// A negative radius flips the normals, which models hollow glass.
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
	bbox     core.AABB
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat material.Material) *Sphere {
	r := math.Abs(radius)
	extent := core.NewVec3(r, r, r)
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
		bbox:     core.NewAABB(center.Subtract(extent), center.Add(extent)),
	}
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic with b = 2*halfB: a*t² + 2*halfB*t + c = 0
	a := ray.Direction.LengthSquared()
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil, false
	}
	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if root < tMin || root >= tMax {
		root = (-halfB + sqrtD) / a
		if root < tMin || root >= tMax {
			return nil, false
		}
	}

	hitRecord := &material.HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: s.Material,
	}

	outwardNormal := hitRecord.Point.Subtract(s.Center).Multiply(1.0 / s.Radius)
	hitRecord.SetFaceNormal(ray, outwardNormal)
	hitRecord.UV = SphereUV(outwardNormal)

	return hitRecord, true
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() core.AABB {
	return s.bbox
}

// SphereUV maps a point p on the unit sphere to texture coordinates.
// u: angle around the Y axis from X=-1, v: angle from Y=-1 to Y=+1.
//
//	<1 0 0> yields <0.50 0.50>    <-1  0  0> yields <0.00 0.50>
//	<0 1 0> yields <0.50 1.00>    < 0 -1  0> yields <0.50 0.00>
//	<0 0 1> yields <0.25 0.50>    < 0  0 -1> yields <0.75 0.50>
func SphereUV(p core.Vec3) core.Vec2 {
	theta := math.Acos(-p.Y)
	phi := math.Atan2(-p.Z, p.X) + math.Pi
	return core.NewVec2(phi/(2*math.Pi), theta/math.Pi)
}
