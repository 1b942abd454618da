package material

import (
	"github.com/df07/go-bvh-raytracer/pkg/core"
)

// Material interface for objects that can scatter rays
type Material interface {
	// Scatter proposes an outgoing ray and its attenuation.
	// It returns false when the material absorbs the incoming ray.
	Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool)
}

// Emitter interface for materials that emit light.
// Materials that do not implement it emit black.
type Emitter interface {
	Emitted(uv core.Vec2, point core.Vec3) core.Vec3
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The scattered ray
	Attenuation core.Vec3 // Color attenuation
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Surface normal, facing against the incoming ray
	T         float64   // Parameter t along the ray
	FrontFace bool      // Whether ray hit the outward-facing side
	UV        core.Vec2 // Surface parameterization for texturing
	Material  Material  // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face.
// outwardNormal must have unit length.
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// Emitted returns the light emitted by m at the hit, black for non-emitters
func Emitted(m Material, uv core.Vec2, point core.Vec3) core.Vec3 {
	if emitter, ok := m.(Emitter); ok {
		return emitter.Emitted(uv, point)
	}
	return core.Vec3{}
}
