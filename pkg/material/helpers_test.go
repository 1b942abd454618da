package material

import (
	"github.com/df07/go-bvh-raytracer/pkg/core"
)

// fixedSampler returns the same values on every call
type fixedSampler struct {
	value1D float64
	value2D core.Vec2
}

func (f fixedSampler) Get1D() float64 { return f.value1D }
func (f fixedSampler) Get2D() core.Vec2 { return f.value2D }
func (f fixedSampler) Get3D() core.Vec3 {
	return core.NewVec3(f.value1D, f.value1D, f.value1D)
}

// pixelGrid is an in-memory PixelSource
type pixelGrid struct {
	width, height int
	pixels        []core.Vec3
}

func (p pixelGrid) Width() int  { return p.width }
func (p pixelGrid) Height() int { return p.height }
func (p pixelGrid) Pixel(x, y int) core.Vec3 {
	return p.pixels[y*p.width+x]
}
