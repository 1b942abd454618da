package material

import (
	"math"
	"math/rand"

	"github.com/df07/go-bvh-raytracer/pkg/core"
)

const (
	perlinSize       = 256
	turbulenceOctave = 7
)

// Perlin is a seeded gradient noise generator
type Perlin struct {
	perm [2 * perlinSize]int
}

// NewPerlin builds a permutation table from seed
func NewPerlin(seed int64) *Perlin {
	random := rand.New(rand.NewSource(seed))
	p := &Perlin{}
	order := random.Perm(perlinSize)
	for i := 0; i < 2*perlinSize; i++ {
		p.perm[i] = order[i%perlinSize]
	}
	return p
}

func fade(x float64) float64 {
	return x * x * x * (x*(x*6.0-15.0) + 10.0)
}

func lerp(t, a, b float64) float64 {
	return (1-t)*a + t*b
}

// grad dots the fractional offset with one of 12 cube-edge gradients picked by hash
func grad(hash int, x, y, z float64) float64 {
	switch hash & 0x0f {
	case 0x0, 0xc:
		return x + y
	case 0x1, 0xe:
		return -x + y
	case 0x2:
		return x - y
	case 0x3:
		return -x - y
	case 0x4:
		return x + z
	case 0x5:
		return -x + z
	case 0x6:
		return x - z
	case 0x7:
		return -x - z
	case 0x8:
		return y + z
	case 0x9, 0xd:
		return -y + z
	case 0xa:
		return y - z
	default:
		return -y - z
	}
}

// Noise returns gradient noise at p, roughly in [-1, 1]
func (p *Perlin) Noise(point core.Vec3) float64 {
	fx, fy, fz := math.Floor(point.X), math.Floor(point.Y), math.Floor(point.Z)
	x := int(fx) & (perlinSize - 1)
	y := int(fy) & (perlinSize - 1)
	z := int(fz) & (perlinSize - 1)
	dx, dy, dz := point.X-fx, point.Y-fy, point.Z-fz

	u, v, w := fade(dx), fade(dy), fade(dz)

	a := p.perm[x] + y
	aa := p.perm[a] + z
	ab := p.perm[a+1] + z
	b := p.perm[x+1] + y
	ba := p.perm[b] + z
	bb := p.perm[b+1] + z

	return lerp(w,
		lerp(v,
			lerp(u, grad(p.perm[aa], dx, dy, dz), grad(p.perm[ba], dx-1, dy, dz)),
			lerp(u, grad(p.perm[ab], dx, dy-1, dz), grad(p.perm[bb], dx-1, dy-1, dz)),
		),
		lerp(v,
			lerp(u, grad(p.perm[aa+1], dx, dy, dz-1), grad(p.perm[ba+1], dx-1, dy, dz-1)),
			lerp(u, grad(p.perm[ab+1], dx, dy-1, dz-1), grad(p.perm[bb+1], dx-1, dy-1, dz-1)),
		),
	)
}

// Turbulence sums depth octaves of absolute noise with halving weights
func (p *Perlin) Turbulence(point core.Vec3, depth int) float64 {
	accum := 0.0
	weight := 1.0
	for i := 0; i < depth; i++ {
		accum += weight * p.Noise(point)
		weight *= 0.5
		point = point.Multiply(2)
	}
	return math.Abs(accum)
}

// NoiseTexture is a marble-like pattern driven by Perlin turbulence
type NoiseTexture struct {
	Scale float64
	noise *Perlin
}

// NewNoiseTexture creates a noise texture with its own seeded generator
func NewNoiseTexture(scale float64, seed int64) *NoiseTexture {
	return &NoiseTexture{Scale: scale, noise: NewPerlin(seed)}
}

// Evaluate returns a grey level in [0, 1]
func (n *NoiseTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	level := 0.5 * (1 + math.Sin(n.Scale*point.Z+10*n.noise.Turbulence(point, turbulenceOctave)))
	return core.NewVec3(level, level, level)
}
