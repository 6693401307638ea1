package core

import (
	"math"
	"math/rand"
)

// Sampler provides random sampling for rendering algorithms.
// A Sampler is not safe for concurrent use; every worker owns its own.
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
	Get3D() Vec3
	IntN(n int) int
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler with its own generator seeded with seed
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// Get3D returns three random float64 values in [0, 1)
func (r *RandomSampler) Get3D() Vec3 {
	return NewVec3(r.random.Float64(), r.random.Float64(), r.random.Float64())
}

// IntN returns a uniform integer in [0, n)
func (r *RandomSampler) IntN(n int) int {
	return r.random.Intn(n)
}

// Lerp maps u in [0, 1) onto [a, b)
func Lerp(a, b, u float64) float64 {
	return a + (b-a)*u
}

// ONB is an orthonormal basis built around a normal
type ONB struct {
	S, T, N Vec3
}

// NewONB builds a basis whose third axis is n. The helper axis is switched
// when n is nearly parallel to X.
func NewONB(n Vec3) ONB {
	a := NewVec3(1, 0, 0)
	if math.Abs(n.X) > 0.9 {
		a = NewVec3(0, 1, 0)
	}
	t := n.Cross(a).Normalize()
	s := n.Cross(t)
	return ONB{S: s, T: t, N: n}
}

// Local transforms a vector given in basis coordinates to world space
func (o ONB) Local(v Vec3) Vec3 {
	return o.S.Multiply(v.X).Add(o.T.Multiply(v.Y)).Add(o.N.Multiply(v.Z))
}

// SampleCosineDirection returns a cosine-weighted direction about +Z
func SampleCosineDirection(sample Vec2) Vec3 {
	phi := 2 * math.Pi * sample.X
	r := math.Sqrt(sample.Y)
	return NewVec3(math.Cos(phi)*r, math.Sin(phi)*r, math.Sqrt(1-sample.Y))
}

// SampleCosineHemisphere generates a cosine-weighted random direction in hemisphere around normal
func SampleCosineHemisphere(normal Vec3, sample Vec2) Vec3 {
	return NewONB(normal).Local(SampleCosineDirection(sample))
}

// SamplePointInUnitDisk generates a random point in a unit disk using concentric mapping
// This avoids rejection sampling by mapping a square uniformly to a disk
func SamplePointInUnitDisk(sample Vec2) Vec3 {
	uOffset := NewVec2(2*sample.X-1, 2*sample.Y-1)
	if uOffset.X == 0 && uOffset.Y == 0 {
		return NewVec3(0, 0, 0)
	}

	var theta, r float64
	if math.Abs(uOffset.X) > math.Abs(uOffset.Y) {
		r = uOffset.X
		theta = math.Pi / 4 * (uOffset.Y / uOffset.X)
	} else {
		r = uOffset.Y
		theta = math.Pi/2 - math.Pi/4*(uOffset.X/uOffset.Y)
	}

	return NewVec3(r*math.Cos(theta), r*math.Sin(theta), 0)
}

// SamplePointInUnitSphere generates a random point inside a unit sphere using spherical coordinates
// This avoids rejection sampling by using the inverse CDF method
func SamplePointInUnitSphere(sample Vec3) Vec3 {
	r := math.Cbrt(sample.X)
	phi := 2 * math.Pi * sample.Y
	cosTheta := 2*sample.Z - 1
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))

	return NewVec3(r*sinTheta*math.Cos(phi), r*sinTheta*math.Sin(phi), r*cosTheta)
}
