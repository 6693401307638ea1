package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Epsilon is the distance continuation and shadow rays are pushed off a surface
// along its normal so they do not immediately hit it again.
const Epsilon = 1e-4

// Material describes how a surface scatters or emits light.
// Implementations are immutable and shared between objects and render workers.
type Material interface {
	// Scatter produces the continuation ray and attenuation for an incoming ray.
	// A result whose Usable method reports false terminates the path.
	Scatter(rayIn core.Ray, hit SurfaceInteraction, sampler core.Sampler) ScatterResult

	// Emit returns the radiance emitted at the hit point
	Emit(hit SurfaceInteraction) core.Vec3

	// PDF evaluates the material's own density for an outgoing direction.
	// It is only meaningful when HasDensity is true.
	PDF(hit SurfaceInteraction, direction core.Vec3) float64

	IsDiffuse() bool
	IsEmissive() bool
	HasDensity() bool
	IsTransparent() bool

	// Shading returns the Blinn-Phong parameters used by the direct lighting estimator
	Shading() Shading
}

// SurfaceInteraction is the geometric part of a hit that materials need
type SurfaceInteraction struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Shading normal, facing against the incoming ray
	FrontFace bool      // Whether the ray hit the outward side of the surface
}

// SetFaceNormal orients the normal against the ray and records which side was hit
func (si *SurfaceInteraction) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	si.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if si.FrontFace {
		si.Normal = outwardNormal
	} else {
		si.Normal = outwardNormal.Negate()
	}
}

// OffsetPoint returns the hit point moved by Epsilon along the normal, or against it when below is set
func (si SurfaceInteraction) OffsetPoint(below bool) core.Vec3 {
	if below {
		return si.Point.Subtract(si.Normal.Multiply(Epsilon))
	}
	return si.Point.Add(si.Normal.Multiply(Epsilon))
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The continuation ray
	Attenuation core.Vec3 // Color attenuation
}

// unusable marks a continuation ray the integrator must not follow
var unusable = ScatterResult{Attenuation: core.NewVec3(-1, 0, 0)}

// Usable reports whether the continuation ray may be traced.
// A negative first channel is the sentinel for an absorbed path.
func (s ScatterResult) Usable() bool {
	return s.Attenuation.X >= 0
}

// Shading holds Blinn-Phong parameters
type Shading struct {
	Albedo    core.Vec3
	Ambient   core.Vec3
	Specular  float64
	Shininess float64
}

// NewShading derives the default Blinn-Phong parameters from an albedo
func NewShading(albedo core.Vec3) Shading {
	return Shading{
		Albedo:    albedo,
		Ambient:   albedo.Multiply(math.Pi),
		Specular:  0.9,
		Shininess: 10,
	}
}

// surface is embedded by every material and supplies the classification defaults
type surface struct {
	shading Shading
}

func (s surface) Shading() Shading                          { return s.shading }
func (s surface) Emit(SurfaceInteraction) core.Vec3         { return core.Vec3{} }
func (s surface) PDF(SurfaceInteraction, core.Vec3) float64 { return 0 }
func (s surface) IsDiffuse() bool                           { return false }
func (s surface) IsEmissive() bool                          { return false }
func (s surface) HasDensity() bool                          { return false }
func (s surface) IsTransparent() bool                       { return false }
