package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Mirror represents a specular reflector with optional fuzz
type Mirror struct {
	surface
	Fuzz float64 // 0 is a perfect mirror
}

// NewMirror creates a new mirror material
func NewMirror(albedo core.Vec3, fuzz float64) *Mirror {
	return &Mirror{surface: surface{NewShading(albedo)}, Fuzz: fuzz}
}

// Scatter reflects the incoming ray about the normal, perturbed by a random point
// in the sphere of radius Fuzz. Perturbations that end up below the surface are unusable.
func (m *Mirror) Scatter(rayIn core.Ray, hit SurfaceInteraction, sampler core.Sampler) ScatterResult {
	reflected := core.Reflect(rayIn.Direction, hit.Normal)
	if m.Fuzz > 0 {
		reflected = reflected.Add(core.SamplePointInUnitSphere(sampler.Get3D()).Multiply(m.Fuzz))
	}

	if reflected.Dot(hit.Normal) < 0 {
		return unusable
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.OffsetPoint(false), reflected),
		Attenuation: m.shading.Albedo,
	}
}
