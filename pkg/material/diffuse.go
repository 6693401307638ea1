package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Diffuse represents a perfectly diffuse (Lambertian) material.
// The outgoing direction is chosen by the integrator's PDF, not by Scatter.
type Diffuse struct {
	surface
}

// NewDiffuse creates a new diffuse material
func NewDiffuse(albedo core.Vec3) *Diffuse {
	return &Diffuse{surface{NewShading(albedo)}}
}

// Scatter returns the albedo as attenuation. The continuation ray starts just
// above the surface and points along the normal until the integrator samples a direction.
func (d *Diffuse) Scatter(rayIn core.Ray, hit SurfaceInteraction, sampler core.Sampler) ScatterResult {
	return ScatterResult{
		Scattered:   core.Ray{Origin: hit.OffsetPoint(false), Direction: hit.Normal},
		Attenuation: d.shading.Albedo,
	}
}

// PDF returns the cosine density cos(θ)/π, zero below the surface
func (d *Diffuse) PDF(hit SurfaceInteraction, direction core.Vec3) float64 {
	cosine := hit.Normal.Dot(direction.Normalize())
	if cosine < 0 {
		return 0
	}
	return cosine / math.Pi
}

func (d *Diffuse) IsDiffuse() bool  { return true }
func (d *Diffuse) HasDensity() bool { return true }
