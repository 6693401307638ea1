package pdf

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Cosine samples the hemisphere about a normal with density cos(θ)/π
type Cosine struct {
	onb core.ONB
}

// NewCosine creates a cosine density about normal
func NewCosine(normal core.Vec3) Cosine {
	return Cosine{onb: core.NewONB(normal)}
}

// Density returns cos(θ)/π against the hit normal, zero below the surface
func (c Cosine) Density(hit material.SurfaceInteraction, direction core.Vec3) float64 {
	cosine := hit.Normal.Dot(direction.Normalize())
	if cosine < 0 {
		return 0
	}
	return cosine / math.Pi
}

// Sample returns a cosine-weighted unit direction
func (c Cosine) Sample(sampler core.Sampler) core.Vec3 {
	return c.onb.Local(core.SampleCosineDirection(sampler.Get2D()))
}
