// Package pdf provides direction densities used for importance sampling:
// a cosine-weighted hemisphere, sampling toward emissive surfaces, and
// an equal-weight mixture of two densities.
package pdf

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// PDF generates directions and evaluates the density they were drawn with
type PDF interface {
	// Density returns the solid angle density of direction at hit
	Density(hit material.SurfaceInteraction, direction core.Vec3) float64
	// Sample draws a direction. It is not necessarily normalized.
	Sample(sampler core.Sampler) core.Vec3
}

// Target is a surface that can be sampled directly, typically an emitter
type Target interface {
	RandomPointOnSurface(sampler core.Sampler) core.Vec3
	SolidAnglePDF(origin, direction core.Vec3) float64
}
