package integrator

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Integrator defines the interface for light transport algorithms.
// Implementations are bound to a scene and are safe for concurrent use as
// long as every goroutine passes its own sampler.
type Integrator interface {
	// RayColor estimates the radiance arriving along ray
	RayColor(ray core.Ray, sampler core.Sampler) core.Vec3
}
