package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// DirectLightingIntegrator shades the first hit with the scene's directional
// light using Blinn-Phong and a hard shadow. It makes no random decisions, so
// every sample of a pixel returns the same value.
type DirectLightingIntegrator struct {
	scene *scene.Scene
}

// NewDirectLightingIntegrator creates a direct lighting estimator for s
func NewDirectLightingIntegrator(s *scene.Scene) *DirectLightingIntegrator {
	return &DirectLightingIntegrator{scene: s}
}

// RayColor computes the color for a single ray. The sampler is unused.
func (d *DirectLightingIntegrator) RayColor(ray core.Ray, sampler core.Sampler) core.Vec3 {
	hit := d.scene.Intersect(ray, math.Inf(1))
	if !hit.Valid {
		return d.scene.BackgroundColor(ray.Direction)
	}

	sun := d.scene.Sun
	shading := hit.Material().Shading()
	radiance := sun.Ambient.MultiplyVec(shading.Ambient)

	shadowRay := core.NewRay(hit.OffsetPoint(false), sun.Direction)
	if d.scene.Intersect(shadowRay, math.Inf(1)).Valid {
		return radiance
	}

	toLight := sun.Direction.Normalize()
	halfway := toLight.Subtract(ray.Direction).Normalize()
	diffuse := math.Max(hit.Normal.Dot(toLight), 0)
	specular := math.Max(hit.Normal.Dot(halfway), 0)

	radiance = radiance.Add(sun.Diffuse.MultiplyVec(shading.Albedo).Multiply(diffuse))
	radiance = radiance.Add(sun.Specular.Multiply(shading.Specular * math.Pow(specular, shading.Shininess)))
	return radiance
}
