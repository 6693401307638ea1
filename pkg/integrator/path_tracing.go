package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/pdf"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// minDensity terminates paths whose sampled direction is too unlikely to divide by
const minDensity = 1e-4

// minDistanceSquared keeps the inverse square falloff of point lights finite
const minDistanceSquared = 1e-4

// PathTracingIntegrator implements recursive unidirectional path tracing with a
// fixed depth cutoff. Diffuse surfaces importance sample a 50/50 mixture of their
// cosine lobe and the scene's emissive surfaces, and also receive a hard-shadowed
// contribution from every point light.
type PathTracingIntegrator struct {
	scene    *scene.Scene
	maxDepth int
	targets  []pdf.Target
}

// NewPathTracingIntegrator creates a path tracer for s. Emissive objects that can
// be sampled directly are collected once here.
func NewPathTracingIntegrator(s *scene.Scene, maxDepth int) *PathTracingIntegrator {
	pt := &PathTracingIntegrator{scene: s, maxDepth: maxDepth}
	for _, emissive := range s.Emissives {
		if target, ok := emissive.(pdf.Target); ok {
			pt.targets = append(pt.targets, target)
		}
	}
	return pt
}

// RayColor computes the color for a single ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, sampler core.Sampler) core.Vec3 {
	return pt.trace(ray, 1, sampler)
}

func (pt *PathTracingIntegrator) trace(ray core.Ray, depth int, sampler core.Sampler) core.Vec3 {
	if depth > pt.maxDepth {
		return core.Vec3{}
	}

	hit := pt.scene.Intersect(ray, math.Inf(1))
	if !hit.Valid {
		return pt.scene.BackgroundColor(ray.Direction)
	}

	mat := hit.Material()
	if mat.IsEmissive() {
		return mat.Emit(hit.SurfaceInteraction)
	}

	radiance := pt.pointLights(hit, mat)

	scatter := mat.Scatter(ray, hit.SurfaceInteraction, sampler)
	if !scatter.Usable() {
		return core.Vec3{}
	}

	// Specular continuation: the direction is deterministic, so there is no density to divide by
	if !mat.HasDensity() {
		incoming := pt.trace(scatter.Scattered, depth+1, sampler)
		return radiance.Add(scatter.Attenuation.MultiplyVec(incoming))
	}

	var density pdf.PDF = pdf.NewCosine(hit.Normal)
	if len(pt.targets) > 0 {
		density = pdf.NewMixture(pdf.NewObjectList(pt.targets, hit.Point), density)
	}

	next := core.NewRay(hit.OffsetPoint(false), density.Sample(sampler))
	p := density.Density(hit.SurfaceInteraction, next.Direction)
	if p < minDensity {
		return core.Vec3{}
	}

	incoming := pt.trace(next, depth+1, sampler)
	weight := mat.PDF(hit.SurfaceInteraction, next.Direction) / p
	return radiance.Add(scatter.Attenuation.MultiplyVec(incoming).Multiply(weight))
}

// pointLights adds the inverse square, cosine weighted contribution of every
// unoccluded point light. Only diffuse surfaces receive it.
func (pt *PathTracingIntegrator) pointLights(hit geometry.Hit, mat material.Material) core.Vec3 {
	radiance := core.Vec3{}
	if !mat.IsDiffuse() {
		return radiance
	}

	albedo := mat.Shading().Albedo
	for _, light := range pt.scene.Lights {
		toLight := light.Position.Subtract(hit.Point)
		shadowRay := core.NewRay(hit.OffsetPoint(false), toLight)
		if pt.scene.Intersect(shadowRay, toLight.Length()).Valid {
			continue
		}

		distanceSquared := math.Max(toLight.LengthSquared(), minDistanceSquared)
		intensity := light.Power.Multiply(1 / (4 * math.Pi * distanceSquared))
		cosine := math.Max(hit.Normal.Dot(toLight.Normalize()), 0)
		radiance = radiance.Add(albedo.MultiplyVec(intensity).Multiply(cosine))
	}
	return radiance
}
