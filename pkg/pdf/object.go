package pdf

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Object samples directions from origin toward a point on a single target
type Object struct {
	Target Target
	Origin core.Vec3
}

// NewObject creates a density toward target as seen from origin
func NewObject(target Target, origin core.Vec3) Object {
	return Object{Target: target, Origin: origin}
}

// Density returns the target's solid angle density seen from the hit point
func (o Object) Density(hit material.SurfaceInteraction, direction core.Vec3) float64 {
	return o.Target.SolidAnglePDF(hit.Point, direction)
}

// Sample returns the direction from the origin to a random point on the target
func (o Object) Sample(sampler core.Sampler) core.Vec3 {
	return o.Target.RandomPointOnSurface(sampler).Subtract(o.Origin)
}

// ObjectList samples toward a uniformly chosen member of a list of targets
type ObjectList struct {
	Targets []Target
	Origin  core.Vec3
}

// NewObjectList creates a density over targets as seen from origin
func NewObjectList(targets []Target, origin core.Vec3) ObjectList {
	return ObjectList{Targets: targets, Origin: origin}
}

// Density averages the members' solid angle densities
func (l ObjectList) Density(hit material.SurfaceInteraction, direction core.Vec3) float64 {
	if len(l.Targets) == 0 {
		return 0
	}

	weight := 1.0 / float64(len(l.Targets))
	sum := 0.0
	for _, target := range l.Targets {
		sum += weight * target.SolidAnglePDF(hit.Point, direction)
	}
	return sum
}

// Sample picks a target uniformly and returns the direction to a random point on it
func (l ObjectList) Sample(sampler core.Sampler) core.Vec3 {
	if len(l.Targets) == 0 {
		return core.Vec3{}
	}
	target := l.Targets[sampler.IntN(len(l.Targets))]
	return target.RandomPointOnSurface(sampler).Subtract(l.Origin)
}
