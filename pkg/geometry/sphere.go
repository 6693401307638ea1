package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		material: mat,
	}
}

// Intersect solves the ray/sphere quadratic and keeps the smaller positive root
func (s *Sphere) Intersect(ray core.Ray, tMax float64) Hit {
	oc := ray.Origin.Subtract(s.Center)

	a := ray.Direction.Dot(ray.Direction)
	b := 2 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return NoHit()
	}

	sqrtD := math.Sqrt(discriminant)
	far := (-b + sqrtD) / (2 * a)
	near := (-b - sqrtD) / (2 * a)
	if far <= 0 {
		return NoHit()
	}

	t := near
	if near <= 0 {
		t = far
	}
	if t >= tMax {
		return NoHit()
	}

	hit := Hit{T: t, Valid: true, Object: s}
	hit.Point = ray.At(t)
	hit.SetFaceNormal(ray, hit.Point.Subtract(s.Center).Multiply(1.0/s.Radius))
	return hit
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() core.AABB {
	radius := core.Splat(s.Radius)
	return core.NewAABB(s.Center.Subtract(radius), s.Center.Add(radius))
}

// Material returns the sphere's material
func (s *Sphere) Material() material.Material {
	return s.material
}
