package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Intersector answers closest-hit queries
type Intersector interface {
	Intersect(ray core.Ray, tMax float64) Hit
}

// Object is anything that can be hit by rays and bounded by a box.
// Primitives carry a shared material; composite nodes return nil.
type Object interface {
	Intersector
	BoundingBox() core.AABB
	Material() material.Material
}

// Hit is the result of an intersection query. Point, Normal, FrontFace, T and
// Object are only meaningful when Valid is set.
type Hit struct {
	material.SurfaceInteraction
	T      float64 // Parameter t along the ray, +Inf when invalid
	Valid  bool
	Object Object // Primitive that was hit, owned by the scene
}

// NoHit returns the invalid hit
func NoHit() Hit {
	return Hit{T: math.Inf(1)}
}

// Material returns the material of the hit primitive
func (h Hit) Material() material.Material {
	if !h.Valid || h.Object == nil {
		return nil
	}
	return h.Object.Material()
}

// closer returns whichever valid hit has the smaller t, preferring a valid hit over an invalid one
func closer(a, b Hit) Hit {
	if a.T < b.T {
		if a.Valid {
			return a
		}
		return b
	}
	if b.Valid {
		return b
	}
	return a
}

// inRange rejects t < 0, t >= tMax and NaN
func inRange(t, tMax float64) bool {
	return t >= 0 && t < tMax
}
