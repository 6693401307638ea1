package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// List intersects every object in turn. It is the brute-force counterpart of BVH.
type List []Object

// Intersect returns the closest hit with t < tMax
func (l List) Intersect(ray core.Ray, tMax float64) Hit {
	closest := NoHit()
	for _, object := range l {
		if hit := object.Intersect(ray, tMax); hit.Valid {
			closest = hit
			tMax = hit.T
		}
	}
	return closest
}

// BoundingBox returns the union of all object boxes
func (l List) BoundingBox() core.AABB {
	box := core.EmptyAABB()
	for _, object := range l {
		box = box.Union(object.BoundingBox())
	}
	return box
}
