package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// boxPadding keeps axis-aligned triangles from producing flat bounding boxes
const boxPadding = 1e-4

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	P1, P2, P3 core.Vec3 // The three vertices
	N1, N2, N3 core.Vec3 // Per-vertex normals, used when smooth is set
	smooth     bool
	normal     core.Vec3  // Cached face normal
	edge1      core.Vec3  // P2 - P1
	edge2      core.Vec3  // P3 - P1
	toLocal    mgl64.Mat4 // World space to the frame spanned by edge1, edge2 and the normal
	bbox       core.AABB  // Cached bounding box
	material   material.Material
}

// NewTriangle creates a flat shaded triangle. The face normal follows the
// winding p1 -> p2 -> p3.
func NewTriangle(p1, p2, p3 core.Vec3, mat material.Material) *Triangle {
	t := &Triangle{P1: p1, P2: p2, P3: p3, material: mat}
	t.precompute()
	return t
}

// NewSmoothTriangle creates a triangle that interpolates the given vertex normals
func NewSmoothTriangle(p1, p2, p3, n1, n2, n3 core.Vec3, mat material.Material) *Triangle {
	t := &Triangle{P1: p1, P2: p2, P3: p3, N1: n1, N2: n2, N3: n3, smooth: true, material: mat}
	t.precompute()
	return t
}

func (t *Triangle) precompute() {
	t.edge1 = t.P2.Subtract(t.P1)
	t.edge2 = t.P3.Subtract(t.P1)
	t.normal = t.edge1.Cross(t.edge2).Normalize()

	// Columns map local (u, v, w, 1) to P1 + u*edge1 + v*edge2 + w*normal
	toWorld := mgl64.Mat4FromCols(t.edge1.Mgl(0), t.edge2.Mgl(0), t.normal.Mgl(0), t.P1.Mgl(1))
	t.toLocal = toWorld.Inv()

	t.bbox = core.NewAABBFromPoints(t.P1, t.P2, t.P3).Expand(boxPadding)
}

// Intersect transforms the ray into the triangle's local frame, where the
// triangle is the unit right triangle in the z=0 plane, and checks the
// barycentric coordinates of the plane crossing.
func (t *Triangle) Intersect(ray core.Ray, tMax float64) Hit {
	origin := core.FromMgl(t.toLocal.Mul4x1(ray.Origin.Mgl(1)))
	direction := core.FromMgl(t.toLocal.Mul4x1(ray.Direction.Mgl(0)))

	tHit := -origin.Z / direction.Z
	if !inRange(tHit, tMax) {
		return NoHit()
	}

	u := origin.X + tHit*direction.X
	v := origin.Y + tHit*direction.Y
	if u < 0 || v < 0 || u+v > 1 {
		return NoHit()
	}

	return t.hitAt(ray, tHit, u, v)
}

// IntersectMollerTrumbore is the Möller-Trumbore formulation of Intersect
func (t *Triangle) IntersectMollerTrumbore(ray core.Ray, tMax float64) Hit {
	const epsilon = 1e-12

	pvec := ray.Direction.Cross(t.edge2)
	det := t.edge1.Dot(pvec)
	if math.Abs(det) < epsilon {
		return NoHit()
	}
	invDet := 1.0 / det

	tvec := ray.Origin.Subtract(t.P1)
	u := tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return NoHit()
	}

	qvec := tvec.Cross(t.edge1)
	v := ray.Direction.Dot(qvec) * invDet
	if v < 0 || u+v > 1 {
		return NoHit()
	}

	tHit := t.edge2.Dot(qvec) * invDet
	if !inRange(tHit, tMax) {
		return NoHit()
	}

	return t.hitAt(ray, tHit, u, v)
}

// IntersectSimple intersects the supporting plane and then tests the crossing
// against each edge.
func (t *Triangle) IntersectSimple(ray core.Ray, tMax float64) Hit {
	denominator := t.normal.Dot(ray.Direction)
	if denominator == 0 {
		return NoHit()
	}

	tHit := t.normal.Dot(t.P1.Subtract(ray.Origin)) / denominator
	if !inRange(tHit, tMax) {
		return NoHit()
	}

	p := ray.At(tHit)
	if t.P2.Subtract(t.P1).Cross(p.Subtract(t.P1)).Dot(t.normal) < 0 ||
		t.P3.Subtract(t.P2).Cross(p.Subtract(t.P2)).Dot(t.normal) < 0 ||
		t.P1.Subtract(t.P3).Cross(p.Subtract(t.P3)).Dot(t.normal) < 0 {
		return NoHit()
	}

	// Barycentric coordinates of p relative to edge1 and edge2
	area := t.edge1.Cross(t.edge2)
	rel := p.Subtract(t.P1)
	u := rel.Cross(t.edge2).Dot(area) / area.Dot(area)
	v := t.edge1.Cross(rel).Dot(area) / area.Dot(area)

	return t.hitAt(ray, tHit, u, v)
}

func (t *Triangle) hitAt(ray core.Ray, tHit, u, v float64) Hit {
	hit := Hit{T: tHit, Valid: true, Object: t}
	hit.Point = t.P1.Add(t.edge1.Multiply(u)).Add(t.edge2.Multiply(v))

	outward := t.normal
	if t.smooth {
		w := 1 - u - v
		outward = t.N2.Multiply(u).Add(t.N3.Multiply(v)).Add(t.N1.Multiply(w)).Normalize()
	}
	hit.SetFaceNormal(ray, outward)
	return hit
}

// BoundingBox returns the padded axis-aligned bounding box for this triangle
func (t *Triangle) BoundingBox() core.AABB {
	return t.bbox
}

// Material returns the triangle's material
func (t *Triangle) Material() material.Material {
	return t.material
}

// Normal returns the triangle's face normal
func (t *Triangle) Normal() core.Vec3 {
	return t.normal
}
