package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// probeOffset moves the solid angle probe ray off the surface it starts on
const probeOffset = 0.001

// rectangle is an axis-aligned rectangle built from two triangles. It can be
// sampled as a light source.
type rectangle struct {
	P1, P2     core.Vec3
	tri1, tri2 *Triangle
	area       float64
	material   material.Material
	self       Object
}

// Intersect returns the closer of the two triangle hits
func (r *rectangle) Intersect(ray core.Ray, tMax float64) Hit {
	first := r.tri1.Intersect(ray, tMax)
	bound := tMax
	if first.Valid {
		bound = first.T
	}
	second := r.tri2.Intersect(ray, bound)

	hit := closer(first, second)
	if hit.Valid {
		hit.Object = r.self
	}
	return hit
}

// BoundingBox returns the union of both triangle boxes
func (r *rectangle) BoundingBox() core.AABB {
	return r.tri1.BoundingBox().Union(r.tri2.BoundingBox())
}

// Material returns the rectangle's material
func (r *rectangle) Material() material.Material {
	return r.material
}

// Normal returns the face normal shared by both triangles
func (r *rectangle) Normal() core.Vec3 {
	return r.tri1.Normal()
}

// Area returns the surface area
func (r *rectangle) Area() float64 {
	return r.area
}

// SolidAnglePDF converts the uniform area density of the rectangle to a density
// over directions seen from origin: distance² / (|cos| * area). It is zero when the
// direction does not reach the rectangle.
func (r *rectangle) SolidAnglePDF(origin, direction core.Vec3) float64 {
	probe := core.NewRay(origin.Add(direction.Multiply(probeOffset)), direction)
	hit := r.Intersect(probe, math.Inf(1))
	if !hit.Valid {
		return 0
	}

	distanceSquared := hit.Point.Subtract(origin).LengthSquared()
	cosine := math.Abs(probe.Direction.Dot(r.Normal()))
	if cosine == 0 || r.area == 0 {
		return 0
	}
	return distanceSquared / (cosine * r.area)
}

// RectangleZ lies in the plane z = P1.Z, spanning P1.X..P2.X and P1.Y..P2.Y.
// Its front face points down the z axis.
type RectangleZ struct {
	rectangle
}

// NewRectangleZ creates a rectangle facing -z between the corners p1 and p2
func NewRectangleZ(p1, p2 core.Vec3, mat material.Material) *RectangleZ {
	a := core.NewVec3(p1.X, p2.Y, p1.Z)
	b := core.NewVec3(p2.X, p1.Y, p1.Z)
	c := core.NewVec3(p2.X, p2.Y, p1.Z)

	r := &RectangleZ{rectangle{
		P1:       p1,
		P2:       p2,
		tri1:     NewTriangle(p1, a, b, mat),
		tri2:     NewTriangle(b, a, c, mat),
		area:     math.Abs((p2.X - p1.X) * (p2.Y - p1.Y)),
		material: mat,
	}}
	r.self = r
	return r
}

// RandomPointOnSurface returns a uniformly distributed point on the rectangle
func (r *RectangleZ) RandomPointOnSurface(sampler core.Sampler) core.Vec3 {
	s := sampler.Get2D()
	return core.NewVec3(core.Lerp(r.P1.X, r.P2.X, s.X), core.Lerp(r.P1.Y, r.P2.Y, s.Y), r.P1.Z)
}

// RectangleX lies in the plane x = P1.X, spanning P1.Y..P2.Y and P1.Z..P2.Z.
// Its front face points up the x axis.
type RectangleX struct {
	rectangle
}

// NewRectangleX creates a rectangle facing +x between the corners p1 and p2
func NewRectangleX(p1, p2 core.Vec3, mat material.Material) *RectangleX {
	a := core.NewVec3(p1.X, p2.Y, p1.Z)
	b := core.NewVec3(p1.X, p1.Y, p2.Z)
	c := core.NewVec3(p1.X, p2.Y, p2.Z)

	r := &RectangleX{rectangle{
		P1:       p1,
		P2:       p2,
		tri1:     NewTriangle(p1, a, b, mat),
		tri2:     NewTriangle(b, a, c, mat),
		area:     math.Abs((p2.Z - p1.Z) * (p2.Y - p1.Y)),
		material: mat,
	}}
	r.self = r
	return r
}

// RandomPointOnSurface returns a uniformly distributed point on the rectangle
func (r *RectangleX) RandomPointOnSurface(sampler core.Sampler) core.Vec3 {
	s := sampler.Get2D()
	return core.NewVec3(r.P1.X, core.Lerp(r.P1.Y, r.P2.Y, s.X), core.Lerp(r.P1.Z, r.P2.Z, s.Y))
}
