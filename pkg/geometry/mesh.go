package geometry

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Mesh is an indexed triangle model that can be placed into a scene any number
// of times with different transforms
type Mesh struct {
	Vertices    []core.Vec3
	Normals     []core.Vec3 // Optional; when present NormalFaces indexes into it
	Faces       [][3]int
	NormalFaces [][3]int
}

// AddRectangle appends the quad p1, p2, p4, p3 as the triangles (p1, p3, p2) and (p4, p2, p3)
func (m *Mesh) AddRectangle(p1, p2, p3, p4 core.Vec3) {
	base := len(m.Vertices)
	m.Vertices = append(m.Vertices, p1, p3, p2, p4, p2, p3)
	m.Faces = append(m.Faces, [3]int{base, base + 1, base + 2}, [3]int{base + 3, base + 4, base + 5})
}

// NewBox returns a closed box mesh with corner origin and the given extent.
// Every face's normal points out of the box.
func NewBox(origin, size core.Vec3) *Mesh {
	p := origin
	dx := core.NewVec3(size.X, 0, 0)
	dy := core.NewVec3(0, size.Y, 0)
	dz := core.NewVec3(0, 0, size.Z)
	far := p.Add(size)

	m := &Mesh{}
	m.AddRectangle(p, p.Add(dy), p.Add(dz), p.Add(dy).Add(dz))
	m.AddRectangle(p, p.Add(dz), p.Add(dx), p.Add(dx).Add(dz))
	m.AddRectangle(p, p.Add(dx), p.Add(dy), p.Add(dx).Add(dy))
	m.AddRectangle(p.Add(dy), p.Add(dx).Add(dy), p.Add(dy).Add(dz), far)
	m.AddRectangle(p.Add(dx), p.Add(dx).Add(dz), p.Add(dx).Add(dy), far)
	m.AddRectangle(p.Add(dz), p.Add(dy).Add(dz), p.Add(dx).Add(dz), far)
	return m
}

// Transform places a mesh in the world
type Transform struct {
	Position         core.Vec3
	Scale            core.Vec3
	RotX, RotY, RotZ float64 // Radians
}

// Identity returns the transform that leaves a mesh where it is
func Identity() Transform {
	return Transform{Scale: core.Splat(1)}
}

// Matrix returns scale · rotX · rotY · rotZ · translate(position / scale).
// Dividing by the scale makes an unrotated mesh land at Position.
func (t Transform) Matrix() mgl64.Mat4 {
	return mgl64.Scale3D(t.Scale.X, t.Scale.Y, t.Scale.Z).
		Mul4(mgl64.HomogRotate3DX(t.RotX)).
		Mul4(mgl64.HomogRotate3DY(t.RotY)).
		Mul4(mgl64.HomogRotate3DZ(t.RotZ)).
		Mul4(mgl64.Translate3D(t.Position.X/t.Scale.X, t.Position.Y/t.Scale.Y, t.Position.Z/t.Scale.Z))
}

// Triangles instantiates the mesh with transform applied. Vertex normals, if any,
// are carried by the inverse transpose of the model matrix.
func (m *Mesh) Triangles(mat material.Material, transform Transform) ([]Object, error) {
	model := transform.Matrix()
	normalMatrix := model.Inv().Transpose()
	smooth := len(m.Normals) > 0

	if smooth && len(m.NormalFaces) != len(m.Faces) {
		return nil, fmt.Errorf("mesh has %d faces but %d normal faces", len(m.Faces), len(m.NormalFaces))
	}

	objects := make([]Object, 0, len(m.Faces))
	for i, face := range m.Faces {
		var p [3]core.Vec3
		for k, index := range face {
			if index < 0 || index >= len(m.Vertices) {
				return nil, fmt.Errorf("face %d: vertex index %d out of range", i, index)
			}
			p[k] = core.FromMgl(model.Mul4x1(m.Vertices[index].Mgl(1)))
		}

		if !smooth {
			objects = append(objects, NewTriangle(p[0], p[1], p[2], mat))
			continue
		}

		var n [3]core.Vec3
		for k, index := range m.NormalFaces[i] {
			if index < 0 || index >= len(m.Normals) {
				return nil, fmt.Errorf("face %d: normal index %d out of range", i, index)
			}
			n[k] = core.FromMgl(normalMatrix.Mul4x1(m.Normals[index].Mgl(0))).Normalize()
		}
		objects = append(objects, NewSmoothTriangle(p[0], p[1], p[2], n[0], n[1], n[2], mat))
	}
	return objects, nil
}
