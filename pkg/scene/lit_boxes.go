package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// NewLitBoxesScene creates a floor with a stack of boxes lit by a wall light
// facing +x and a ceiling light facing down
func NewLitBoxesScene() *Scene {
	s := New("lit-boxes")
	p := NewPalette()

	s.CameraConfig = geometry.CameraConfig{
		Eye:    core.NewVec3(3.5, 0, 1),
		LookAt: core.NewVec3(0, 0, 1),
		Fov:    45 * degrees,
	}

	s.AddRectangle(core.NewVec3(-10, -10, 0), core.NewVec3(-10, 10, 0), core.NewVec3(10, -10, 0), core.NewVec3(10, 10, 0), p.White)

	const x, y, z = -3.5, -1.5, 0.5
	const width, height = 3.0, 2.0
	front := geometry.NewRectangleX(core.NewVec3(x, y, z), core.NewVec3(x, y+width, z+height), p.Emissive)

	const top, half = 3.5, 0.7
	up := geometry.NewRectangleZ(core.NewVec3(-half, -half, top), core.NewVec3(half, half, top), p.Emissive)

	s.AddEmissive(up)
	s.AddEmissive(front)

	box := unitBox()
	placements := []geometry.Transform{
		{Position: core.NewVec3(0, -0.6, 0), Scale: core.NewVec3(0.8, 0.8, 0.8), RotZ: 0.4},
		{Position: core.NewVec3(0, 0.6, 0), Scale: core.NewVec3(0.6, 0.6, 1.4), RotZ: -0.2},
		{Position: core.NewVec3(-0.8, 0, 0), Scale: core.NewVec3(0.5, 1.6, 0.5), RotZ: 0.1},
	}
	for _, placement := range placements {
		s.mustAddMesh(box, p.Yellow, placement)
	}
	return s
}
