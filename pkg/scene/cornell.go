package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// addCornellSides adds the walls, the ceiling light and the camera shared by all Cornell variants.
// The box spans [-1, 1] in x and y and [0, 2] in z; the camera looks in from +x.
func addCornellSides(s *Scene, p Palette) {
	s.CameraConfig = geometry.CameraConfig{
		Eye:    core.NewVec3(3.4, 0, 1),
		LookAt: core.NewVec3(0, 0, 1),
		Fov:    45 * degrees,
	}
	s.Background = [2]core.Vec3{{}, {}}

	const size = 1.0
	// Floor, back wall and ceiling
	s.AddRectangle(core.NewVec3(-size, -size, 0), core.NewVec3(-size, size, 0), core.NewVec3(size, -size, 0), core.NewVec3(size, size, 0), p.White)
	s.AddRectangle(core.NewVec3(-size, -size, 0), core.NewVec3(-size, size, 0), core.NewVec3(-size, -size, 2*size), core.NewVec3(-size, size, 2*size), p.White)
	s.AddRectangle(core.NewVec3(-size, -size, 2*size), core.NewVec3(-size, size, 2*size), core.NewVec3(size, -size, 2*size), core.NewVec3(size, size, 2*size), p.White)
	// Side walls
	s.AddRectangle(core.NewVec3(-size, -size, 0), core.NewVec3(size, -size, 0), core.NewVec3(-size, -size, 2*size), core.NewVec3(size, -size, 2*size), p.Red)
	s.AddRectangle(core.NewVec3(-size, size, 0), core.NewVec3(size, size, 0), core.NewVec3(-size, size, 2*size), core.NewVec3(size, size, 2*size), p.Green)

	// Ceiling light, just below the ceiling and facing down
	const half = 0.2
	lightZ := 2*size - 0.01
	s.AddEmissive(geometry.NewRectangleZ(core.NewVec3(-half, -half, lightZ), core.NewVec3(half, half, lightZ), p.Emissive))
}

// unitBox is a unit cube standing on the z=0 plane, centered on the z axis
func unitBox() *geometry.Mesh {
	return geometry.NewBox(core.NewVec3(-0.5, -0.5, 0), core.NewVec3(1, 1, 1))
}

// NewCornellScene creates the Cornell box with a tall and a short white box
func NewCornellScene() *Scene {
	s := New("cornell-box")
	p := NewPalette()
	addCornellSides(s, p)

	box := unitBox()
	s.mustAddMesh(box, p.White, geometry.Transform{
		Position: core.NewVec3(-0.3, -0.3, 0),
		Scale:    core.NewVec3(0.6, 0.6, 1.1),
		RotZ:     0.3,
	})
	s.mustAddMesh(box, p.White, geometry.Transform{
		Position: core.NewVec3(0.25, 0.42, 0),
		Scale:    core.Splat(0.6),
		RotZ:     -0.3,
	})
	return s
}

// NewCornellMirrorScene creates the Cornell box with a tall mirror box and a glass sphere
func NewCornellMirrorScene() *Scene {
	s := New("cornell-mirror")
	p := NewPalette()
	addCornellSides(s, p)

	s.mustAddMesh(unitBox(), p.Mirror, geometry.Transform{
		Position: core.NewVec3(-0.3, -0.3, 0),
		Scale:    core.NewVec3(0.6, 0.6, 1.1),
		RotZ:     0.3,
	})
	s.Add(geometry.NewSphere(core.NewVec3(0.3, 0.3, 0.3), 0.3, p.Transparent))
	return s
}

// NewCornellEmptyScene creates the Cornell box with nothing inside
func NewCornellEmptyScene() *Scene {
	s := New("cornell-empty")
	addCornellSides(s, NewPalette())
	return s
}
