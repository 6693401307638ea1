package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// NewDirectLightsScene creates an open scene lit by two distant point lights
// under a blue gradient sky. It has no emissive geometry.
func NewDirectLightsScene() *Scene {
	s := New("direct-lights")
	p := NewPalette()

	s.CameraConfig = geometry.CameraConfig{
		Eye:    core.NewVec3(0, 13, 3.6),
		LookAt: core.NewVec3(0, 0, 0),
		Fov:    45 * degrees,
	}
	s.Background = [2]core.Vec3{core.NewVec3(0.3, 0.3, 0.5), core.NewVec3(0.05, 0.05, 0.2)}

	// Ground
	s.AddCube(core.NewVec3(-8, -7, -5), core.NewVec3(16, 15, 4.5), p.Pink)

	s.Add(
		geometry.NewSphere(core.NewVec3(0, 0, 0), 0.5, p.White),
		geometry.NewSphere(core.NewVec3(0, 0, 2), 0.5, p.Blue),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 0.5, p.Green),
		geometry.NewSphere(core.NewVec3(2, 0, 0), 0.5, p.Red),
		geometry.NewSphere(core.NewVec3(-2, 2, 0), 0.5, p.Transparent),
		geometry.NewSphere(core.NewVec3(-1, 1, 0), 0.5, p.PinkMirror),
		geometry.NewSphere(core.NewVec3(-1, 0, 0), 0.5, p.Mirror),
		geometry.NewSphere(core.NewVec3(-1, -1, 0), 0.5, p.Mirror),
	)

	for i := -2; i < 2; i++ {
		y := float64(i * 3)
		s.AddCube(core.NewVec3(-4, y, -1), core.NewVec3(1, 2, 5), p.Dark)
		s.AddCube(core.NewVec3(3, y, -1), core.NewVec3(1, 2, 5), p.Mirror)
	}

	power := core.Splat(10000)
	s.AddLight(core.NewVec3(30, 0.0001, 30), power)
	s.AddLight(core.NewVec3(-30, 0.0001, 30), power)
	return s
}
