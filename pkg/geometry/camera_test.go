package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestCamera_CenterRayLooksAtTarget(t *testing.T) {
	camera := NewCamera(CameraConfig{
		Eye:    core.NewVec3(3.4, 0, 1),
		LookAt: core.NewVec3(0, 0, 1),
		Fov:    45 * math.Pi / 180,
	}, 200, 100)

	ray := camera.GetRay(100, 50, core.NewSeededSampler(1))
	expected := core.NewVec3(-1, 0, 0)
	if ray.Direction.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected center direction %v, got %v", expected, ray.Direction)
	}
	if ray.Origin != core.NewVec3(3.4, 0, 1) {
		t.Errorf("Expected origin at the eye, got %v", ray.Origin)
	}
}

func TestCamera_Orientation(t *testing.T) {
	fov := math.Pi / 2
	camera := NewCamera(CameraConfig{
		Eye:    core.NewVec3(1, 0, 0),
		LookAt: core.NewVec3(0, 0, 0),
		Fov:    fov,
	}, 100, 100)
	sampler := core.NewSeededSampler(1)

	// Top of the image points up the z axis at half the field of view
	top := camera.GetRay(50, 100, sampler)
	if math.Abs(math.Atan2(top.Direction.Z, -top.Direction.X)-fov/2) > 1e-12 {
		t.Errorf("Expected top ray at fov/2 above the axis, got %v", top.Direction)
	}

	// Right edge of the image is +y when looking down -x with z up
	right := camera.GetRay(100, 50, sampler)
	if right.Direction.Y <= 0 || math.Abs(right.Direction.Z) > 1e-12 {
		t.Errorf("Expected right ray toward +y, got %v", right.Direction)
	}
}

func TestCamera_LookingAlongZ(t *testing.T) {
	tests := []struct {
		name string
		eye  core.Vec3
	}{
		{"down", core.NewVec3(0, 0, 5)},
		{"up", core.NewVec3(0, 0, -5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			camera := NewCamera(CameraConfig{Eye: tt.eye, LookAt: core.Vec3{}, Fov: math.Pi / 3}, 40, 30)
			sampler := core.NewSeededSampler(1)

			center := camera.GetRay(20, 15, sampler)
			expected := tt.eye.Negate().Normalize()
			if center.Direction.Subtract(expected).Length() > 1e-12 {
				t.Errorf("Expected center direction %v, got %v", expected, center.Direction)
			}

			corners := [][2]float64{{0, 0}, {40, 0}, {0, 30}, {40, 30}}
			seen := make(map[core.Vec3]bool)
			for _, corner := range corners {
				d := camera.GetRay(corner[0], corner[1], sampler).Direction
				if math.IsNaN(d.X) || math.IsNaN(d.Y) || math.IsNaN(d.Z) {
					t.Fatalf("Corner %v: got NaN direction", corner)
				}
				if math.Abs(d.Length()-1) > 1e-12 {
					t.Errorf("Corner %v: expected unit direction, got length %f", corner, d.Length())
				}
				seen[d] = true
			}
			if len(seen) != len(corners) {
				t.Errorf("Expected %d distinct corner directions, got %d", len(corners), len(seen))
			}
		})
	}
}

func TestCamera_ApertureJittersOrigin(t *testing.T) {
	config := CameraConfig{
		Eye:      core.NewVec3(0, -5, 0),
		LookAt:   core.NewVec3(0, 0, 0),
		Fov:      math.Pi / 4,
		Aperture: 0.5,
	}
	camera := NewCamera(config, 64, 64)
	sampler := core.NewSeededSampler(9)

	moved := false
	for i := 0; i < 100; i++ {
		ray := camera.GetRay(32, 32, sampler)
		offset := ray.Origin.Subtract(config.Eye)
		if offset.Length() > 0.25+1e-12 {
			t.Fatalf("Lens offset %v larger than the lens radius", offset)
		}
		if offset.Length() > 0 {
			moved = true
		}

		// Every lens sample still focuses on the look-at point
		toFocus := config.LookAt.Subtract(ray.Origin).Normalize()
		if ray.Direction.Subtract(toFocus).Length() > 1e-9 {
			t.Fatalf("Ray %v does not pass through the focus point", ray)
		}
	}
	if !moved {
		t.Error("Expected lens sampling to move the ray origin")
	}
}
