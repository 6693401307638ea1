package material

import (
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestMirror_PerfectReflection(t *testing.T) {
	albedo := core.NewVec3(0.7, 0.7, 0.7)
	mirror := NewMirror(albedo, 0)

	ray := core.NewRay(core.NewVec3(-1, 0, 1), core.NewVec3(1, 0, -1))
	hit := SurfaceInteraction{Point: core.NewVec3(0, 0, 0)}
	hit.SetFaceNormal(ray, core.NewVec3(0, 0, 1))

	result := mirror.Scatter(ray, hit, core.NewSeededSampler(1))
	if !result.Usable() {
		t.Fatal("Perfect reflection should be usable")
	}

	expected := core.NewVec3(1, 0, 1).Normalize()
	if result.Scattered.Direction.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected direction %v, got %v", expected, result.Scattered.Direction)
	}
	if result.Attenuation != albedo {
		t.Errorf("Expected attenuation %v, got %v", albedo, result.Attenuation)
	}
	if result.Scattered.Origin.Z <= 0 {
		t.Errorf("Reflected ray should start above the surface, got %v", result.Scattered.Origin)
	}
	if mirror.HasDensity() || mirror.IsDiffuse() {
		t.Error("Mirror should not declare a density")
	}
}

func TestMirror_FuzzBelowSurfaceIsUnusable(t *testing.T) {
	mirror := NewMirror(core.NewVec3(1, 1, 1), 1.0)

	// Nearly grazing incidence: large fuzz pushes many reflections below the surface
	ray := core.NewRay(core.NewVec3(-1, 0, 0.01), core.NewVec3(1, 0, -0.01))
	hit := SurfaceInteraction{Point: core.NewVec3(0, 0, 0)}
	hit.SetFaceNormal(ray, core.NewVec3(0, 0, 1))

	sampler := core.NewSeededSampler(7)
	usable, unusable := 0, 0
	for i := 0; i < 1000; i++ {
		result := mirror.Scatter(ray, hit, sampler)
		if result.Usable() {
			usable++
			if result.Scattered.Direction.Dot(hit.Normal) < 0 {
				t.Fatalf("Usable result points into the surface: %v", result.Scattered.Direction)
			}
		} else {
			unusable++
			if result.Attenuation.X >= 0 {
				t.Fatalf("Unusable result without negative sentinel: %v", result.Attenuation)
			}
		}
	}

	if usable == 0 || unusable == 0 {
		t.Errorf("Expected both outcomes, got %d usable and %d unusable", usable, unusable)
	}
}
