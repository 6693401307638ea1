package material

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestTransparent_ReflectsAndRefracts(t *testing.T) {
	glass := NewTransparent(1.5)

	ray := core.NewRay(core.NewVec3(-1, 0, 1), core.NewVec3(1, 0, -1))
	hit := SurfaceInteraction{Point: core.NewVec3(0, 0, 0)}
	hit.SetFaceNormal(ray, core.NewVec3(0, 0, 1))

	sampler := core.NewSeededSampler(42)
	reflections, refractions := 0, 0
	for i := 0; i < 2000; i++ {
		result := glass.Scatter(ray, hit, sampler)
		if result.Attenuation != core.NewVec3(1, 1, 1) {
			t.Fatalf("Expected white attenuation, got %v", result.Attenuation)
		}
		if math.Abs(result.Scattered.Direction.Length()-1) > 1e-9 {
			t.Fatalf("Scattered direction not normalized: %v", result.Scattered.Direction)
		}

		if result.Scattered.Direction.Z > 0 {
			reflections++
			if result.Scattered.Origin.Z <= 0 {
				t.Fatalf("Reflected origin should be above the surface: %v", result.Scattered.Origin)
			}
		} else {
			refractions++
			if result.Scattered.Origin.Z >= 0 {
				t.Fatalf("Refracted origin should be below the surface: %v", result.Scattered.Origin)
			}
		}
	}

	// Schlick reflectance at 45 degrees from air into glass is about 5%
	fraction := float64(reflections) / 2000
	expected := Reflectance(math.Cos(math.Pi/4), 1/1.5)
	if math.Abs(fraction-expected) > 0.02 {
		t.Errorf("Expected reflection fraction near %f, got %f", expected, fraction)
	}
	if refractions == 0 {
		t.Error("Expected refraction to occur")
	}
}

func TestTransparent_TotalInternalReflection(t *testing.T) {
	glass := NewTransparent(1.5)

	// Leaving the glass at a steep angle beyond the critical angle (about 41.8 degrees)
	ray := core.NewRay(core.NewVec3(-1, 0, -0.2), core.NewVec3(1, 0, 0.2))
	hit := SurfaceInteraction{Point: core.NewVec3(0, 0, 0)}
	hit.SetFaceNormal(ray, core.NewVec3(0, 0, 1))
	if hit.FrontFace {
		t.Fatal("Expected the ray to hit the back face")
	}

	sampler := core.NewSeededSampler(3)
	for i := 0; i < 200; i++ {
		result := glass.Scatter(ray, hit, sampler)
		if result.Scattered.Direction.Z >= 0 {
			t.Fatalf("Expected total internal reflection, got direction %v", result.Scattered.Direction)
		}
	}
}

func TestReflectance(t *testing.T) {
	// At normal incidence Schlick reduces to r0
	r0 := math.Pow((1-1/1.5)/(1+1/1.5), 2)
	if got := Reflectance(1, 1/1.5); math.Abs(got-r0) > 1e-12 {
		t.Errorf("Expected %f, got %f", r0, got)
	}
	if got := Reflectance(0, 1/1.5); math.Abs(got-1) > 1e-12 {
		t.Errorf("Expected full reflectance at grazing angle, got %f", got)
	}
}
