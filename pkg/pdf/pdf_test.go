package pdf

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// uniformSphere maps a 2D sample to a uniform direction on the unit sphere
func uniformSphere(s core.Vec2) core.Vec3 {
	z := 1 - 2*s.X
	r := math.Sqrt(math.Max(0, 1-z*z))
	phi := 2 * math.Pi * s.Y
	return core.NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
}

func TestCosine_IntegratesToOne(t *testing.T) {
	normals := []core.Vec3{
		core.NewVec3(0, 0, 1),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0.3, -0.5, 0.8).Normalize(),
	}

	for _, normal := range normals {
		cosine := NewCosine(normal)
		hit := material.SurfaceInteraction{Normal: normal}
		sampler := core.NewSeededSampler(1)

		const n = 200000
		sum := 0.0
		for i := 0; i < n; i++ {
			sum += cosine.Density(hit, uniformSphere(sampler.Get2D()))
		}
		if integral := sum / n * 4 * math.Pi; math.Abs(integral-1) > 0.015 {
			t.Errorf("Normal %v: expected integral 1, got %f", normal, integral)
		}
	}
}

func TestCosine_SamplesMatchDensity(t *testing.T) {
	normal := core.NewVec3(0, 1, 0)
	cosine := NewCosine(normal)
	hit := material.SurfaceInteraction{Normal: normal}
	sampler := core.NewSeededSampler(2)

	for i := 0; i < 1000; i++ {
		direction := cosine.Sample(sampler)
		if direction.Dot(normal) < 0 {
			t.Fatalf("Sampled direction %v below the surface", direction)
		}
		if math.Abs(direction.Length()-1) > 1e-9 {
			t.Fatalf("Sampled direction %v not normalized", direction)
		}
		expected := direction.Dot(normal) / math.Pi
		if got := cosine.Density(hit, direction); math.Abs(got-expected) > 1e-12 {
			t.Fatalf("Expected density %f, got %f", expected, got)
		}
	}
}

func TestMixture_HistogramMatchesHalfAndHalf(t *testing.T) {
	up := NewCosine(core.NewVec3(0, 0, 1))
	down := NewCosine(core.NewVec3(0, 0, -1))
	mixture := NewMixture(up, down)
	sampler := core.NewSeededSampler(3)

	// For a cosine density z² is uniform, so |z| in [a, b) has probability b² - a²
	const n = 200000
	const bins = 10
	var upward int
	var histogram [bins]int
	for i := 0; i < n; i++ {
		direction := mixture.Sample(sampler)
		if direction.Z > 0 {
			upward++
		}
		bin := int(math.Abs(direction.Z) * bins)
		if bin == bins {
			bin--
		}
		histogram[bin]++
	}

	if fraction := float64(upward) / n; math.Abs(fraction-0.5) > 0.01 {
		t.Errorf("Expected half of the samples upward, got %f", fraction)
	}
	for i, count := range histogram {
		a, b := float64(i)/bins, float64(i+1)/bins
		expected := b*b - a*a
		if got := float64(count) / n; math.Abs(got-expected) > 0.005 {
			t.Errorf("Bin %d: expected probability %f, got %f", i, expected, got)
		}
	}
}

func TestMixture_DensityIsMean(t *testing.T) {
	normal := core.NewVec3(0, 0, 1)
	light := geometry.NewRectangleZ(core.NewVec3(-1, -1, 2), core.NewVec3(1, 1, 2), nil)
	hit := material.SurfaceInteraction{Point: core.NewVec3(0, 0, 0), Normal: normal}

	cosine := NewCosine(normal)
	object := NewObject(light, hit.Point)
	mixture := NewMixture(object, cosine)

	direction := core.NewVec3(0, 0, 1)
	expected := 0.5*object.Density(hit, direction) + 0.5*cosine.Density(hit, direction)
	if got := mixture.Density(hit, direction); math.Abs(got-expected) > 1e-12 {
		t.Errorf("Expected %f, got %f", expected, got)
	}
	if math.Abs(object.Density(hit, direction)-1) > 1e-9 {
		t.Errorf("Expected object density 1 straight up, got %f", object.Density(hit, direction))
	}
}

func TestObjectList_AveragesTargets(t *testing.T) {
	origin := core.NewVec3(0, 0, 0)
	hit := material.SurfaceInteraction{Point: origin, Normal: core.NewVec3(0, 0, 1)}
	near := geometry.NewRectangleZ(core.NewVec3(-1, -1, 2), core.NewVec3(1, 1, 2), nil)
	far := geometry.NewRectangleZ(core.NewVec3(4, 4, 2), core.NewVec3(5, 5, 2), nil)
	list := NewObjectList([]Target{near, far}, origin)

	direction := core.NewVec3(0, 0, 1)
	expected := 0.5 * near.SolidAnglePDF(origin, direction)
	if got := list.Density(hit, direction); math.Abs(got-expected) > 1e-12 {
		t.Errorf("Expected %f, got %f", expected, got)
	}

	// Every sampled direction reaches one of the targets
	sampler := core.NewSeededSampler(4)
	counts := map[bool]int{}
	for i := 0; i < 2000; i++ {
		direction := list.Sample(sampler)
		nearDensity := near.SolidAnglePDF(origin, direction)
		farDensity := far.SolidAnglePDF(origin, direction)
		if nearDensity == 0 && farDensity == 0 {
			t.Fatalf("Sampled direction %v misses both targets", direction)
		}
		counts[nearDensity > 0]++
	}
	if math.Abs(float64(counts[true])/2000-0.5) > 0.05 {
		t.Errorf("Expected targets to be chosen uniformly, got %v", counts)
	}

	empty := NewObjectList(nil, origin)
	if empty.Density(hit, direction) != 0 || empty.Sample(sampler) != (core.Vec3{}) {
		t.Error("Expected an empty list to have zero density and sample nothing")
	}
}
