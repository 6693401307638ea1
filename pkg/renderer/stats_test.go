package renderer

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestCalculateAverageLuminance(t *testing.T) {
	// Create a 2x2 image
	// Top-left: Red (1, 0, 0) -> Lum = 0.299
	// Top-right: Green (0, 1, 0) -> Lum = 0.587
	// Bottom-left: Blue (0, 0, 1) -> Lum = 0.114
	// Bottom-right: Black (0, 0, 0) -> Lum = 0.0

	// Expected average: (0.299 + 0.587 + 0.114 + 0.0) / 4 = 1.0 / 4 = 0.25

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{0, 255, 0, 255})
	img.Set(0, 1, color.RGBA{0, 0, 255, 255})
	img.Set(1, 1, color.RGBA{0, 0, 0, 255})

	avgLum := CalculateAverageLuminance(img)
	expected := 0.25
	tolerance := 0.0001

	if avgLum < expected-tolerance || avgLum > expected+tolerance {
		t.Errorf("Expected average luminosity %f, got %f", expected, avgLum)
	}
}

func TestCalculateAverageLuminance_White(t *testing.T) {
	// 1x1 White pixel -> Lum = 1.0
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{255, 255, 255, 255})

	avgLum := CalculateAverageLuminance(img)
	expected := 1.0
	tolerance := 0.0001

	if avgLum < expected-tolerance || avgLum > expected+tolerance {
		t.Errorf("Expected average luminosity %f, got %f", expected, avgLum)
	}
}

func TestPixelStats(t *testing.T) {
	var ps PixelStats
	if got := ps.GetColor(); got != (core.Vec3{}) {
		t.Errorf("Expected black for an unsampled pixel, got %v", got)
	}

	ps.AddSample(core.NewVec3(1, 0, 0))
	ps.AddSample(core.NewVec3(0, 1, 0))
	ps.AddSample(core.NewVec3(0, 0, 1))
	ps.AddSample(core.NewVec3(1, 1, 1))

	got := ps.GetColor()
	if math.Abs(got.X-0.5) > 1e-12 || math.Abs(got.Y-0.5) > 1e-12 || math.Abs(got.Z-0.5) > 1e-12 {
		t.Errorf("Expected mean (0.5, 0.5, 0.5), got %v", got)
	}
	if ps.SampleCount != 4 {
		t.Errorf("Expected 4 samples, got %d", ps.SampleCount)
	}
}

func TestRenderStats_AverageSamples(t *testing.T) {
	var stats RenderStats
	if stats.AverageSamples() != 0 {
		t.Errorf("Expected 0 for empty stats, got %f", stats.AverageSamples())
	}

	stats.add(RowResult{Y: 0, Pixels: make([]core.Vec3, 10), Samples: 40})
	stats.add(RowResult{Y: 1, Pixels: make([]core.Vec3, 10), Samples: 40})
	if stats.RowsCompleted != 2 || stats.TotalPixels != 20 || stats.TotalSamples != 80 {
		t.Errorf("Unexpected totals %+v", stats)
	}
	if stats.AverageSamples() != 4 {
		t.Errorf("Expected 4 samples per pixel, got %f", stats.AverageSamples())
	}
}
