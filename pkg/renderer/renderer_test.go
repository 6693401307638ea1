package renderer

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// smallConfig returns a quick configuration for test renders
func smallConfig(workers int) Config {
	config := DefaultConfig()
	config.Width = 12
	config.Height = 10
	config.SamplesPerPixel = 2
	config.MaxDepth = 3
	config.Workers = workers
	return config
}

func createCornellScene(t *testing.T) *scene.Scene {
	t.Helper()
	s, err := scene.Create("cornell-box")
	if err != nil {
		t.Fatalf("Failed to create scene: %v", err)
	}
	return s
}

func TestNew_InvalidConfig(t *testing.T) {
	config := smallConfig(1)
	config.SamplesPerPixel = 0

	_, err := New(scene.New("empty"), config)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestNew_BuildsBVH(t *testing.T) {
	s := createCornellScene(t)
	if s.BVH != nil {
		t.Fatal("Expected a fresh scene without a BVH")
	}

	r, err := New(s, smallConfig(1))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if s.BVH == nil || s.BVH.Root == nil {
		t.Error("Expected New to build the BVH")
	}
	if r.Workers() != 1 {
		t.Errorf("Expected 1 worker, got %d", r.Workers())
	}
}

// TestRender_UniformBackground tests that an empty scene renders the background in every mode
func TestRender_UniformBackground(t *testing.T) {
	background := core.Splat(0.25)

	for _, mode := range []Mode{ModePathTrace, ModeDirect} {
		s := scene.New("empty")
		s.Background = [2]core.Vec3{background, background}

		config := smallConfig(2)
		config.Mode = mode
		r, err := New(s, config)
		if err != nil {
			t.Fatalf("%s: New failed: %v", mode, err)
		}

		frame, stats, err := r.Render(context.Background())
		if err != nil {
			t.Fatalf("%s: Render failed: %v", mode, err)
		}
		for y := 0; y < config.Height; y++ {
			for x := 0; x < config.Width; x++ {
				if got := frame.Pixel(x, y); got != background {
					t.Fatalf("%s: pixel (%d, %d): expected %v, got %v", mode, x, y, background, got)
				}
			}
		}

		if stats.RowsCompleted != config.Height {
			t.Errorf("%s: expected %d rows, got %d", mode, config.Height, stats.RowsCompleted)
		}
		if stats.TotalSamples != config.Width*config.Height*config.SamplesPerPixel {
			t.Errorf("%s: unexpected sample count %d", mode, stats.TotalSamples)
		}
	}
}

// TestRender_IndependentOfWorkerCount tests that rows are reproducible however they are scheduled
func TestRender_IndependentOfWorkerCount(t *testing.T) {
	s := createCornellScene(t)
	s.Build(core.NewSeededSampler(1))

	var frames []*Frame
	for _, workers := range []int{1, 4} {
		r, err := New(s, smallConfig(workers))
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		frame, _, err := r.Render(context.Background())
		if err != nil {
			t.Fatalf("Render with %d workers failed: %v", workers, err)
		}
		frames = append(frames, frame)
	}

	nonBlack := 0
	for y := 0; y < frames[0].Height; y++ {
		for x := 0; x < frames[0].Width; x++ {
			a, b := frames[0].Pixel(x, y), frames[1].Pixel(x, y)
			if a != b {
				t.Fatalf("Pixel (%d, %d) differs between worker counts: %v vs %v", x, y, a, b)
			}
			if a != (core.Vec3{}) {
				nonBlack++
			}
		}
	}
	if nonBlack == 0 {
		t.Error("Expected the Cornell box to receive some light")
	}
}

func TestRender_DifferentSeedsDiffer(t *testing.T) {
	s := createCornellScene(t)
	s.Build(core.NewSeededSampler(1))

	render := func(seed int64) *Frame {
		config := smallConfig(2)
		config.Seed = seed
		r, err := New(s, config)
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		frame, _, err := r.Render(context.Background())
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		return frame
	}

	a, b := render(1), render(2)
	for y := 0; y < a.Height; y++ {
		for x := 0; x < a.Width; x++ {
			if a.Pixel(x, y) != b.Pixel(x, y) {
				return
			}
		}
	}
	t.Error("Expected different seeds to produce different noise")
}

func TestRowSeed(t *testing.T) {
	if rowSeed(42, 3) != rowSeed(42, 3) {
		t.Fatal("Expected rowSeed to be deterministic")
	}

	seen := make(map[int64]string)
	for _, base := range []int64{0, 1, 42, 43, 42 + 7919, -1} {
		for y := 0; y < 500; y++ {
			seed := rowSeed(base, y)
			key := fmt.Sprintf("seed %d row %d", base, y)
			if other, ok := seen[seed]; ok {
				t.Fatalf("%s repeats the stream of %s", key, other)
			}
			seen[seed] = key
		}
	}
}

func TestRender_CancelledBeforeStart(t *testing.T) {
	r, err := New(createCornellScene(t), smallConfig(2))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	frame, stats, err := r.Render(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if stats.RowsCompleted != 0 || frame.RowsDone() != 0 {
		t.Errorf("Expected no rows, got %d in stats and %d in frame", stats.RowsCompleted, frame.RowsDone())
	}
}

func TestRenderInto_SizeMismatch(t *testing.T) {
	r, err := New(scene.New("empty"), smallConfig(1))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	_, err = r.RenderInto(context.Background(), NewFrame(3, 3))
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestRenderRow_DirectModeIsDeterministic(t *testing.T) {
	config := smallConfig(1)
	config.Mode = ModeDirect
	config.SamplesPerPixel = 1
	r, err := New(createCornellScene(t), config)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	y := config.Height / 2
	first := make([]core.Vec3, config.Width)
	second := make([]core.Vec3, config.Width)
	r.RenderRow(y, core.NewSeededSampler(5), first)
	r.RenderRow(y, core.NewSeededSampler(5), second)
	for x := range first {
		if first[x] != second[x] {
			t.Errorf("Pixel %d: expected identical rows for identical samplers, got %v and %v", x, first[x], second[x])
		}
	}
}
