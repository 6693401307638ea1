package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/pkg/scene"
)

var logger = log.New("renderer")

// rowSeed derives the generator seed for row y by running (seed, y) through the
// splitmix64 finalizer, so nearby base seeds do not share row streams.
func rowSeed(seed int64, y int) int64 {
	z := uint64(seed) + (uint64(y)+1)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return int64(z ^ (z >> 31))
}

// Renderer turns a scene into a frame of radiance values. The scene must not be
// modified while a render is in progress.
type Renderer struct {
	scene      *scene.Scene
	camera     *geometry.Camera
	integrator integrator.Integrator
	config     Config
	workers    int
}

// New creates a renderer for s, building the scene's BVH if needed
func New(s *scene.Scene, config Config) (*Renderer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if s.BVH == nil {
		s.Build(core.NewSeededSampler(config.Seed))
	}

	return &Renderer{
		scene:      s,
		camera:     geometry.NewCamera(s.CameraConfig, config.Width, config.Height),
		integrator: newIntegrator(s, config),
		config:     config,
		workers:    resolveWorkers(config.Workers),
	}, nil
}

func newIntegrator(s *scene.Scene, config Config) integrator.Integrator {
	if config.Mode == ModeDirect {
		return integrator.NewDirectLightingIntegrator(s)
	}
	return integrator.NewPathTracingIntegrator(s, config.MaxDepth)
}

// Config returns the render settings
func (r *Renderer) Config() Config {
	return r.config
}

// Workers returns the resolved number of parallel workers
func (r *Renderer) Workers() int {
	return r.workers
}

// Camera returns the camera generating primary rays
func (r *Renderer) Camera() *geometry.Camera {
	return r.camera
}

// Scene returns the scene being rendered
func (r *Renderer) Scene() *scene.Scene {
	return r.scene
}

// PixelColor averages SamplesPerPixel jittered camera rays through pixel (x, y)
func (r *Renderer) PixelColor(x, y int, sampler core.Sampler) core.Vec3 {
	var ps PixelStats
	for sample := 0; sample < r.config.SamplesPerPixel; sample++ {
		px := float64(x) + sampler.Get1D()
		py := float64(y) + sampler.Get1D()
		ray := r.camera.GetRay(px, py, sampler)
		ps.AddSample(r.integrator.RayColor(ray, sampler))
	}
	return ps.GetColor()
}

// RenderRow fills row with the colors of pixel row y. row must hold Width values.
func (r *Renderer) RenderRow(y int, sampler core.Sampler, row []core.Vec3) {
	for x := range row {
		row[x] = r.PixelColor(x, y, sampler)
	}
}

// Render renders a complete frame. When ctx is cancelled the rows already in
// flight are finished and published, and the partial frame is returned with ctx's error.
func (r *Renderer) Render(ctx context.Context) (*Frame, RenderStats, error) {
	frame := NewFrame(r.config.Width, r.config.Height)
	stats, err := r.RenderInto(ctx, frame)
	return frame, stats, err
}

// RenderInto renders every row of frame from the bottom up
func (r *Renderer) RenderInto(ctx context.Context, frame *Frame) (RenderStats, error) {
	if frame.Width != r.config.Width || frame.Height != r.config.Height {
		return RenderStats{}, fmt.Errorf("%w: frame is %dx%d, renderer is %dx%d",
			ErrInvalidConfig, frame.Width, frame.Height, r.config.Width, r.config.Height)
	}

	start := time.Now()
	pool := NewWorkerPool(r, r.workers)
	pool.Start()

	go func() {
		defer pool.Stop()
		for y := 0; y < r.config.Height; y++ {
			select {
			case <-ctx.Done():
				return
			default:
			}
			pool.SubmitTask(RowTask{Y: y, Seed: rowSeed(r.config.Seed, y)})
		}
	}()

	stats := RenderStats{Workers: pool.GetNumWorkers()}
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		frame.SetRow(result.Y, result.Pixels)
		stats.add(result)
	}
	stats.Elapsed = time.Since(start)

	if err := ctx.Err(); err != nil && stats.RowsCompleted < r.config.Height {
		logger.Noticef("render of %q cancelled after %d of %d rows", r.scene.Name, stats.RowsCompleted, r.config.Height)
		return stats, err
	}

	logger.Infof("rendered %q at %dx%d with %d spp in %v using %d workers",
		r.scene.Name, r.config.Width, r.config.Height, r.config.SamplesPerPixel, stats.Elapsed, stats.Workers)
	return stats, nil
}
