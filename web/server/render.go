package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// ErrNoRender is returned by endpoints that need a render when none was started
var ErrNoRender = errors.New("no render has been started")

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene           string `json:"scene"`           // Scene id (e.g., "cornell-box")
	Width           int    `json:"width"`           // Image width
	Height          int    `json:"height"`          // Image height
	SamplesPerPixel int    `json:"samplesPerPixel"` // Rays per pixel
	MaxDepth        int    `json:"maxDepth"`        // Maximum bounce depth
	Mode            string `json:"mode"`            // "path" or "direct"
	Seed            int64  `json:"seed"`
}

// defaultRenderRequest mirrors renderer.DefaultConfig for the preview
func defaultRenderRequest() RenderRequest {
	config := renderer.DefaultConfig()
	return RenderRequest{
		Scene:           "cornell-box",
		Width:           config.Width,
		Height:          config.Height,
		SamplesPerPixel: config.SamplesPerPixel,
		MaxDepth:        config.MaxDepth,
		Mode:            string(config.Mode),
		Seed:            config.Seed,
	}
}

// Config validates the request limits and converts it into a render config
func (req RenderRequest) Config() (renderer.Config, error) {
	if err := checkRange("width", req.Width, 16, 2000); err != nil {
		return renderer.Config{}, err
	}
	if err := checkRange("height", req.Height, 16, 2000); err != nil {
		return renderer.Config{}, err
	}
	if err := checkRange("samplesPerPixel", req.SamplesPerPixel, 1, 10000); err != nil {
		return renderer.Config{}, err
	}
	if err := checkRange("maxDepth", req.MaxDepth, 1, 50); err != nil {
		return renderer.Config{}, err
	}

	mode, err := renderer.ParseMode(req.Mode)
	if err != nil {
		return renderer.Config{}, err
	}

	config := renderer.DefaultConfig()
	config.Width = req.Width
	config.Height = req.Height
	config.SamplesPerPixel = req.SamplesPerPixel
	config.MaxDepth = req.MaxDepth
	config.Mode = mode
	config.Seed = req.Seed
	return config, config.Validate()
}

// checkRange validates an integer parameter against its limits
func checkRange(key string, value, min, max int) error {
	if value < min || value > max {
		return fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, value)
	}
	return nil
}

// StatusResponse describes the current render
type StatusResponse struct {
	Request  RenderRequest     `json:"request"`
	Progress renderer.Progress `json:"progress"`
	Stats    Stats             `json:"stats"`
}

// Stats represents render statistics
type Stats struct {
	TotalPixels    int     `json:"totalPixels"`
	TotalSamples   int     `json:"totalSamples"`
	AverageSamples float64 `json:"averageSamples"`
	Workers        int     `json:"workers"`
	ElapsedMs      int64   `json:"elapsedMs"`
}

func statusOf(loop *renderer.Loop, req RenderRequest) StatusResponse {
	stats := loop.Stats()
	return StatusResponse{
		Request:  req,
		Progress: loop.Progress(),
		Stats: Stats{
			TotalPixels:    stats.TotalPixels,
			TotalSamples:   stats.TotalSamples,
			AverageSamples: stats.AverageSamples(),
			Workers:        stats.Workers,
			ElapsedMs:      stats.Elapsed.Milliseconds(),
		},
	}
}

// handleStart replaces the current render with a new one built from the request body
func (s *Server) handleStart(c echo.Context) error {
	req := defaultRenderRequest()
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, fmt.Errorf("invalid request: %w", err))
	}

	config, err := req.Config()
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err)
	}

	sc, err := scene.Create(req.Scene)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err)
	}

	r, err := renderer.New(sc, config)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err)
	}

	loop := renderer.NewLoop(r)
	if err := loop.Start(context.Background()); err != nil {
		return jsonError(c, http.StatusConflict, err)
	}

	// Stopping waits for the old loop's rows in flight, so it happens outside the lock
	if previous, previousReq := s.replaceLoop(loop, req); previous != nil && previous.Running() {
		previous.Stop()
		s.console.Infof("stopped render of %q", previousReq.Scene)
	}

	s.console.Infof("started render of %q at %dx%d, %d spp, %s mode, %d workers",
		req.Scene, config.Width, config.Height, config.SamplesPerPixel, config.Mode, r.Workers())
	go s.reportCompletion(loop, req)

	return c.JSON(http.StatusAccepted, statusOf(loop, req))
}

// reportCompletion logs the outcome of a loop once it ends
func (s *Server) reportCompletion(loop *renderer.Loop, req RenderRequest) {
	err := loop.Wait()
	switch {
	case errors.Is(err, context.Canceled):
		return
	case err != nil:
		s.console.Errorf("render of %q failed: %v", req.Scene, err)
	default:
		stats := loop.Stats()
		s.console.Infof("render of %q completed in %v", req.Scene, stats.Elapsed.Round(time.Millisecond))
	}
}

// handleStop stops the current render after the rows in flight
func (s *Server) handleStop(c echo.Context) error {
	loop, req := s.currentLoop()
	if loop == nil {
		return jsonError(c, http.StatusNotFound, ErrNoRender)
	}

	if loop.Running() {
		loop.Stop()
		s.console.Infof("stopped render of %q", req.Scene)
	}
	return c.JSON(http.StatusOK, statusOf(loop, req))
}

// handleStatus reports progress of the current render
func (s *Server) handleStatus(c echo.Context) error {
	loop, req := s.currentLoop()
	if loop == nil {
		return jsonError(c, http.StatusNotFound, ErrNoRender)
	}
	return c.JSON(http.StatusOK, statusOf(loop, req))
}

// handleImage returns the rows rendered so far as a PNG
func (s *Server) handleImage(c echo.Context) error {
	loop, _ := s.currentLoop()
	if loop == nil {
		return jsonError(c, http.StatusNotFound, ErrNoRender)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, loop.Image()); err != nil {
		return jsonError(c, http.StatusInternalServerError, fmt.Errorf("failed to encode image: %w", err))
	}
	c.Response().Header().Set("Cache-Control", "no-cache")
	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}

// handleScenes lists the built-in scenes
func (s *Server) handleScenes(c echo.Context) error {
	return c.JSON(http.StatusOK, scene.List())
}
