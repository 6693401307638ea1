package renderer

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/cpu"
)

// ErrInvalidConfig is returned by Validate and New for unusable render settings
var ErrInvalidConfig = errors.New("invalid render config")

// Mode selects the light transport estimator
type Mode string

const (
	ModePathTrace Mode = "path"   // Recursive Monte Carlo path tracing
	ModeDirect    Mode = "direct" // Single bounce Blinn-Phong preview
)

// ParseMode converts a flag value into a Mode
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModePathTrace, ModeDirect:
		return Mode(s), nil
	}
	return "", fmt.Errorf("%w: unknown mode %q (expected %q or %q)", ErrInvalidConfig, s, ModePathTrace, ModeDirect)
}

// Config contains rendering configuration
type Config struct {
	Width           int   // Image width in pixels
	Height          int   // Image height in pixels
	SamplesPerPixel int   // Number of rays per pixel
	MaxDepth        int   // Maximum ray bounce depth
	Workers         int   // Number of parallel workers (0 = use CPU count)
	Seed            int64 // Base seed for every worker's generator
	Mode            Mode
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:           400,
		Height:          400,
		SamplesPerPixel: 16,
		MaxDepth:        5,
		Workers:         0,
		Seed:            42,
		Mode:            ModePathTrace,
	}
}

// Validate reports the first unusable setting
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: image size must be positive, got %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.SamplesPerPixel <= 0:
		return fmt.Errorf("%w: samples per pixel must be positive, got %d", ErrInvalidConfig, c.SamplesPerPixel)
	case c.MaxDepth < 0:
		return fmt.Errorf("%w: max depth must not be negative, got %d", ErrInvalidConfig, c.MaxDepth)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidConfig, c.Workers)
	}
	if _, err := ParseMode(string(c.Mode)); err != nil {
		return err
	}
	return nil
}

// resolveWorkers returns n, or the number of logical CPUs when n is 0
func resolveWorkers(n int) int {
	if n > 0 {
		return n
	}
	counts, err := cpu.Counts(true)
	if err != nil || counts < 1 {
		return runtime.NumCPU()
	}
	return counts
}
