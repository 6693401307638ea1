package cmd

import (
	"errors"
	"flag"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/urfave/cli"

	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// renderContext builds a cli context with the render flags parsed from args
func renderContext(t *testing.T, args ...string) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("render", flag.ContinueOnError)
	for _, f := range RenderFlags {
		f.Apply(set)
	}
	if err := set.Parse(args); err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}
	return cli.NewContext(cli.NewApp(), set, nil)
}

func TestConfigFromFlags_Defaults(t *testing.T) {
	config, err := configFromFlags(renderContext(t))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if config != renderer.DefaultConfig() {
		t.Errorf("Expected default config %+v, got %+v", renderer.DefaultConfig(), config)
	}
}

func TestConfigFromFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		check   func(renderer.Config) bool
		wantErr bool
	}{
		{
			name:  "size and samples",
			args:  []string{"--width", "64", "--height", "48", "--spp", "4", "--depth", "2"},
			check: func(c renderer.Config) bool { return c.Width == 64 && c.Height == 48 && c.SamplesPerPixel == 4 && c.MaxDepth == 2 },
		},
		{
			name:  "direct mode with seed",
			args:  []string{"--mode", "direct", "--seed", "7", "--workers", "3"},
			check: func(c renderer.Config) bool { return c.Mode == renderer.ModeDirect && c.Seed == 7 && c.Workers == 3 },
		},
		{name: "unknown mode", args: []string{"--mode", "photon"}, wantErr: true},
		{name: "zero width", args: []string{"--width", "0"}, wantErr: true},
		{name: "negative spp", args: []string{"--spp", "-1"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := configFromFlags(renderContext(t, tt.args...))
			if tt.wantErr {
				if !errors.Is(err, renderer.ErrInvalidConfig) {
					t.Errorf("Expected ErrInvalidConfig, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !tt.check(config) {
				t.Errorf("Unexpected config %+v", config)
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	now := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)

	if got := outputPath("frame.png", "cornell-box", now); got != "frame.png" {
		t.Errorf("Expected explicit path to be kept, got %s", got)
	}

	expected := filepath.Join("output", "cornell-box", "render_20240305_140709.png")
	if got := outputPath("", "cornell-box", now); got != expected {
		t.Errorf("Expected %s, got %s", expected, got)
	}
}

func TestWritePNG(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "nested", "frame.png")
	if err := writePNG(filename, image.NewRGBA(image.Rect(0, 0, 5, 3))); err != nil {
		t.Fatalf("writePNG failed: %v", err)
	}

	file, err := os.Open(filename)
	if err != nil {
		t.Fatalf("Failed to open output: %v", err)
	}
	defer file.Close()

	img, err := png.Decode(file)
	if err != nil {
		t.Fatalf("Failed to decode output: %v", err)
	}
	if img.Bounds().Dx() != 5 || img.Bounds().Dy() != 3 {
		t.Errorf("Expected 5x3 image, got %v", img.Bounds())
	}
}

func TestFormatFrameStats(t *testing.T) {
	config := renderer.DefaultConfig()
	config.Height = 10
	stats := renderer.RenderStats{
		TotalPixels:   80,
		TotalSamples:  320,
		RowsCompleted: 8,
		Workers:       4,
		Elapsed:       1500 * time.Millisecond,
	}

	table := formatFrameStats(stats, config)
	for _, want := range []string{"Samples/pixel", "8 / 10", "320", "4.0", "1.5s"} {
		if !strings.Contains(table, want) {
			t.Errorf("Expected table to contain %q:\n%s", want, table)
		}
	}
}

func TestSceneTable(t *testing.T) {
	table, err := sceneTable()
	if err != nil {
		t.Fatalf("sceneTable failed: %v", err)
	}
	for _, name := range scene.Names() {
		if !strings.Contains(table, name) {
			t.Errorf("Expected table to list %s:\n%s", name, table)
		}
	}
}

func TestCPUTable(t *testing.T) {
	table := cpuTable()
	for _, want := range []string{"Logical CPUs", "Default workers", "GOMAXPROCS"} {
		if !strings.Contains(table, want) {
			t.Errorf("Expected table to contain %q:\n%s", want, table)
		}
	}
}
