package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// RenderFlags are the flags accepted by the render command
var RenderFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "scene, s",
		Value: "cornell-box",
		Usage: "built-in scene to render (see the scenes command)",
	},
	cli.IntFlag{
		Name:  "width",
		Value: renderer.DefaultConfig().Width,
		Usage: "frame width",
	},
	cli.IntFlag{
		Name:  "height",
		Value: renderer.DefaultConfig().Height,
		Usage: "frame height",
	},
	cli.IntFlag{
		Name:  "spp",
		Value: renderer.DefaultConfig().SamplesPerPixel,
		Usage: "samples per pixel",
	},
	cli.IntFlag{
		Name:  "depth",
		Value: renderer.DefaultConfig().MaxDepth,
		Usage: "maximum number of bounces",
	},
	cli.StringFlag{
		Name:  "mode",
		Value: string(renderer.ModePathTrace),
		Usage: "light transport: path or direct",
	},
	cli.IntFlag{
		Name:  "workers",
		Value: 0,
		Usage: "number of render workers, 0 for one per logical CPU",
	},
	cli.Int64Flag{
		Name:  "seed",
		Value: renderer.DefaultConfig().Seed,
		Usage: "random seed",
	},
	cli.Float64Flag{
		Name:  "aperture",
		Value: -1,
		Usage: "lens diameter for depth of field, negative keeps the scene's camera",
	},
	cli.StringFlag{
		Name:  "out, o",
		Usage: "image filename for the rendered frame (default output/<scene>/render_<timestamp>.png)",
	},
}

// configFromFlags maps the render flags onto a validated render config
func configFromFlags(ctx *cli.Context) (renderer.Config, error) {
	mode, err := renderer.ParseMode(ctx.String("mode"))
	if err != nil {
		return renderer.Config{}, err
	}

	config := renderer.Config{
		Width:           ctx.Int("width"),
		Height:          ctx.Int("height"),
		SamplesPerPixel: ctx.Int("spp"),
		MaxDepth:        ctx.Int("depth"),
		Workers:         ctx.Int("workers"),
		Seed:            ctx.Int64("seed"),
		Mode:            mode,
	}
	return config, config.Validate()
}

// outputPath returns the requested output file or a timestamped default under output/<scene>
func outputPath(out, sceneID string, now time.Time) string {
	if out != "" {
		return out
	}
	return filepath.Join("output", sceneID, fmt.Sprintf("render_%s.png", now.Format("20060102_150405")))
}

// RenderFrame renders a still frame of a built-in scene to a PNG file.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	config, err := configFromFlags(ctx)
	if err != nil {
		return err
	}

	sceneID := ctx.String("scene")
	sc, err := scene.Create(sceneID)
	if err != nil {
		return err
	}
	if aperture := ctx.Float64("aperture"); aperture >= 0 {
		sc.CameraConfig.Aperture = aperture
	}

	r, err := renderer.New(sc, config)
	if err != nil {
		return err
	}
	logger.Noticef("rendering %q at %dx%d, %d spp, %s mode, %d workers",
		sceneID, config.Width, config.Height, config.SamplesPerPixel, config.Mode, r.Workers())

	// Ctrl-C stops after the rows in flight and still saves the partial frame
	renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	frame, stats, err := r.Render(renderCtx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if err != nil {
		logger.Warningf("render interrupted, saving %d of %d rows", stats.RowsCompleted, config.Height)
	}

	filename := outputPath(ctx.String("out"), sceneID, time.Now())
	if err := writePNG(filename, frame.Image()); err != nil {
		return err
	}

	displayFrameStats(stats, config)
	logger.Noticef("render saved as %s", filename)
	return nil
}

// writePNG encodes img into filename, creating parent directories
func writePNG(filename string, img image.Image) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("encoding %s: %w", filename, err)
	}
	return file.Close()
}

func formatFrameStats(stats renderer.RenderStats, config renderer.Config) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Rows", "Pixels", "Samples", "Samples/pixel", "Workers", "Render time"})
	table.Append([]string{
		fmt.Sprintf("%d / %d", stats.RowsCompleted, config.Height),
		fmt.Sprintf("%d", stats.TotalPixels),
		fmt.Sprintf("%d", stats.TotalSamples),
		fmt.Sprintf("%.1f", stats.AverageSamples()),
		fmt.Sprintf("%d", stats.Workers),
		stats.Elapsed.Round(time.Millisecond).String(),
	})
	table.Render()
	return buf.String()
}

func displayFrameStats(stats renderer.RenderStats, config renderer.Config) {
	logger.Noticef("frame statistics\n%s", formatFrameStats(stats, config))
}
