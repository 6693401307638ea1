package renderer

import (
	"image"
	"image/color"
	"sync"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Frame is the radiance buffer of a render. Rows are indexed bottom-up, matching
// the camera, and a row becomes visible only once it has been fully rendered.
type Frame struct {
	Width, Height int

	mu       sync.RWMutex
	pixels   []core.Vec3
	complete []bool
	rowsDone int
}

// NewFrame creates a black frame
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:    width,
		Height:   height,
		pixels:   make([]core.Vec3, width*height),
		complete: make([]bool, height),
	}
}

// SetRow publishes a finished row
func (f *Frame) SetRow(y int, row []core.Vec3) {
	f.mu.Lock()
	defer f.mu.Unlock()

	copy(f.pixels[y*f.Width:(y+1)*f.Width], row)
	if !f.complete[y] {
		f.complete[y] = true
		f.rowsDone++
	}
}

// Pixel returns the radiance at (x, y), black for rows not yet published
func (f *Frame) Pixel(x, y int) core.Vec3 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.pixels[y*f.Width+x]
}

// RowComplete reports whether row y has been published
func (f *Frame) RowComplete(y int) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.complete[y]
}

// RowsDone returns the number of published rows
func (f *Frame) RowsDone() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.rowsDone
}

// Image tone maps the frame into an RGBA image with the first row at the bottom
func (f *Frame) Image() *image.RGBA {
	f.mu.RLock()
	defer f.mu.RUnlock()

	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			img.SetRGBA(x, f.Height-1-y, vec3ToColor(f.pixels[y*f.Width+x]))
		}
	}
	return img
}

// vec3ToColor converts a Vec3 color to RGBA with proper clamping and gamma correction
func vec3ToColor(colorVec core.Vec3) color.RGBA {
	// Clamp first so the square root never sees a negative channel
	colorVec = colorVec.Clamp(0.0, 1.0)

	// Apply gamma correction (gamma = 2.0)
	colorVec = colorVec.GammaCorrect(2.0)

	return color.RGBA{
		R: uint8(255 * colorVec.X),
		G: uint8(255 * colorVec.Y),
		B: uint8(255 * colorVec.Z),
		A: 255,
	}
}
