package scene

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * degrees

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS
	lc := l + 0.3963377774*a + 0.2158037573*b
	mc := l - 0.1055613458*a - 0.0638541728*b
	sc := l - 0.0894841775*a - 1.2914855480*b

	lc = lc * lc * lc
	mc = mc * mc * mc
	sc = sc * sc * sc

	// LMS to linear RGB
	rgb := core.NewVec3(
		+4.0767416621*lc-3.3077115913*mc+0.2309699292*sc,
		-1.2684380046*lc+2.6097574011*mc-0.3413193965*sc,
		-0.0041960863*lc-0.7034186147*mc+1.7076147010*sc,
	)
	return rgb.Clamp(0, 1)
}

// sphereGridSize is the number of spheres along each side of the grid
const sphereGridSize = 20

// NewSphereGridScene creates a grid of fuzzy mirror spheres whose hue varies
// along x and chroma along y, lit by a sky gradient and a panel overhead
func NewSphereGridScene() *Scene {
	s := New("sphere-grid")
	s.CameraConfig = geometry.CameraConfig{
		Eye:      core.NewVec3(4.5, 18, 6),
		LookAt:   core.NewVec3(4.5, 4.5, 0.8),
		Fov:      40 * degrees,
		Aperture: 0.02,
	}
	// White horizon below, blue sky above
	s.Background = [2]core.Vec3{core.NewVec3(1, 1, 1), core.NewVec3(0.5, 0.7, 1.0)}

	s.AddEmissive(geometry.NewRectangleZ(core.NewVec3(2, 2, 14), core.NewVec3(7, 7, 14),
		material.NewEmissive(core.NewVec3(6, 5.75, 5))))

	ground := material.NewDiffuse(core.Splat(0.5))
	s.AddRectangle(
		core.NewVec3(-20, -20, 0), core.NewVec3(30, -20, 0),
		core.NewVec3(-20, 30, 0), core.NewVec3(30, 30, 0), ground)

	// Fit the grid into a 9x9 area centered on the look-at point
	const targetArea = 9.0
	spacing := targetArea / float64(sphereGridSize-1)
	radius := math.Max(0.02, math.Min(0.35, spacing*0.35))

	const (
		baseLightness = 0.65
		minChroma     = 0.05
		maxChroma     = 0.25
	)

	for i := 0; i < sphereGridSize; i++ {
		for j := 0; j < sphereGridSize; j++ {
			x := float64(i)*spacing - targetArea/2 + 4.5
			y := float64(j)*spacing - targetArea/2 + 4.5

			hue := float64(i) / float64(sphereGridSize-1) * 360
			chroma := minChroma + float64(j)/float64(sphereGridSize-1)*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)

			fuzz := 0.05 + 0.1*float64((i+j)%3)/2
			mat := material.NewMirror(oklchToRGB(lightness, chroma, hue), fuzz)
			s.Add(geometry.NewSphere(core.NewVec3(x, y, radius), radius, mat))
		}
	}

	return s
}
