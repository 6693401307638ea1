package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// worldUp is the z axis; scenes are built Z-up
var worldUp = core.NewVec3(0, 0, 1)

// CameraConfig contains the user-facing camera parameters
type CameraConfig struct {
	Eye      core.Vec3 // Camera position
	LookAt   core.Vec3 // Point the camera looks at, also the focus distance
	Fov      float64   // Vertical field of view in radians
	Aperture float64   // Lens diameter, 0 for a pinhole camera
}

// Camera generates primary rays for pixel coordinates
type Camera struct {
	config        CameraConfig
	width, height int
	right, up     core.Vec3 // Half extents of the image plane through LookAt
	rightN, upN   core.Vec3
	lensRadius    float64
}

// NewCamera creates a camera for an image of width x height pixels
func NewCamera(config CameraConfig, width, height int) *Camera {
	c := &Camera{config: config}
	c.Resize(width, height)
	return c
}

// Resize recomputes the image plane for a new resolution
func (c *Camera) Resize(width, height int) {
	c.width, c.height = width, height

	lookDir := c.config.Eye.Subtract(c.config.LookAt)
	focus := lookDir.Length()
	halfHeight := focus * math.Tan(c.config.Fov/2)

	// Looking along the z axis leaves worldUp parallel to the view, so y stands in for it
	helper := worldUp
	if math.Abs(lookDir.Normalize().Z) > 0.999 {
		helper = core.NewVec3(0, 1, 0)
	}

	c.right = helper.Cross(lookDir).Normalize().Multiply(halfHeight * float64(width) / float64(height))
	c.up = lookDir.Cross(c.right).Normalize().Multiply(halfHeight)
	c.rightN = c.right.Normalize()
	c.upN = c.up.Normalize()
	c.lensRadius = c.config.Aperture / 2
}

// Config returns the camera parameters
func (c *Camera) Config() CameraConfig {
	return c.config
}

// GetRay returns the ray through continuous pixel coordinates (x, y), with y
// growing upwards. The sampler is only consumed when the aperture is open.
func (c *Camera) GetRay(x, y float64, sampler core.Sampler) core.Ray {
	target := c.config.LookAt.
		Add(c.right.Multiply(2*x/float64(c.width) - 1)).
		Add(c.up.Multiply(2*y/float64(c.height) - 1))

	if c.config.Aperture < 1e-5 {
		return core.NewRay(c.config.Eye, target.Subtract(c.config.Eye))
	}

	lens := core.SamplePointInUnitDisk(sampler.Get2D()).Multiply(c.lensRadius)
	offset := c.upN.Multiply(lens.X).Add(c.rightN.Multiply(lens.Y))
	origin := c.config.Eye.Add(offset)
	return core.NewRay(origin, target.Subtract(origin))
}
