package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Emissive represents a light-emitting material
type Emissive struct {
	surface
}

// NewEmissive creates a new emissive material
func NewEmissive(emission core.Vec3) *Emissive {
	return &Emissive{surface{NewShading(emission)}}
}

// Scatter absorbs every incoming ray
func (e *Emissive) Scatter(rayIn core.Ray, hit SurfaceInteraction, sampler core.Sampler) ScatterResult {
	return unusable
}

// Emit returns the emission on the front face and nothing on the back face
func (e *Emissive) Emit(hit SurfaceInteraction) core.Vec3 {
	if !hit.FrontFace {
		return core.Vec3{}
	}
	return e.shading.Albedo
}

func (e *Emissive) IsEmissive() bool { return true }
