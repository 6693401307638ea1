package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Palette holds the named materials shared by the built-in scenes
type Palette struct {
	Green       material.Material
	Red         material.Material
	White       material.Material
	Emissive    material.Material
	Transparent material.Material
	Mirror      material.Material
	Yellow      material.Material
	Blue        material.Material
	Dark        material.Material
	PinkMirror  material.Material
	Pink        material.Material
	SkyBlue     material.Material
}

func rgb(r, g, b float64) core.Vec3 {
	return core.NewVec3(r/255, g/255, b/255)
}

// NewPalette creates the standard materials
func NewPalette() Palette {
	return Palette{
		Green:       material.NewDiffuse(core.NewVec3(0.12, 0.45, 0.15)),
		Red:         material.NewDiffuse(core.NewVec3(0.65, 0.05, 0.05)),
		White:       material.NewDiffuse(core.Splat(0.73)),
		Emissive:    material.NewEmissive(core.Splat(15)),
		Transparent: material.NewTransparent(1.5),
		Mirror:      material.NewMirror(core.Splat(0.7), 0),
		Yellow:      material.NewDiffuse(core.NewVec3(0.6, 0.6, 0.2)),
		Blue:        material.NewDiffuse(core.NewVec3(0.2, 0.1, 0.6)),
		Dark:        material.NewDiffuse(core.Splat(0.2)),
		PinkMirror:  material.NewMirror(rgb(235, 170, 230), 0.3),
		Pink:        material.NewDiffuse(rgb(235, 170, 230)),
		SkyBlue:     material.NewDiffuse(rgb(168, 204, 244)),
	}
}
