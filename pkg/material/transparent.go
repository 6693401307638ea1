package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Transparent represents a clear dielectric like glass that both reflects and refracts
type Transparent struct {
	surface
	RefractiveIndex float64 // e.g. 1.5 for glass
}

// NewTransparent creates a new transparent material
func NewTransparent(refractiveIndex float64) *Transparent {
	return &Transparent{
		surface:         surface{NewShading(core.NewVec3(1, 1, 1))},
		RefractiveIndex: refractiveIndex,
	}
}

// Scatter picks reflection under total internal reflection or with the Schlick
// probability, otherwise refraction. Reflected rays start above the surface and
// refracted rays below it.
func (tr *Transparent) Scatter(rayIn core.Ray, hit SurfaceInteraction, sampler core.Sampler) ScatterResult {
	refractionRatio := tr.RefractiveIndex
	if hit.FrontFace {
		refractionRatio = 1.0 / tr.RefractiveIndex
	}

	unitDirection := rayIn.Direction.Normalize()
	cosTheta := math.Min(-unitDirection.Dot(hit.Normal), 1.0)
	sinTheta := math.Sqrt(math.Max(0, 1.0-cosTheta*cosTheta))

	cannotRefract := refractionRatio*sinTheta > 1.0

	var scattered core.Ray
	if cannotRefract || Reflectance(cosTheta, refractionRatio) > sampler.Get1D() {
		scattered = core.NewRay(hit.OffsetPoint(false), core.Reflect(unitDirection, hit.Normal))
	} else {
		scattered = core.NewRay(hit.OffsetPoint(true), core.Refract(unitDirection, hit.Normal, refractionRatio))
	}

	return ScatterResult{
		Scattered:   scattered,
		Attenuation: core.NewVec3(1, 1, 1),
	}
}

func (tr *Transparent) IsTransparent() bool { return true }

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractionRatio float64) float64 {
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
