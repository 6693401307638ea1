package pdf

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Mixture combines two densities with equal weight
type Mixture struct {
	First, Second PDF
}

// NewMixture creates the 50/50 mixture of first and second
func NewMixture(first, second PDF) Mixture {
	return Mixture{First: first, Second: second}
}

// Density returns the mean of both densities
func (m Mixture) Density(hit material.SurfaceInteraction, direction core.Vec3) float64 {
	return 0.5*m.First.Density(hit, direction) + 0.5*m.Second.Density(hit, direction)
}

// Sample flips a coin to choose which density supplies the direction
func (m Mixture) Sample(sampler core.Sampler) core.Vec3 {
	if sampler.Get1D() < 0.5 {
		return m.First.Sample(sampler)
	}
	return m.Second.Sample(sampler)
}
