package scene

import (
	"fmt"
	"math"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/pkg/material"
)

var logger = log.New("scene")

// PointLight is a point source used for the direct shadow term of diffuse surfaces
type PointLight struct {
	Position core.Vec3
	Power    core.Vec3 // Radiant power per channel
}

// DirectionalLight drives the Blinn-Phong direct lighting estimator
type DirectionalLight struct {
	Ambient   core.Vec3
	Diffuse   core.Vec3
	Specular  core.Vec3
	Direction core.Vec3 // Toward the light
}

// DefaultDirectionalLight returns the light used by every built-in scene
func DefaultDirectionalLight() DirectionalLight {
	return DirectionalLight{
		Ambient:   core.Splat(0.2),
		Diffuse:   core.Splat(0.7),
		Specular:  core.Splat(0.5),
		Direction: core.NewVec3(1, 1, 1),
	}
}

// Scene contains all the elements needed for rendering. Objects and Emissives
// own the primitives; the BVH only references them.
type Scene struct {
	Name         string
	CameraConfig geometry.CameraConfig
	Objects      []geometry.Object
	Emissives    []geometry.Object // Subset of Objects sampled as lights
	Lights       []PointLight
	Sun          DirectionalLight
	Background   [2]core.Vec3 // Colors for straight down and straight up
	BVH          *geometry.BVH
}

// New creates an empty scene with a black background
func New(name string) *Scene {
	return &Scene{
		Name: name,
		CameraConfig: geometry.CameraConfig{
			Eye:    core.NewVec3(1, 0, 0),
			LookAt: core.NewVec3(0, 0, 0),
			Fov:    45 * degrees,
		},
		Sun: DefaultDirectionalLight(),
	}
}

// degrees converts to radians when multiplied
const degrees = math.Pi / 180

// Add appends objects to the scene
func (s *Scene) Add(objects ...geometry.Object) {
	s.Objects = append(s.Objects, objects...)
}

// AddEmissive appends an object and registers it for light sampling
func (s *Scene) AddEmissive(object geometry.Object) {
	s.Objects = append(s.Objects, object)
	s.Emissives = append(s.Emissives, object)
}

// AddLight appends a point light
func (s *Scene) AddLight(position, power core.Vec3) {
	s.Lights = append(s.Lights, PointLight{Position: position, Power: power})
}

// AddRectangle adds the quad spanned by p1..p4 as the triangles (p1, p3, p2) and (p4, p2, p3)
func (s *Scene) AddRectangle(p1, p2, p3, p4 core.Vec3, mat material.Material) {
	s.Add(geometry.NewTriangle(p1, p3, p2, mat), geometry.NewTriangle(p4, p2, p3, mat))
}

// AddCube adds an axis-aligned box with corner p and extent size
func (s *Scene) AddCube(p, size core.Vec3, mat material.Material) {
	s.mustAddMesh(geometry.NewBox(p, size), mat, geometry.Identity())
}

// AddMesh instantiates mesh with the given transform
func (s *Scene) AddMesh(mesh *geometry.Mesh, mat material.Material, transform geometry.Transform) error {
	triangles, err := mesh.Triangles(mat, transform)
	if err != nil {
		return fmt.Errorf("adding mesh to scene %q: %w", s.Name, err)
	}
	s.Add(triangles...)
	return nil
}

// mustAddMesh is AddMesh for meshes built in code, where a malformed mesh is a bug
func (s *Scene) mustAddMesh(mesh *geometry.Mesh, mat material.Material, transform geometry.Transform) {
	if err := s.AddMesh(mesh, mat, transform); err != nil {
		panic(err)
	}
}

// Build constructs the BVH over the current objects, replacing any previous one
func (s *Scene) Build(sampler core.Sampler) {
	if s.BVH != nil {
		s.BVH.Destroy()
	}

	start := time.Now()
	s.BVH = geometry.NewBVH(s.Objects, sampler)
	stats := s.BVH.Stats()
	logger.Infof("built BVH for %q in %d ms: %d objects, %d nodes, max depth %d",
		s.Name, time.Since(start).Milliseconds(), stats.Objects, stats.Nodes, stats.MaxDepth)
}

// Reset tears down the BVH and drops all primitives and lights
func (s *Scene) Reset() {
	if s.BVH != nil {
		s.BVH.Destroy()
		s.BVH = nil
	}
	s.Objects = nil
	s.Emissives = nil
	s.Lights = nil
}

// Intersect returns the closest hit, scanning every object when the BVH has not been built
func (s *Scene) Intersect(ray core.Ray, tMax float64) geometry.Hit {
	if s.BVH == nil {
		return geometry.List(s.Objects).Intersect(ray, tMax)
	}
	return s.BVH.Intersect(ray, tMax)
}

// BackgroundColor interpolates the background on the ray direction's z component
func (s *Scene) BackgroundColor(direction core.Vec3) core.Vec3 {
	h := 0.5 * (direction.Z + 1.0)
	return s.Background[0].Multiply(1 - h).Add(s.Background[1].Multiply(h))
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Objects)
}
