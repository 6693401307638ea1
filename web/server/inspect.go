package server

import (
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Radiance     [3]float64             `json:"radiance"` // Current estimate for the pixel
	Properties   map[string]interface{} `json:"properties"`
}

func toArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(v core.Vec3) string {
	v = v.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(v.X*255), int(v.Y*255), int(v.Z*255))
}

// extractMaterialInfo extracts detailed material information with type assertions
func extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})
	albedo := mat.Shading().Albedo

	switch m := mat.(type) {
	case *material.Diffuse:
		properties["albedo"] = toArray(albedo)
		properties["color"] = hexColor(albedo)
		return "diffuse", properties

	case *material.Mirror:
		properties["albedo"] = toArray(albedo)
		properties["color"] = hexColor(albedo)
		properties["fuzz"] = m.Fuzz
		return "mirror", properties

	case *material.Transparent:
		properties["refractiveIndex"] = m.RefractiveIndex
		properties["color"] = "#ffffff" // Clear glass
		return "transparent", properties

	case *material.Emissive:
		properties["emission"] = toArray(albedo)
		properties["color"] = hexColor(albedo)
		return "emissive", properties

	default:
		return "unknown", properties
	}
}

// geometryType names the primitive that was hit
func geometryType(object geometry.Object) string {
	switch object.(type) {
	case *geometry.Sphere:
		return "sphere"
	case *geometry.Triangle:
		return "triangle"
	case *geometry.RectangleX:
		return "rectangleX"
	case *geometry.RectangleZ:
		return "rectangleZ"
	default:
		return "unknown"
	}
}

// inspectPixel casts a ray through the center of image pixel (x, y), counted from the top left
func inspectPixel(r *renderer.Renderer, frame *renderer.Frame, x, y int) InspectResponse {
	frameY := r.Config().Height - 1 - y
	ray := r.Camera().GetRay(float64(x)+0.5, float64(frameY)+0.5, core.NewSeededSampler(0))

	response := InspectResponse{Radiance: toArray(frame.Pixel(x, frameY))}

	hit := r.Scene().Intersect(ray, math.Inf(1))
	if !hit.Valid {
		return response
	}

	response.Hit = true
	response.MaterialType, response.Properties = extractMaterialInfo(hit.Material())
	response.GeometryType = geometryType(hit.Object)
	response.Point = toArray(hit.Point)
	response.Normal = toArray(hit.Normal)
	response.Distance = hit.T
	response.FrontFace = hit.FrontFace
	return response
}

// handleInspect reports the surface seen through a pixel of the current render
func (s *Server) handleInspect(c echo.Context) error {
	loop, _ := s.currentLoop()
	if loop == nil {
		return jsonError(c, http.StatusNotFound, ErrNoRender)
	}

	config := loop.Renderer().Config()
	x, err := parseIntParam(c.QueryParams(), "x", 0, config.Width-1)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err)
	}
	y, err := parseIntParam(c.QueryParams(), "y", 0, config.Height-1)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err)
	}

	return c.JSON(http.StatusOK, inspectPixel(loop.Renderer(), loop.Frame(), x, y))
}

// parseIntParam parses a required integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, min, max int) (int, error) {
	value := values.Get(key)
	if value == "" {
		return 0, fmt.Errorf("missing %s", key)
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %s", key, value)
	}
	if err := checkRange(key, parsed, min, max); err != nil {
		return 0, err
	}
	return parsed, nil
}
