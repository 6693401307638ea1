package scene

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownScene is returned when no built-in scene has the requested id
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"`
}

type entry struct {
	description string
	create      func() *Scene
}

var builtIn = map[string]entry{
	"cornell-box":    {"Cornell box with a tall and a short white box", NewCornellScene},
	"cornell-mirror": {"Cornell box with a mirror box and a glass sphere", NewCornellMirrorScene},
	"cornell-empty":  {"Cornell box with nothing inside", NewCornellEmptyScene},
	"direct-lights":  {"Spheres and cubes lit by two point lights under a gradient sky", NewDirectLightsScene},
	"lit-boxes":      {"Boxes on a floor lit by a wall light and a ceiling light", NewLitBoxesScene},
	"sphere-grid":    {"Grid of colored fuzzy mirror spheres under a sky", NewSphereGridScene},
}

// Names returns the ids of all built-in scenes in sorted order
func Names() []string {
	names := make([]string, 0, len(builtIn))
	for name := range builtIn {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List returns the metadata of all built-in scenes sorted by id
func List() []SceneInfo {
	var scenes []SceneInfo
	for _, name := range Names() {
		scenes = append(scenes, SceneInfo{
			ID:          name,
			DisplayName: titleCase(name),
			Description: builtIn[name].description,
		})
	}
	return scenes
}

// Create builds the built-in scene with the given id. The BVH is not built yet.
func Create(id string) (*Scene, error) {
	e, ok := builtIn[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownScene, id, strings.Join(Names(), ", "))
	}
	return e.create(), nil
}

// titleCase turns an id like "cornell-box" into "Cornell Box"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
