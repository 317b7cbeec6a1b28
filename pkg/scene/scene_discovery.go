package scene

import (
	"fmt"
	"strings"

	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier used by -scene and the web API
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

const builtInGroup = "Built-in Scenes"

// DefaultSceneName is the scene rendered when none is requested
const DefaultSceneName = "final"

type sceneFactory func(seed int64, cameraOverrides ...renderer.CameraConfig) *Scene

type registeredScene struct {
	id          string
	description string
	build       sceneFactory
}

// builtInScenes is ordered for display
var builtInScenes = []registeredScene{
	{
		id:          "final",
		description: "Random grid of small spheres around three large glass, diffuse and metal spheres",
		build:       NewFinalScene,
	},
	{
		id:          "three-spheres",
		description: "Diffuse, hollow glass and fuzzy metal spheres on a ground sphere",
		build: func(seed int64, cameraOverrides ...renderer.CameraConfig) *Scene {
			return NewThreeSpheresScene(cameraOverrides...)
		},
	},
	{
		id:          "materials",
		description: "Coated, metal, glass, hollow glass and mixed material spheres",
		build: func(seed int64, cameraOverrides ...renderer.CameraConfig) *Scene {
			return NewMaterialsScene(cameraOverrides...)
		},
	},
	{
		id:          "single-sphere",
		description: "One gray diffuse sphere in front of the camera",
		build: func(seed int64, cameraOverrides ...renderer.CameraConfig) *Scene {
			return NewSingleSphereScene(cameraOverrides...)
		},
	},
}

// Names returns the IDs of every built-in scene in display order
func Names() []string {
	names := make([]string, len(builtInScenes))
	for i, s := range builtInScenes {
		names[i] = s.id
	}
	return names
}

// Create builds the named scene. The seed drives both scene population and
// the render's random stream, so equal seeds reproduce the same image.
func Create(name string, seed int64, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	for _, s := range builtInScenes {
		if s.id == name {
			scene := s.build(seed, cameraOverrides...)
			scene.SamplingConfig.Seed = seed
			return scene, nil
		}
	}
	return nil, fmt.Errorf("unknown scene %q (available: %s)", name, strings.Join(Names(), ", "))
}

// ListAllScenes returns the built-in scenes grouped by category
func ListAllScenes() ScenesResponse {
	group := SceneGroup{Name: builtInGroup}
	for _, s := range builtInScenes {
		group.Scenes = append(group.Scenes, SceneInfo{
			ID:          s.id,
			DisplayName: titleCase(s.id),
			Description: s.description,
			Group:       builtInGroup,
		})
	}
	return ScenesResponse{Groups: []SceneGroup{group}}
}

// titleCase converts a filename-style string to title case
// e.g., "three-spheres" -> "Three Spheres"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
