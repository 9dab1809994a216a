package loaders

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Scene types reported by discovery
const (
	SceneTypeBuiltin = "builtin"
	SceneTypeXML     = "xml"
)

const builtinGroup = "Built-in Scenes"

// ErrSceneNotFound is returned when a scene ID matches no known scene
var ErrSceneNotFound = errors.New("scene not found")

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "xml"
	FilePath    string `json:"filePath"`    // Path to XML file (xml type only)
	Variant     string `json:"variant"`     // Variant name (optional)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse is the grouped scene listing
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

// builtinScenes lists the scenes constructed in code
func builtinScenes() []SceneInfo {
	return []SceneInfo{
		{
			ID:          "default",
			Name:        "Default Scene",
			DisplayName: "Default Scene",
			Description: "Mirror and matte spheres on a floor with a tetrahedron mesh",
			Group:       builtinGroup,
			Type:        SceneTypeBuiltin,
		},
	}
}

// ListXMLScenes scans dir for XML scene files. A missing directory yields an empty list.
func ListXMLScenes(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.xml"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, filePath := range files {
		info, err := ParseXMLMetadata(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read metadata for %s: %w", filePath, err)
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes, nil
}

// ParseXMLMetadata reads "Key: value" lines from the comment at the top of a
// scene file. Missing keys fall back to values derived from the file name.
func ParseXMLMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	info := SceneInfo{
		ID:          SceneTypeXML + ":" + nameWithoutExt,
		Name:        titleCase(nameWithoutExt),
		DisplayName: titleCase(nameWithoutExt),
		Group:       "XML Scenes",
		Type:        SceneTypeXML,
		FilePath:    filePath,
	}

	file, err := os.Open(filePath)
	if err != nil {
		return info, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	inComment := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "<?xml") {
			continue
		}
		if !inComment {
			if !strings.HasPrefix(line, "<!--") {
				break
			}
			inComment = true
			line = strings.TrimSpace(strings.TrimPrefix(line, "<!--"))
		}

		closed := strings.HasSuffix(line, "-->")
		line = strings.TrimSpace(strings.TrimSuffix(line, "-->"))

		key, value, found := strings.Cut(line, ":")
		if found {
			value = strings.TrimSpace(value)
			switch strings.TrimSpace(key) {
			case "Scene":
				info.Name = value
			case "Variant":
				info.Variant = value
			case "Description":
				info.Description = value
			case "Group":
				info.Group = value
			}
		}
		if closed {
			break
		}
	}

	if info.Variant != "" {
		info.DisplayName = fmt.Sprintf("%s - %s", info.Name, info.Variant)
	} else {
		info.DisplayName = info.Name
	}
	return info, scanner.Err()
}

// ListAllScenes returns the built-in scenes followed by the XML scenes in dir,
// grouped by category
func ListAllScenes(dir string) (ScenesResponse, error) {
	var response ScenesResponse

	xmlScenes, err := ListXMLScenes(dir)
	if err != nil {
		return response, err
	}
	allScenes := append(builtinScenes(), xmlScenes...)

	groupMap := make(map[string][]SceneInfo)
	var groupNames []string
	for _, info := range allScenes {
		if _, exists := groupMap[info.Group]; !exists && info.Group != builtinGroup {
			groupNames = append(groupNames, info.Group)
		}
		groupMap[info.Group] = append(groupMap[info.Group], info)
	}
	sort.Strings(groupNames)

	response.Groups = append(response.Groups, SceneGroup{Name: builtinGroup, Scenes: groupMap[builtinGroup]})
	for _, name := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{Name: name, Scenes: groupMap[name]})
	}
	return response, nil
}

// FindScene looks up a scene by ID among the built-in scenes and those in dir
func FindScene(dir, id string) (SceneInfo, error) {
	for _, info := range builtinScenes() {
		if info.ID == id {
			return info, nil
		}
	}

	xmlScenes, err := ListXMLScenes(dir)
	if err != nil {
		return SceneInfo{}, err
	}
	for _, info := range xmlScenes {
		if info.ID == id {
			return info, nil
		}
	}
	return SceneInfo{}, fmt.Errorf("%w: %q", ErrSceneNotFound, id)
}

// LoadScene builds or loads the described scene and validates it
func LoadScene(info SceneInfo) (*scene.Scene, error) {
	switch info.Type {
	case SceneTypeBuiltin:
		if info.ID != "default" {
			return nil, fmt.Errorf("%w: %q", ErrSceneNotFound, info.ID)
		}
		s := scene.NewDefaultScene()
		if err := s.Validate(); err != nil {
			return nil, err
		}
		return s, nil
	case SceneTypeXML:
		return LoadXMLScene(info.FilePath)
	default:
		return nil, fmt.Errorf("unknown scene type %q", info.Type)
	}
}

// titleCase converts a filename-style string to title case
// e.g., "mirror-spheres" -> "Mirror Spheres"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
