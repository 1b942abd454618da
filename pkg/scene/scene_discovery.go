package scene

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const builtInGroup = "Built-in Scenes"

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "yaml"
	FilePath    string `json:"filePath"`    // Path to YAML file (yaml type only)
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

// BuiltInScenes returns metadata for the registered scenes, sorted by name
func BuiltInScenes() []SceneInfo {
	var scenes []SceneInfo
	for _, name := range Names() {
		scenes = append(scenes, registry[name].info)
	}
	return scenes
}

// ListYAMLScenes scans dir for *.yaml and *.yml scene files. A missing directory yields no scenes.
func ListYAMLScenes(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
		}
		files = append(files, matches...)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, filePath := range files {
		sceneInfo, err := ParseYAMLMetadata(filePath)
		if err != nil {
			return nil, err
		}
		scenes = append(scenes, sceneInfo)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// ParseYAMLMetadata reads "# Scene:", "# Description:" and "# Group:" header comments
func ParseYAMLMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	sceneInfo := SceneInfo{
		ID:          "yaml:" + nameWithoutExt,
		Name:        nameWithoutExt,
		DisplayName: titleCase(nameWithoutExt),
		Group:       "Scene Files",
		Type:        "yaml",
		FilePath:    filePath,
	}

	file, err := os.Open(filePath)
	if err != nil {
		return sceneInfo, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Metadata lives only in the leading comment block
		if !strings.HasPrefix(line, "#") {
			break
		}

		content := strings.TrimSpace(strings.TrimPrefix(line, "#"))
		switch {
		case strings.HasPrefix(content, "Scene:"):
			sceneInfo.DisplayName = strings.TrimSpace(strings.TrimPrefix(content, "Scene:"))
		case strings.HasPrefix(content, "Description:"):
			sceneInfo.Description = strings.TrimSpace(strings.TrimPrefix(content, "Description:"))
		case strings.HasPrefix(content, "Group:"):
			sceneInfo.Group = strings.TrimSpace(strings.TrimPrefix(content, "Group:"))
		}
	}

	return sceneInfo, scanner.Err()
}

// ListAllScenes returns built-in and YAML scenes, grouped by category with built-ins first
func ListAllScenes(dir string) (ScenesResponse, error) {
	var response ScenesResponse

	yamlScenes, err := ListYAMLScenes(dir)
	if err != nil {
		return response, fmt.Errorf("failed to list YAML scenes: %w", err)
	}

	allScenes := append(BuiltInScenes(), yamlScenes...)

	groupMap := make(map[string][]SceneInfo)
	for _, scene := range allScenes {
		groupMap[scene.Group] = append(groupMap[scene.Group], scene)
	}

	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtInGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	if builtIn, exists := groupMap[builtInGroup]; exists {
		response.Groups = append(response.Groups, SceneGroup{Name: builtInGroup, Scenes: builtIn})
	}
	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{Name: groupName, Scenes: groupMap[groupName]})
	}

	return response, nil
}

// Resolve builds a scene from an ID as listed by ListAllScenes ("yaml:<name>" looks in dir),
// or from a plain built-in name
func Resolve(id, dir string, opts Options) (*Scene, error) {
	if name, ok := strings.CutPrefix(id, "yaml:"); ok {
		if name == "" || strings.ContainsAny(name, `/\`) || name == ".." {
			return nil, fmt.Errorf("%w: %q", ErrUnknownScene, id)
		}
		for _, ext := range []string{".yaml", ".yml"} {
			path := filepath.Join(dir, name+ext)
			if _, err := os.Stat(path); err == nil {
				return LoadFile(path, opts)
			}
		}
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, id)
	}
	return Build(id, opts)
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-empty" -> "Cornell Empty"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
