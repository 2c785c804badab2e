// Package settings persists small bits of state between invocations: which
// image a project last built and when, and per-user defaults.
package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/workbench-sh/workbench/pkg/util/console"
	"github.com/workbench-sh/workbench/pkg/util/files"
)

// ProjectSettings live in <project>/.workbench/settings.json. They are a
// convenience record, not part of the build contract; deleting the directory
// is always safe.
type ProjectSettings struct {
	ImageName   string    `json:"image_name,omitempty"`
	LastBuildAt time.Time `json:"last_build_at,omitempty"`

	projectRoot string
}

func LoadProjectSettings(projectRoot string) (*ProjectSettings, error) {
	settings := &ProjectSettings{
		projectRoot: projectRoot,
	}

	settingsPath := projectSettingsPath(projectRoot)
	exists, err := files.Exists(settingsPath)
	if err != nil {
		return nil, err
	}
	if !exists {
		return settings, nil
	}

	text, err := os.ReadFile(settingsPath)
	if err != nil {
		console.Warnf("Failed to read %s: %s", settingsPath, err)
		return settings, nil
	}

	if err := json.Unmarshal(text, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *ProjectSettings) Save() error {
	settingsPath := projectSettingsPath(s.projectRoot)
	bytes, err := json.MarshalIndent(s, "", " ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(settingsPath), 0o700); err != nil {
		return err
	}
	return os.WriteFile(settingsPath, bytes, 0o600)
}

// RecordBuild notes a successful build of imageName at the current time.
func (s *ProjectSettings) RecordBuild(imageName string) error {
	s.ImageName = imageName
	s.LastBuildAt = time.Now()
	return s.Save()
}

func ProjectSettingsDir(projectRoot string) string {
	return filepath.Join(projectRoot, ".workbench")
}

func projectSettingsPath(projectRoot string) string {
	return filepath.Join(ProjectSettingsDir(projectRoot), "settings.json")
}
