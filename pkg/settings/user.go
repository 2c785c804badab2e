package settings

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"

	"github.com/workbench-sh/workbench/pkg/util/files"
)

// UserSettings hold per-user defaults, under ~/.config/workbench.
type UserSettings struct {
	// ProgressOutput overrides the default docker build progress renderer
	// ("auto", "tty" or "plain").
	ProgressOutput string `json:"progress_output,omitempty"`
}

func LoadUserSettings() (*UserSettings, error) {
	settings := &UserSettings{}

	settingsPath, err := userSettingsPath()
	if err != nil {
		return nil, err
	}
	exists, err := files.Exists(settingsPath)
	if err != nil {
		return nil, err
	}
	if !exists {
		return settings, nil
	}

	text, err := os.ReadFile(settingsPath)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(text, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *UserSettings) Save() error {
	settingsPath, err := userSettingsPath()
	if err != nil {
		return err
	}
	bytes, err := json.MarshalIndent(s, "", " ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(settingsPath), 0o700); err != nil {
		return err
	}
	return os.WriteFile(settingsPath, bytes, 0o600)
}

func userSettingsPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "workbench", "settings.json"), nil
}
