package config

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/workbench-sh/workbench/pkg/errors"
	"github.com/workbench-sh/workbench/pkg/util/files"
)

const maxSearchDepth = 100

// GetProjectDir returns the project's root directory: the nearest parent of
// the working directory holding a config file.
func GetProjectDir(configFilename string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return findProjectRootDir(cwd, configFilename)
}

// GetConfig loads, completes and validates the project config, returning it
// along with the project root directory.
func GetConfig(configFilename string) (*Config, string, error) {
	config, rootDir, err := GetRawConfig(configFilename)
	if err != nil {
		return nil, "", err
	}
	err = config.ValidateAndComplete()
	return config, rootDir, err
}

func GetRawConfig(configFilename string) (*Config, string, error) {
	rootDir, err := GetProjectDir(configFilename)
	if err != nil {
		return nil, "", err
	}
	configPath := path.Join(rootDir, configFilename)

	config, err := loadConfigFromFile(configPath)
	if err != nil {
		return nil, "", err
	}

	return config, rootDir, nil
}

func loadConfigFromFile(file string) (*Config, error) {
	exists, err := files.Exists(file)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%s does not exist in %s. Are you in the right directory?", filepath.Base(file), filepath.Dir(file))
	}

	contents, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	return FromYAML(contents)
}

func findConfigPathInDirectory(dir string, configFilename string) (configPath string, err error) {
	filePath := path.Join(dir, configFilename)
	exists, err := files.Exists(filePath)
	if err != nil {
		return "", fmt.Errorf("Failed to scan directory %s for %s: %s", dir, filePath, err)
	} else if exists {
		return filePath, nil
	}

	return "", errors.ConfigNotFound(fmt.Sprintf("%s not found in %s", configFilename, dir))
}

// Walk up the directory tree to find the root of the project, defined as the
// directory housing the config file.
func findProjectRootDir(startDir string, configFilename string) (string, error) {
	dir := startDir
	for i := 0; i < maxSearchDepth; i++ {
		switch _, err := findConfigPathInDirectory(dir, configFilename); {
		case err != nil && !errors.IsConfigNotFound(err):
			return "", err
		case err == nil:
			return dir, nil
		case dir == "." || dir == "/":
			return "", errors.ConfigNotFound(fmt.Sprintf("%s not found in %s (or in any parent directories)", configFilename, startDir))
		}

		dir = filepath.Dir(dir)
	}

	return "", errors.ConfigNotFound(fmt.Sprintf("No %s found in parent directories.", configFilename))
}
