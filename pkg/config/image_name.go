package config

import (
	"path"
	"regexp"
	"strings"
)

var imageNameRe = regexp.MustCompile(`[^a-z0-9\-]+`)

// DockerImageName returns the default image name for a project directory.
func DockerImageName(projectDir string) string {
	prefix := "workbench-"
	projectName := strings.ToLower(path.Base(projectDir))

	projectName = strings.ReplaceAll(projectName, " ", "-")
	projectName = imageNameRe.ReplaceAllString(projectName, "")

	// Limit to 30 characters (max Docker image name length)
	length := 30 - len(prefix)
	if len(projectName) > length {
		projectName = projectName[:length]
	}

	return prefix + projectName
}
