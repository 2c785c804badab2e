// Package dockerignore applies .dockerignore patterns to the project tree,
// so the build can report what actually ends up in the context.
package dockerignore

import (
	"bufio"
	"os"
	"path/filepath"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/workbench-sh/workbench/pkg/util/files"
)

const DockerIgnoreFilename = ".dockerignore"

// workbenchDir holds per-project settings and is never part of the context.
const workbenchDir = ".workbench"

// CreateMatcher compiles the directory's .dockerignore, or returns nil if
// there isn't one.
func CreateMatcher(dir string) (*ignore.GitIgnore, error) {
	dockerIgnorePath := filepath.Join(dir, DockerIgnoreFilename)
	exists, err := files.Exists(dockerIgnorePath)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}

	patterns, err := readDockerIgnore(dockerIgnorePath)
	if err != nil {
		return nil, err
	}
	return ignore.CompileIgnoreLines(patterns...), nil
}

// Walk visits every file under root that would be part of the build context.
func Walk(root string, ignoreMatcher *ignore.GitIgnore, fn filepath.WalkFunc) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if ignoreMatcher != nil && ignoreMatcher.MatchesPath(path) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() && info.Name() == workbenchDir {
			return filepath.SkipDir
		}

		if info.Name() == DockerIgnoreFilename {
			return nil
		}

		return fn(path, info, err)
	})
}

// ContextSummary counts the files and bytes the build context would contain.
func ContextSummary(dir string) (fileCount int, totalBytes int64, err error) {
	matcher, err := CreateMatcher(dir)
	if err != nil {
		return 0, 0, err
	}
	err = Walk(dir, matcher, func(path string, info os.FileInfo, err error) error {
		if !info.IsDir() {
			fileCount++
			totalBytes += info.Size()
		}
		return nil
	})
	return fileCount, totalBytes, err
}

func readDockerIgnore(dockerIgnorePath string) ([]string, error) {
	var patterns []string
	file, err := os.Open(dockerIgnorePath)
	if err != nil {
		return patterns, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		patterns = append(patterns, scanner.Text())
	}
	return patterns, scanner.Err()
}
