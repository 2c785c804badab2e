// Package image orchestrates a full provisioning build: daemon check,
// Dockerfile generation, docker build, build record.
package image

import (
	"context"
	"time"

	"github.com/workbench-sh/workbench/pkg/config"
	"github.com/workbench-sh/workbench/pkg/docker"
	"github.com/workbench-sh/workbench/pkg/dockerfile"
	"github.com/workbench-sh/workbench/pkg/dockerignore"
	"github.com/workbench-sh/workbench/pkg/global"
	"github.com/workbench-sh/workbench/pkg/settings"
	"github.com/workbench-sh/workbench/pkg/util/console"
)

const pingTimeout = 5 * time.Second

// Build provisions the environment image for a project. Every step either
// fully succeeds or the whole build fails; there is no per-step recovery.
func Build(ctx context.Context, cfg *config.Config, dir string, imageName string, noCache bool, progressOutput string) error {
	if err := docker.Ping(ctx, pingTimeout); err != nil {
		return err
	}

	console.Infof("Building environment image from %s as %s...", global.ConfigFilename, imageName)

	generator := dockerfile.NewGenerator(cfg)
	contents, err := generator.Generate()
	if err != nil {
		return err
	}

	fileCount, totalBytes, err := dockerignore.ContextSummary(dir)
	if err != nil {
		return err
	}
	console.Debugf("Build context: %d files, %d bytes", fileCount, totalBytes)

	err = docker.Build(dir, contents, docker.BuildOptions{
		ImageName:      imageName,
		NoCache:        noCache,
		ProgressOutput: progressOutput,
	})
	if err != nil {
		return err
	}

	projectSettings, err := settings.LoadProjectSettings(dir)
	if err != nil {
		return err
	}
	if err := projectSettings.RecordBuild(imageName); err != nil {
		console.Warnf("Failed to record build: %s", err)
	}

	return nil
}
