package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/workbench-sh/workbench/pkg/config"
	"github.com/workbench-sh/workbench/pkg/docker"
	"github.com/workbench-sh/workbench/pkg/dockerfile"
	"github.com/workbench-sh/workbench/pkg/global"
	"github.com/workbench-sh/workbench/pkg/pipeline"
	"github.com/workbench-sh/workbench/pkg/util/console"
	"github.com/workbench-sh/workbench/pkg/util/files"
)

const doctorPingTimeout = 5 * time.Second

func newDoctorCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check for common issues with your project",
		Args:  cobra.NoArgs,
		RunE:  doctorCommand,
	}
	return cmd
}

func doctorCommand(cmd *cobra.Command, args []string) error {
	console.Info("Checking for issues with your project.\n")

	cfg, projectDir, err := config.GetConfig(global.ConfigFilename)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	console.Infof("✅ %s parses and validates", global.ConfigFilename)

	if err := pipeline.Validate(dockerfile.DefaultStages()); err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}
	console.Info("✅ provisioning stages form a consistent order")

	if err := docker.Ping(cmd.Context(), doctorPingTimeout); err != nil {
		return err
	}
	console.Info("✅ docker daemon is reachable")

	// The environment file lives in the source tree inside the image, but a
	// dev workspace usually mirrors it; a missing local copy is the most
	// common cause of a failing conda-environment stage.
	envFile := filepath.Join(projectDir, cfg.Conda.EnvironmentFile)
	exists, err := files.Exists(envFile)
	if err != nil {
		return err
	}
	if exists {
		isDir, err := files.IsDir(envFile)
		if err != nil {
			return err
		}
		if isDir {
			return fmt.Errorf("%s is a directory, expected an environment file", cfg.Conda.EnvironmentFile)
		}
		console.Infof("✅ %s is present", cfg.Conda.EnvironmentFile)
	} else {
		console.Warnf("⚠ %s not found locally; the build will rely on the cloned source tree providing it", cfg.Conda.EnvironmentFile)
	}

	if cfg.Base.GPU {
		console.Info("ℹ GPU build: a host driver incompatible with the image's CUDA runtime only surfaces at container run time")
	}

	return nil
}
