package cli

import (
	"github.com/spf13/cobra"

	"github.com/workbench-sh/workbench/pkg/config"
	"github.com/workbench-sh/workbench/pkg/docker"
	"github.com/workbench-sh/workbench/pkg/global"
	"github.com/workbench-sh/workbench/pkg/settings"
	"github.com/workbench-sh/workbench/pkg/util/console"
)

var gpusFlag string

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [command...]",
		Short: "Run the built environment image",
		Long: `Run the built environment image with the project directory bind-mounted
over the image's source tree. With no arguments the image's default entry
command runs: activate the named environment, then launch the project's
entry point.`,
		RunE: runCommand,
		Args: cobra.ArbitraryArgs,
	}
	cmd.Flags().StringVar(&gpusFlag, "gpus", "", "GPU devices to add to the container, in the same format as `docker run --gpus`. Defaults to 'all' for GPU-enabled configs.")
	return cmd
}

func runCommand(cmd *cobra.Command, args []string) error {
	cfg, projectDir, err := config.GetConfig(global.ConfigFilename)
	if err != nil {
		return err
	}

	projectSettings, err := settings.LoadProjectSettings(projectDir)
	if err != nil {
		return err
	}

	imageName := cfg.Image
	if imageName == "" && projectSettings.ImageName != "" {
		imageName = projectSettings.ImageName
	}
	if imageName == "" {
		imageName = config.DockerImageName(projectDir)
	}
	if !projectSettings.LastBuildAt.IsZero() {
		console.Infof("Using %s, built %s", imageName, console.FormatTime(projectSettings.LastBuildAt))
	}

	gpus := gpusFlag
	if gpus == "" && cfg.Base.GPU {
		// All-devices-visible policy; sharing between tenants is the
		// container runtime's problem, not ours.
		gpus = "all"
	}

	return docker.Run(projectDir, docker.RunOptions{
		Image:   imageName,
		Workdir: cfg.Workdir,
		GPUs:    gpus,
		Env:     cfg.Env,
		Args:    args,
	})
}
