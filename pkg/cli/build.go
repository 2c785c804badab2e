package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/workbench-sh/workbench/pkg/config"
	"github.com/workbench-sh/workbench/pkg/global"
	"github.com/workbench-sh/workbench/pkg/image"
	"github.com/workbench-sh/workbench/pkg/settings"
	"github.com/workbench-sh/workbench/pkg/util/console"
)

var (
	buildTag            string
	buildNoCache        bool
	buildProgressOutput string
)

func newBuildCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the environment image from workbench.yaml",
		Args:  cobra.NoArgs,
		RunE:  buildCommand,
	}
	cmd.Flags().StringVarP(&buildTag, "tag", "t", "", "A name for the built image in the form 'repository:tag'")
	cmd.Flags().BoolVar(&buildNoCache, "no-cache", false, "Do not use cache when building the image")
	addBuildProgressOutputFlag(cmd)
	return cmd
}

func buildCommand(cmd *cobra.Command, args []string) error {
	cfg, projectDir, err := config.GetConfig(global.ConfigFilename)
	if err != nil {
		return err
	}

	imageName := cfg.Image
	if buildTag != "" {
		imageName = buildTag
	}
	if imageName == "" {
		imageName = config.DockerImageName(projectDir)
	}

	if err := image.Build(cmd.Context(), cfg, projectDir, imageName, buildNoCache, progressOutput()); err != nil {
		return err
	}

	console.Infof("\nImage built as %s", imageName)
	return nil
}

func addBuildProgressOutputFlag(cmd *cobra.Command) {
	defaultOutput := "auto"
	if os.Getenv("TERM") == "dumb" {
		defaultOutput = "plain"
	}
	cmd.Flags().StringVar(&buildProgressOutput, "progress", defaultOutput, "Set type of build progress output, 'auto' (default), 'tty' or 'plain'")
}

// progressOutput resolves the build progress renderer: an explicit flag wins,
// then the user's saved default.
func progressOutput() string {
	if buildProgressOutput != "auto" {
		return buildProgressOutput
	}
	userSettings, err := settings.LoadUserSettings()
	if err == nil && userSettings.ProgressOutput != "" {
		return userSettings.ProgressOutput
	}
	return buildProgressOutput
}
