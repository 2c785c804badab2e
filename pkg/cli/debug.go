package cli

import (
	"github.com/spf13/cobra"

	"github.com/workbench-sh/workbench/pkg/config"
	"github.com/workbench-sh/workbench/pkg/dockerfile"
	"github.com/workbench-sh/workbench/pkg/global"
	"github.com/workbench-sh/workbench/pkg/util/console"
)

func newDebugCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:    "debug",
		Hidden: true,
		Short:  "Generate a Dockerfile from workbench.yaml",
		RunE:   debugCommand,
	}
	return cmd
}

func debugCommand(cmd *cobra.Command, args []string) error {
	cfg, _, err := config.GetConfig(global.ConfigFilename)
	if err != nil {
		return err
	}

	generator := dockerfile.NewGenerator(cfg)
	contents, err := generator.Generate()
	if err != nil {
		return err
	}

	console.Output(contents)
	return nil
}
