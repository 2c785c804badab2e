package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/workbench-sh/workbench/pkg/global"
	"github.com/workbench-sh/workbench/pkg/util/console"
)

func NewRootCommand() (*cobra.Command, error) {
	rootCmd := cobra.Command{
		Use:     "workbench",
		Short:   "Provision reproducible GPU-enabled development environments",
		Version: fmt.Sprintf("%s (built %s)", global.Version, global.BuildTime),
		// This stops errors being printed because we print them in
		// cmd/workbench/main.go
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if !console.IsTTY(os.Stderr) {
				console.SetColor(false)
			}
			if s := os.Getenv("WORKBENCH_LOG_LEVEL"); s != "" {
				if level, err := console.ParseLevel(s); err != nil {
					console.Warnf("Ignoring invalid WORKBENCH_LOG_LEVEL %q", s)
				} else {
					console.SetLevel(level)
				}
			}
			// --verbose wins over the environment
			if global.Verbose {
				console.SetLevel(console.DebugLevel)
			}
			cmd.SilenceUsage = true
		},
		SilenceErrors: true,
	}
	setPersistentFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		newInitCommand(),
		newBuildCommand(),
		newRunCommand(),
		newManifestCommand(),
		newDebugCommand(),
		newDoctorCommand(),
	)

	return &rootCmd, nil
}

func setPersistentFlags(flags *pflag.FlagSet) {
	flags.BoolVarP(&global.Verbose, "verbose", "v", false, "Verbose output")
}
