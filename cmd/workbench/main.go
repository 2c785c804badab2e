package main

import (
	"os"

	"github.com/workbench-sh/workbench/pkg/cli"
	"github.com/workbench-sh/workbench/pkg/util/console"
)

func main() {
	cmd, err := cli.NewRootCommand()
	if err != nil {
		console.Fatalf("%s", err)
	}

	if err = cmd.Execute(); err != nil {
		console.Errorf("%s", err)
		os.Exit(1)
	}
}
