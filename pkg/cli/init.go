package cli

import (
	// blank import for embeds
	_ "embed"
	"fmt"
	"os"
	"path"

	"github.com/spf13/cobra"

	"github.com/workbench-sh/workbench/pkg/config"
	"github.com/workbench-sh/workbench/pkg/devcontainer"
	"github.com/workbench-sh/workbench/pkg/global"
	"github.com/workbench-sh/workbench/pkg/util/console"
	"github.com/workbench-sh/workbench/pkg/util/files"
)

//go:embed init-templates/workbench.yaml
var workbenchYamlContent []byte

//go:embed init-templates/environment.yml
var environmentYmlContent []byte

//go:embed init-templates/.dockerignore
var dockerignoreContent []byte

func newInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:        "init",
		SuggestFor: []string{"new", "start"},
		Short:      "Configure your project for use with workbench",
		RunE:       initCommand,
		Args:       cobra.MaximumNArgs(0),
	}

	return cmd
}

func initCommand(cmd *cobra.Command, args []string) error {
	console.Infof("\nSetting up the current directory for use with workbench...\n")

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	fileContentMap := map[string][]byte{
		"workbench.yaml":  workbenchYamlContent,
		"environment.yml": environmentYmlContent,
		".dockerignore":   dockerignoreContent,
	}

	for filename, content := range fileContentMap {
		filePath := path.Join(cwd, filename)
		fileExists, err := files.Exists(filePath)
		if err != nil {
			return err
		}

		if fileExists {
			console.Infof("Skipped existing %s", filename)
			continue
		}

		if err := os.WriteFile(filePath, content, 0o644); err != nil {
			return fmt.Errorf("Error writing %s: %w", filePath, err)
		}
		console.Infof("✅ Created %s", filePath)
	}

	if err := scaffoldManifest(cwd); err != nil {
		return err
	}

	console.Infof("\nDone! Edit workbench.yaml, then run 'workbench build' and 'workbench manifest'.")

	return nil
}

// scaffoldManifest writes an initial .devcontainer/devcontainer.json derived
// from the project config, so a freshly initialized directory opens in a
// container without a separate `workbench manifest` run. An existing
// manifest is never touched, and a config that doesn't validate yet (a
// pre-existing work in progress, say) just skips the scaffold.
func scaffoldManifest(cwd string) error {
	manifestPath := path.Join(cwd, devcontainer.Dir, devcontainer.Filename)
	exists, err := files.Exists(manifestPath)
	if err != nil {
		return err
	}
	if exists {
		console.Infof("Skipped existing %s", path.Join(devcontainer.Dir, devcontainer.Filename))
		return nil
	}

	contents, err := os.ReadFile(path.Join(cwd, global.ConfigFilename))
	if err != nil {
		return err
	}
	cfg, err := config.FromYAML(contents)
	if err == nil {
		err = cfg.ValidateAndComplete()
	}
	if err != nil {
		console.Warnf("Skipping %s until %s validates: %s", devcontainer.Filename, global.ConfigFilename, err)
		return nil
	}

	m := devcontainer.FromConfig(cfg, path.Base(cwd))
	if _, err := devcontainer.Write(m, cwd); err != nil {
		return err
	}
	console.Infof("✅ Created %s", manifestPath)
	return nil
}
