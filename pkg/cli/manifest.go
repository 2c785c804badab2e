package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/workbench-sh/workbench/pkg/config"
	"github.com/workbench-sh/workbench/pkg/devcontainer"
	"github.com/workbench-sh/workbench/pkg/dockerfile"
	"github.com/workbench-sh/workbench/pkg/global"
	"github.com/workbench-sh/workbench/pkg/util/console"
	"github.com/workbench-sh/workbench/pkg/util/files"
)

func newManifestCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "Write the host integration manifest (.devcontainer/devcontainer.json)",
		Long: `Write the manifest a host development tool consumes at container-creation
time: build context and recipe reference, workspace bind mount, accelerator
visibility, default interpreter path and the post-create command that
re-sources the shell startup configuration.`,
		Args: cobra.NoArgs,
		RunE: manifestCommand,
	}
	return cmd
}

const dockerfileBackupName = "Dockerfile.workbench.bak"

func manifestCommand(cmd *cobra.Command, args []string) error {
	cfg, projectDir, err := config.GetConfig(global.ConfigFilename)
	if err != nil {
		return err
	}

	// The manifest's recipe reference points at a real file, so the
	// Dockerfile is materialized alongside it rather than streamed to docker
	// the way `workbench build` does.
	generator := dockerfile.NewGenerator(cfg)
	contents, err := generator.Generate()
	if err != nil {
		return err
	}
	dockerfilePath := filepath.Join(projectDir, "Dockerfile")
	if err := backupDockerfile(projectDir, dockerfilePath, contents+"\n"); err != nil {
		return err
	}
	if err := files.WriteIfDifferent(dockerfilePath, contents+"\n"); err != nil {
		return err
	}
	console.Infof("Wrote %s", dockerfilePath)

	m := devcontainer.FromConfig(cfg, filepath.Base(projectDir))
	path, err := devcontainer.Write(m, projectDir)
	if err != nil {
		return err
	}

	console.Infof("Wrote %s", path)
	return nil
}

// backupDockerfile preserves a Dockerfile that differs from what we're about
// to write, so a hand-edited recipe isn't silently clobbered.
func backupDockerfile(projectDir, dockerfilePath, generated string) error {
	exists, err := files.Exists(dockerfilePath)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}
	existing, err := os.ReadFile(dockerfilePath)
	if err != nil {
		return err
	}
	if string(existing) == generated {
		return nil
	}
	backupPath := filepath.Join(projectDir, dockerfileBackupName)
	if err := files.CopyFile(dockerfilePath, backupPath); err != nil {
		return err
	}
	console.Infof("Backed up existing Dockerfile to %s", backupPath)
	return nil
}
