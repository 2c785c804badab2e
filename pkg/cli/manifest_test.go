package cli

import (
	"os"
	"path"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const manifestTestConfig = `base:
  gpu: true
  ubuntu: "22.04"
  cuda: "11.8"
conda:
  environment_name: proj_env
source:
  repository: https://example.org/proj.git
run: python inference.py
`

func TestManifest(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Chdir(dir))
	require.NoError(t, os.WriteFile(path.Join(dir, "workbench.yaml"), []byte(manifestTestConfig), 0o644))

	require.NoError(t, manifestCommand(nil, []string{}))

	require.FileExists(t, path.Join(dir, "Dockerfile"))
	require.FileExists(t, path.Join(dir, ".devcontainer", "devcontainer.json"))

	bs, err := os.ReadFile(path.Join(dir, "Dockerfile"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(bs), "# syntax = docker/dockerfile:1.2\n"))
}

func TestManifestBacksUpEditedDockerfile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Chdir(dir))
	require.NoError(t, os.WriteFile(path.Join(dir, "workbench.yaml"), []byte(manifestTestConfig), 0o644))
	require.NoError(t, os.WriteFile(path.Join(dir, "Dockerfile"), []byte("FROM scratch\n"), 0o644))

	require.NoError(t, manifestCommand(nil, []string{}))

	bs, err := os.ReadFile(path.Join(dir, dockerfileBackupName))
	require.NoError(t, err)
	require.Equal(t, "FROM scratch\n", string(bs))

	generated, err := os.ReadFile(path.Join(dir, "Dockerfile"))
	require.NoError(t, err)
	require.NotEqual(t, "FROM scratch\n", string(generated))
}

func TestManifestIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Chdir(dir))
	require.NoError(t, os.WriteFile(path.Join(dir, "workbench.yaml"), []byte(manifestTestConfig), 0o644))

	require.NoError(t, manifestCommand(nil, []string{}))
	require.NoError(t, manifestCommand(nil, []string{}))

	// Regenerating identical content must not create a backup.
	require.NoFileExists(t, path.Join(dir, dockerfileBackupName))
}
