package cli

import (
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Chdir(dir))

	require.NoError(t, initCommand(nil, []string{}))

	require.FileExists(t, path.Join(dir, "workbench.yaml"))
	require.FileExists(t, path.Join(dir, "environment.yml"))
	require.FileExists(t, path.Join(dir, ".dockerignore"))
	require.FileExists(t, path.Join(dir, ".devcontainer", "devcontainer.json"))
}

func TestInitSkipsExistingFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Chdir(dir))

	existing := path.Join(dir, "environment.yml")
	require.NoError(t, os.WriteFile(existing, []byte("name: mine"), 0o644))

	require.NoError(t, initCommand(nil, []string{}))

	bs, err := os.ReadFile(existing)
	require.NoError(t, err)
	require.Equal(t, "name: mine", string(bs))
}

func TestInitSkipsExistingManifest(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Chdir(dir))

	require.NoError(t, os.MkdirAll(path.Join(dir, ".devcontainer"), 0o755))
	existing := path.Join(dir, ".devcontainer", "devcontainer.json")
	require.NoError(t, os.WriteFile(existing, []byte("{}"), 0o644))

	require.NoError(t, initCommand(nil, []string{}))

	bs, err := os.ReadFile(existing)
	require.NoError(t, err)
	require.Equal(t, "{}", string(bs))
}

func TestInitSkipsManifestWhenConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Chdir(dir))

	// A pre-existing config missing required fields stops the scaffold but
	// not the rest of init.
	require.NoError(t, os.WriteFile(path.Join(dir, "workbench.yaml"), []byte("run: python main.py"), 0o644))

	require.NoError(t, initCommand(nil, []string{}))

	require.FileExists(t, path.Join(dir, "environment.yml"))
	require.NoFileExists(t, path.Join(dir, ".devcontainer", "devcontainer.json"))
}
