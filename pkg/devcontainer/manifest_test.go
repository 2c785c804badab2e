package devcontainer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/workbench-sh/workbench/pkg/config"
)

func testConfig(t *testing.T, yaml string) *config.Config {
	t.Helper()
	conf, err := config.FromYAML([]byte(yaml))
	require.NoError(t, err)
	require.NoError(t, conf.ValidateAndComplete())
	return conf
}

func TestFromConfigGPU(t *testing.T) {
	conf := testConfig(t, `
base:
  gpu: true
conda:
  environment_name: proj_env
source:
  repository: https://example.org/proj.git
env:
  HF_HOME: /workspace/.cache
`)

	m := FromConfig(conf, "proj")

	require.Equal(t, "proj", m.Name)
	require.Equal(t, []string{"--gpus", "all"}, m.RunArgs)
	require.Equal(t, "source=${localWorkspaceFolder},target=/workspace,type=bind", m.WorkspaceMount)
	require.Equal(t, "/workspace", m.WorkspaceFolder)
	require.Equal(t, "/workspace", m.ContainerEnv["PYTHONPATH"])
	require.Equal(t, "/workspace/.cache", m.ContainerEnv["HF_HOME"])
	require.Equal(t, "/opt/conda/envs/proj_env/bin/python", m.Customizations.VSCode.Settings["python.defaultInterpreterPath"])
	require.Equal(t, "bash -ic 'source /root/.bashrc'", m.PostCreateCommand)
}

func TestFromConfigCPUOmitsGPUFlags(t *testing.T) {
	conf := testConfig(t, `
conda:
  environment_name: proj_env
source:
  repository: https://example.org/proj.git
`)

	// Manifest generation never inspects the host: no GPU in the config means
	// no device flags, and a GPU config emits them whether or not a device is
	// actually present.
	m := FromConfig(conf, "proj")
	require.Empty(t, m.RunArgs)
}

func TestWriteIsIdempotent(t *testing.T) {
	conf := testConfig(t, `
conda:
  environment_name: proj_env
source:
  repository: https://example.org/proj.git
`)
	m := FromConfig(conf, "proj")

	projectDir := t.TempDir()
	path, err := Write(m, projectDir)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(projectDir, ".devcontainer", "devcontainer.json"), path)

	first, err := os.Stat(path)
	require.NoError(t, err)

	_, err = Write(m, projectDir)
	require.NoError(t, err)
	second, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, first.ModTime(), second.ModTime())
}

func TestJSONIsStable(t *testing.T) {
	conf := testConfig(t, `
conda:
  environment_name: proj_env
source:
  repository: https://example.org/proj.git
`)
	m := FromConfig(conf, "proj")

	first, err := m.JSON()
	require.NoError(t, err)
	second, err := m.JSON()
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Contains(t, first, `"workspaceFolder": "/workspace"`)
}
