package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromYAMLDefaults(t *testing.T) {
	conf, err := FromYAML([]byte(""))
	require.NoError(t, err)
	require.Equal(t, "22.04", conf.Base.Ubuntu)
	require.False(t, conf.Base.GPU)
	require.Equal(t, DefaultCondaPrefix, conf.Conda.Prefix)
	require.Equal(t, DefaultEnvironmentFile, conf.Conda.EnvironmentFile)
	require.Equal(t, DefaultWorkdir, conf.Workdir)
}

func TestFromYAMLPartialBlocksKeepDefaults(t *testing.T) {
	conf, err := FromYAML([]byte(`
base:
  gpu: true
conda:
  environment_name: proj_env
`))
	require.NoError(t, err)
	require.True(t, conf.Base.GPU)
	require.Equal(t, "22.04", conf.Base.Ubuntu)
	require.Equal(t, DefaultCondaInstallerURL, conf.Conda.InstallerURL)
	require.Equal(t, "proj_env", conf.Conda.EnvironmentName)
}

func TestValidateRequiresEnvironmentNameAndRepository(t *testing.T) {
	conf, err := FromYAML([]byte(""))
	require.NoError(t, err)

	err = conf.ValidateAndComplete()
	require.Error(t, err)
	require.Contains(t, err.Error(), "conda.environment_name")
	require.Contains(t, err.Error(), "source.repository")
}

func TestValidateRejectsCUDAWithoutGPU(t *testing.T) {
	conf, err := FromYAML([]byte(`
base:
  cuda: "11.8"
conda:
  environment_name: proj_env
source:
  repository: https://example.org/proj.git
`))
	require.NoError(t, err)

	err = conf.ValidateAndComplete()
	require.Error(t, err)
	require.Contains(t, err.Error(), "base.gpu is false")
}

func TestValidateCompletesCUDADefaults(t *testing.T) {
	conf, err := FromYAML([]byte(`
base:
  gpu: true
conda:
  environment_name: proj_env
source:
  repository: https://example.org/proj.git
`))
	require.NoError(t, err)
	require.NoError(t, conf.ValidateAndComplete())
	require.Equal(t, DefaultCUDA, conf.Base.CUDA)
	require.Equal(t, DefaultFlavor, conf.Base.Flavor)

	tag, err := conf.BaseImageTag()
	require.NoError(t, err)
	require.Equal(t, "nvidia/cuda:11.8.0-cudnn8-runtime-ubuntu22.04", tag)
}

func TestBaseImageTagCPU(t *testing.T) {
	conf, err := FromYAML([]byte(""))
	require.NoError(t, err)

	tag, err := conf.BaseImageTag()
	require.NoError(t, err)
	require.Equal(t, "ubuntu:22.04", tag)
}

func TestValidateRejectsMultilineRun(t *testing.T) {
	conf, err := FromYAML([]byte(`
conda:
  environment_name: proj_env
source:
  repository: https://example.org/proj.git
run: "python a.py\npython b.py"
`))
	require.NoError(t, err)

	err = conf.ValidateAndComplete()
	require.Error(t, err)
	require.Contains(t, err.Error(), "single command line")
}

func TestEnvPaths(t *testing.T) {
	conf, err := FromYAML([]byte(`
conda:
  environment_name: proj_env
`))
	require.NoError(t, err)
	require.Equal(t, "/opt/conda/envs/proj_env/bin", conf.EnvBinDir())
	require.Equal(t, "/opt/conda/envs/proj_env/bin/python", conf.EnvPythonPath())
}
