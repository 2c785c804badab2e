package docker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildArgs(t *testing.T) {
	args := buildArgs(BuildOptions{
		ImageName:      "workbench-proj",
		ProgressOutput: "auto",
	})
	require.Equal(t, []string{
		"buildx", "build",
		"--file", "-",
		"--tag", "workbench-proj",
		"--progress", "auto",
		".",
	}, args)
}

func TestBuildArgsNoCache(t *testing.T) {
	args := buildArgs(BuildOptions{
		ImageName:      "workbench-proj",
		NoCache:        true,
		ProgressOutput: "plain",
	})
	require.Contains(t, args, "--no-cache")
}

func TestRunArgs(t *testing.T) {
	args := runArgs("/home/me/proj", RunOptions{
		Image:   "workbench-proj",
		Workdir: "/workspace",
		GPUs:    "all",
		Env: map[string]string{
			"PYTHONPATH": "/workspace",
			"HF_HOME":    "/workspace/.cache",
		},
	}, false)

	require.Equal(t, []string{
		"run",
		"--interactive",
		"--rm",
		"--shm-size", "8G",
		"--mount", "type=bind,source=/home/me/proj,destination=/workspace",
		"--workdir=/workspace",
		"--gpus", "all",
		"--env", "HF_HOME=/workspace/.cache",
		"--env", "PYTHONPATH=/workspace",
		"workbench-proj",
	}, args)
}

func TestRunArgsNoGPU(t *testing.T) {
	args := runArgs("/home/me/proj", RunOptions{
		Image:   "workbench-proj",
		Workdir: "/workspace",
		Args:    []string{"python", "inference.py"},
	}, true)

	require.NotContains(t, args, "--gpus")
	require.Contains(t, args, "--tty")
	require.Equal(t, []string{"workbench-proj", "python", "inference.py"}, args[len(args)-3:])
}
