package docker

import (
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/workbench-sh/workbench/pkg/util/console"
)

// RunOptions describe a container instantiation: the host workspace bound
// over the image's source tree, accelerator visibility, and extra env vars.
type RunOptions struct {
	Image   string
	Workdir string
	GPUs    string
	Env     map[string]string
	Args    []string
}

// Run starts a container in the foreground. With no Args the image's default
// entry command runs; the exit code is whatever that process returns.
func Run(dir string, options RunOptions) error {
	cmd := exec.Command("docker", runArgs(dir, options, console.IsTerminal())...)
	cmd.Env = os.Environ()
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	console.Debug("$ " + strings.Join(cmd.Args, " "))
	return cmd.Run()
}

func runArgs(dir string, options RunOptions, tty bool) []string {
	args := []string{
		"run",
		"--interactive",
		"--rm",
		"--shm-size", "8G", // https://github.com/pytorch/pytorch/issues/2244
		"--mount", "type=bind,source=" + dir + ",destination=" + options.Workdir,
		"--workdir=" + options.Workdir,
	}

	if options.GPUs != "" {
		args = append(args, "--gpus", options.GPUs)
	}
	for _, name := range sortedKeys(options.Env) {
		args = append(args, "--env", name+"="+options.Env[name])
	}
	if tty {
		args = append(args, "--tty")
	}

	args = append(args, options.Image)
	args = append(args, options.Args...)
	return args
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
