package docker

import (
	"os"
	"os/exec"
	"strings"

	"github.com/workbench-sh/workbench/pkg/util/console"
)

// BuildOptions are the externally-facing knobs of `workbench build`; the
// Dockerfile itself arrives on stdin so nothing is written into the project
// tree.
type BuildOptions struct {
	ImageName      string
	NoCache        bool
	ProgressOutput string
}

// Build runs `docker buildx build` with dir as the context. A failing step
// fails the whole build; docker retains no usable partial image tag.
func Build(dir string, dockerfileContents string, options BuildOptions) error {
	cmd := exec.Command("docker", buildArgs(options)...)
	cmd.Dir = dir
	cmd.Stdout = os.Stderr // build output is all messaging
	cmd.Stderr = os.Stderr
	cmd.Stdin = strings.NewReader(dockerfileContents)

	console.Debug("$ " + strings.Join(cmd.Args, " "))
	return cmd.Run()
}

func buildArgs(options BuildOptions) []string {
	args := []string{"buildx", "build"}

	if options.NoCache {
		args = append(args, "--no-cache")
	}

	args = append(args,
		"--file", "-",
		"--tag", options.ImageName,
		"--progress", options.ProgressOutput,
		".",
	)
	return args
}
