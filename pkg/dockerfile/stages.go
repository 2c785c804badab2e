package dockerfile

import (
	"fmt"
	"strings"

	"github.com/workbench-sh/workbench/pkg/config"
	"github.com/workbench-sh/workbench/pkg/pipeline"
)

const installerPayloadPath = "/tmp/miniconda.sh"

// DefaultStages returns the provisioning sequence in its one valid order:
// base image, OS packages, environment manager, source tree, named
// environment, shell activation, entry command. Each stage declares its
// filesystem pre- and postconditions so pipeline.Validate can prove the
// ordering instead of trusting the slice literal.
func DefaultStages() []pipeline.Stage {
	return []pipeline.Stage{
		{
			Name:     "base",
			Provides: []pipeline.Condition{pipeline.CondOS, pipeline.CondCUDARuntime},
			Emit:     emitBase,
		},
		{
			Name:     "system-packages",
			Requires: []pipeline.Condition{pipeline.CondOS},
			Provides: []pipeline.Condition{pipeline.CondSystemTools},
			Emit:     emitSystemPackages,
		},
		{
			Name:     "conda-install",
			Requires: []pipeline.Condition{pipeline.CondSystemTools},
			Provides: []pipeline.Condition{pipeline.CondCondaRoot},
			Emit:     emitCondaInstall,
		},
		{
			Name:     "source-fetch",
			Requires: []pipeline.Condition{pipeline.CondSystemTools},
			Provides: []pipeline.Condition{pipeline.CondSourceTree},
			Emit:     emitSourceFetch,
		},
		{
			Name:     "conda-environment",
			Requires: []pipeline.Condition{pipeline.CondCondaRoot, pipeline.CondSourceTree},
			Provides: []pipeline.Condition{pipeline.CondNamedEnv},
			Emit:     emitCondaEnvironment,
		},
		{
			Name:     "shell-activation",
			Requires: []pipeline.Condition{pipeline.CondCondaRoot, pipeline.CondNamedEnv},
			Provides: []pipeline.Condition{pipeline.CondActivation},
			Emit:     emitShellActivation,
		},
		{
			Name:     "entry",
			Requires: []pipeline.Condition{pipeline.CondNamedEnv, pipeline.CondActivation},
			Provides: []pipeline.Condition{pipeline.CondEntry},
			Emit:     emitEntry,
		},
	}
}

func emitBase(cfg *config.Config) (string, error) {
	baseImage, err := cfg.BaseImageTag()
	if err != nil {
		return "", err
	}
	lines := []string{
		"FROM " + baseImage,
		"ENV DEBIAN_FRONTEND=noninteractive",
		"ENV PYTHONUNBUFFERED=1",
	}
	if cfg.Base.GPU {
		lines = append(lines, `ENV LD_LIBRARY_PATH=$LD_LIBRARY_PATH:/usr/local/nvidia/lib64:/usr/local/nvidia/bin`)
	}
	if env := envLine(cfg); env != "" {
		lines = append(lines, env)
	}
	return strings.Join(lines, "\n"), nil
}

func emitSystemPackages(cfg *config.Config) (string, error) {
	packages := cfg.SystemPackages
	if len(packages) == 0 {
		return "", nil
	}
	// The apt index cache is discarded in the same layer: smaller image, at
	// the cost of re-fetching the index for any later install.
	return "RUN apt-get update -qq && apt-get install -qqy --no-install-recommends " +
		strings.Join(packages, " ") +
		" && rm -rf /var/lib/apt/lists/*", nil
}

func emitCondaInstall(cfg *config.Config) (string, error) {
	// Batch install into the fixed prefix, then drop the installer payload.
	// The PATH export makes conda visible to every later build step; `conda
	// init bash` registers the shell hook that interactive shells need, and
	// that the activation stage appends after.
	return fmt.Sprintf(`RUN wget -q -O %[1]s %[2]s && \
	bash %[1]s -b -p %[3]s && \
	rm %[1]s
ENV PATH=%[3]s/bin:$PATH
RUN conda init bash`, installerPayloadPath, cfg.Conda.InstallerURL, cfg.Conda.Prefix), nil
}

func emitSourceFetch(cfg *config.Config) (string, error) {
	clone := "git clone"
	if cfg.Source.Ref != "" {
		clone += " --branch " + cfg.Source.Ref
	}
	return fmt.Sprintf(`WORKDIR %s
RUN %s %s .`, cfg.Workdir, clone, cfg.Source.Repository), nil
}

func emitCondaEnvironment(cfg *config.Config) (string, error) {
	// The environment file is opaque input: constraint resolution is
	// delegated entirely to conda, and an unresolvable set fails the build
	// with no partial environment left behind.
	return "RUN conda env create -f " + cfg.Conda.EnvironmentFile, nil
}

func emitShellActivation(cfg *config.Config) (string, error) {
	activate := "conda activate " + cfg.Conda.EnvironmentName
	pathExport := "export PATH=" + cfg.EnvBinDir() + ":$PATH"

	// Append-only and guarded: re-running the wiring must not stack a second
	// activation under the first. The PATH override comes after conda's own
	// shell hook so the hook can't clobber it.
	return appendOnce(activate) + "\n" + appendOnce(pathExport), nil
}

func appendOnce(line string) string {
	return fmt.Sprintf("RUN grep -qxF '%s' /root/.bashrc || echo '%s' >> /root/.bashrc", line, line)
}

func emitEntry(cfg *config.Config) (string, error) {
	run := cfg.Run
	if run == "" {
		run = "bash"
	}
	// Activation is chained with && so a missing environment exits nonzero
	// instead of silently running against the system interpreter.
	return fmt.Sprintf(`CMD ["/bin/bash", "-lc", "conda activate %s && exec %s"]`, cfg.Conda.EnvironmentName, run), nil
}
