// Package pipeline models the provisioning steps as an ordered sequence of
// stages, each declaring what must already exist on the image filesystem
// before it runs and what it guarantees exists afterwards. The ordering is
// checked statically at generation time; nothing is re-checked inside the
// container.
package pipeline

import (
	"fmt"
	"sort"
	"strings"

	"github.com/workbench-sh/workbench/pkg/config"
	"github.com/workbench-sh/workbench/pkg/errors"
)

// Condition names a fact about the image filesystem, e.g. "source-tree" or
// "named-environment".
type Condition string

const (
	CondOS          Condition = "os"
	CondCUDARuntime Condition = "cuda-runtime"
	CondSystemTools Condition = "system-tools"
	CondCondaRoot   Condition = "conda-root"
	CondSourceTree  Condition = "source-tree"
	CondNamedEnv    Condition = "named-environment"
	CondActivation  Condition = "shell-activation"
	CondEntry       Condition = "entry"
)

// Stage is one build step. Emit renders its Dockerfile lines; a stage that
// has nothing to contribute for a given config returns an empty string, which
// the generator drops.
type Stage struct {
	Name     string
	Requires []Condition
	Provides []Condition
	Emit     func(cfg *config.Config) (string, error)
}

// Validate checks that the stage sequence is a consistent total order: every
// stage's requirements must be provided by some earlier stage. Returns a
// coded error naming the first violating stage.
func Validate(stages []Stage) error {
	provided := map[Condition]bool{}
	for _, stage := range stages {
		var missing []string
		for _, req := range stage.Requires {
			if !provided[req] {
				missing = append(missing, string(req))
			}
		}
		if len(missing) > 0 {
			sort.Strings(missing)
			return errors.StageOrder(fmt.Sprintf("stage %q requires %s, which no earlier stage provides", stage.Name, strings.Join(missing, ", ")))
		}
		for _, p := range stage.Provides {
			provided[p] = true
		}
	}
	return nil
}

// Render validates the sequence and joins each stage's non-empty output with
// newlines. The output is a pure function of the config: identical inputs
// yield byte-identical programs.
func Render(stages []Stage, cfg *config.Config) (string, error) {
	if err := Validate(stages); err != nil {
		return "", err
	}

	sections := []string{}
	for _, stage := range stages {
		section, err := stage.Emit(cfg)
		if err != nil {
			return "", fmt.Errorf("stage %q: %w", stage.Name, err)
		}
		if section != "" {
			sections = append(sections, section)
		}
	}
	return strings.Join(sections, "\n"), nil
}
