package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/workbench-sh/workbench/pkg/config"
	"github.com/workbench-sh/workbench/pkg/errors"
)

func constStage(name string, out string, requires, provides []Condition) Stage {
	return Stage{
		Name:     name,
		Requires: requires,
		Provides: provides,
		Emit: func(cfg *config.Config) (string, error) {
			return out, nil
		},
	}
}

func TestValidateAcceptsConsistentOrder(t *testing.T) {
	stages := []Stage{
		constStage("base", "FROM x", nil, []Condition{CondOS}),
		constStage("tools", "RUN apt", []Condition{CondOS}, []Condition{CondSystemTools}),
		constStage("source", "RUN git clone", []Condition{CondSystemTools}, []Condition{CondSourceTree}),
	}
	require.NoError(t, Validate(stages))
}

func TestValidateRejectsMissingPrecondition(t *testing.T) {
	stages := []Stage{
		constStage("base", "FROM x", nil, []Condition{CondOS}),
		// References the named environment before anything creates it.
		constStage("activation", "RUN echo", []Condition{CondNamedEnv}, []Condition{CondActivation}),
	}
	err := Validate(stages)
	require.Error(t, err)
	require.True(t, errors.IsStageOrder(err))
	require.Contains(t, err.Error(), `stage "activation" requires named-environment`)
}

func TestRenderDropsEmptySections(t *testing.T) {
	stages := []Stage{
		constStage("base", "FROM x", nil, []Condition{CondOS}),
		constStage("tools", "", []Condition{CondOS}, []Condition{CondSystemTools}),
		constStage("source", "RUN git clone", []Condition{CondSystemTools}, []Condition{CondSourceTree}),
	}
	out, err := Render(stages, config.DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, "FROM x\nRUN git clone", out)
}

func TestRenderIsDeterministic(t *testing.T) {
	stages := []Stage{
		constStage("base", "FROM x", nil, []Condition{CondOS}),
		constStage("tools", "RUN apt", []Condition{CondOS}, []Condition{CondSystemTools}),
	}
	cfg := config.DefaultConfig()

	first, err := Render(stages, cfg)
	require.NoError(t, err)
	second, err := Render(stages, cfg)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestRenderFailsOnInvalidOrder(t *testing.T) {
	stages := []Stage{
		constStage("activation", "RUN echo", []Condition{CondNamedEnv}, nil),
	}
	_, err := Render(stages, config.DefaultConfig())
	require.Error(t, err)
	require.True(t, errors.IsStageOrder(err))
}
