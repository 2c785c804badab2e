// Package dockerfile renders a validated provisioning pipeline into a
// Dockerfile. The build flow is strictly linear: base image, system
// packages, conda install, source fetch, environment creation, shell
// activation, entry command. There are no retries or fallbacks anywhere; any
// failing step fails the whole build.
package dockerfile

import (
	"github.com/workbench-sh/workbench/pkg/config"
	"github.com/workbench-sh/workbench/pkg/pipeline"
)

const header = "# syntax = docker/dockerfile:1.2"

type Generator struct {
	Config *config.Config

	stages []pipeline.Stage
}

func NewGenerator(config *config.Config) *Generator {
	return &Generator{
		Config: config,
		stages: DefaultStages(),
	}
}

// Generate renders the full Dockerfile. Output is deterministic: the same
// config produces byte-identical text on every call.
func (g *Generator) Generate() (string, error) {
	body, err := pipeline.Render(g.stages, g.Config)
	if err != nil {
		return "", err
	}
	return header + "\n" + body, nil
}
