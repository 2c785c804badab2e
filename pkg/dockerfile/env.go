package dockerfile

import (
	"maps"
	"slices"

	"github.com/workbench-sh/workbench/pkg/config"
)

// envLine renders the config's extra env vars as a single ENV instruction,
// keys sorted so output is stable.
func envLine(c *config.Config) string {
	if len(c.Env) == 0 {
		return ""
	}

	out := "ENV"
	for _, name := range slices.Sorted(maps.Keys(c.Env)) {
		out = out + " " + name + "=" + c.Env[name]
	}
	return out
}
