// Package devcontainer emits the host integration manifest: the declarative
// file a host development tool consumes at container-creation time. Nothing
// in here affects the image build; the manifest and the Dockerfile only meet
// through the paths and names they both take from the config.
package devcontainer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/workbench-sh/workbench/pkg/config"
	"github.com/workbench-sh/workbench/pkg/util/files"
)

const (
	Dir      = ".devcontainer"
	Filename = "devcontainer.json"
)

type BuildOptions struct {
	Context    string `json:"context"`
	Dockerfile string `json:"dockerfile"`
}

type VSCode struct {
	Settings   map[string]interface{} `json:"settings,omitempty"`
	Extensions []string               `json:"extensions,omitempty"`
}

type Customizations struct {
	VSCode *VSCode `json:"vscode,omitempty"`
}

type Manifest struct {
	Name              string            `json:"name"`
	Build             BuildOptions      `json:"build"`
	WorkspaceMount    string            `json:"workspaceMount"`
	WorkspaceFolder   string            `json:"workspaceFolder"`
	RunArgs           []string          `json:"runArgs,omitempty"`
	ContainerEnv      map[string]string `json:"containerEnv,omitempty"`
	Customizations    *Customizations   `json:"customizations,omitempty"`
	PostCreateCommand string            `json:"postCreateCommand,omitempty"`
}

// FromConfig derives the manifest from the project config. The bind mount
// maps the host workspace over the image's source tree; device visibility is
// all-or-nothing, with any finer GPU arbitration left to the container
// runtime.
func FromConfig(cfg *config.Config, name string) *Manifest {
	m := &Manifest{
		Name: name,
		Build: BuildOptions{
			Context:    "..",
			Dockerfile: "../Dockerfile",
		},
		WorkspaceMount:  fmt.Sprintf("source=${localWorkspaceFolder},target=%s,type=bind", cfg.Workdir),
		WorkspaceFolder: cfg.Workdir,
		ContainerEnv: map[string]string{
			"PYTHONPATH": cfg.Workdir,
		},
		Customizations: &Customizations{
			VSCode: &VSCode{
				Settings: map[string]interface{}{
					"python.defaultInterpreterPath":            cfg.EnvPythonPath(),
					"python.linting.enabled":                   true,
					"python.formatting.provider":               "autopep8",
					"terminal.integrated.defaultProfile.linux": "bash",
				},
				Extensions: []string{"ms-python.python"},
			},
		},
		// Re-source the shell startup configuration so activation takes
		// effect in the host tool's attached terminal without a fresh login
		// shell.
		PostCreateCommand: "bash -ic 'source /root/.bashrc'",
	}

	if cfg.Base.GPU {
		m.RunArgs = append(m.RunArgs, "--gpus", "all")
	}
	for k, v := range cfg.Env {
		m.ContainerEnv[k] = v
	}

	return m
}

// JSON renders the manifest with stable formatting, for WriteIfDifferent.
func (m *Manifest) JSON() (string, error) {
	bs, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", err
	}
	return string(bs) + "\n", nil
}

// Write places the manifest at <projectDir>/.devcontainer/devcontainer.json,
// leaving the file untouched when its content hasn't changed.
func Write(m *Manifest, projectDir string) (string, error) {
	content, err := m.JSON()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(projectDir, Dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(dir, Filename)
	if err := files.WriteIfDifferent(path, content); err != nil {
		return "", err
	}
	return path, nil
}
