package config

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v2"
)

// DefaultCondaInstallerURL is the installer payload fetched by the conda
// stage when the config doesn't override it. Its integrity is not verified
// in-band; pin a versioned URL for stricter builds.
const DefaultCondaInstallerURL = "https://repo.anaconda.com/miniconda/Miniconda3-latest-Linux-x86_64.sh"

const (
	DefaultCondaPrefix     = "/opt/conda"
	DefaultEnvironmentFile = "environment.yml"
	DefaultWorkdir         = "/workspace"
)

// Base identifies the image every later layer builds on: OS distribution
// version plus, for GPU builds, the CUDA runtime variant.
type Base struct {
	GPU    bool   `json:"gpu,omitempty" yaml:"gpu"`
	Ubuntu string `json:"ubuntu,omitempty" yaml:"ubuntu"`
	CUDA   string `json:"cuda,omitempty" yaml:"cuda"`
	CuDNN  string `json:"cudnn,omitempty" yaml:"cudnn"`
	Flavor string `json:"flavor,omitempty" yaml:"flavor"`
}

// Conda describes the isolated environment manager installation and the
// named environment it materializes. The environment file itself is opaque
// input: workbench never parses it, so the environment's name must be
// declared here rather than read from the file.
type Conda struct {
	InstallerURL    string `json:"installer_url,omitempty" yaml:"installer_url"`
	Prefix          string `json:"prefix,omitempty" yaml:"prefix"`
	EnvironmentFile string `json:"environment_file,omitempty" yaml:"environment_file"`
	EnvironmentName string `json:"environment_name,omitempty" yaml:"environment_name"`
}

// Source is the externally hosted project fetched into the image.
type Source struct {
	Repository string `json:"repository,omitempty" yaml:"repository"`
	Ref        string `json:"ref,omitempty" yaml:"ref"`
}

type Config struct {
	Base           *Base             `json:"base,omitempty" yaml:"base"`
	SystemPackages []string          `json:"system_packages,omitempty" yaml:"system_packages"`
	Conda          *Conda            `json:"conda,omitempty" yaml:"conda"`
	Source         *Source           `json:"source,omitempty" yaml:"source"`
	Workdir        string            `json:"workdir,omitempty" yaml:"workdir"`
	Run            string            `json:"run,omitempty" yaml:"run"`
	Env            map[string]string `json:"env,omitempty" yaml:"env"`
	Image          string            `json:"image,omitempty" yaml:"image"`
}

func DefaultConfig() *Config {
	return &Config{
		Base: &Base{
			GPU:    false,
			Ubuntu: "22.04",
		},
		Conda: &Conda{
			InstallerURL:    DefaultCondaInstallerURL,
			Prefix:          DefaultCondaPrefix,
			EnvironmentFile: DefaultEnvironmentFile,
		},
		Workdir: DefaultWorkdir,
	}
}

func FromYAML(contents []byte) (*Config, error) {
	config := DefaultConfig()
	if err := yaml.Unmarshal(contents, config); err != nil {
		return nil, fmt.Errorf("Failed to parse config yaml: %w", err)
	}
	config.applyDefaults()
	return config, nil
}

// applyDefaults backfills zero values after unmarshalling, since a partial
// `base:` or `conda:` block replaces the default struct wholesale.
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Base == nil {
		c.Base = def.Base
	}
	if c.Base.Ubuntu == "" {
		c.Base.Ubuntu = def.Base.Ubuntu
	}
	if c.Conda == nil {
		c.Conda = def.Conda
	}
	if c.Conda.InstallerURL == "" {
		c.Conda.InstallerURL = def.Conda.InstallerURL
	}
	if c.Conda.Prefix == "" {
		c.Conda.Prefix = def.Conda.Prefix
	}
	if c.Conda.EnvironmentFile == "" {
		c.Conda.EnvironmentFile = def.Conda.EnvironmentFile
	}
	if c.Workdir == "" {
		c.Workdir = def.Workdir
	}
}

func (c *Config) ValidateAndComplete() error {
	errs := []error{}

	if c.Conda.EnvironmentName == "" {
		errs = append(errs, fmt.Errorf("conda.environment_name must be set: the environment file is opaque to workbench, so the name of the environment it declares has to be spelled out in workbench.yaml"))
	}

	if c.Source == nil || c.Source.Repository == "" {
		errs = append(errs, fmt.Errorf("source.repository must be set to the URL of the project to provision"))
	}

	if !strings.HasPrefix(c.Workdir, "/") {
		errs = append(errs, fmt.Errorf("workdir must be an absolute container path, got %q", c.Workdir))
	}

	if strings.Contains(c.Run, "\n") {
		errs = append(errs, fmt.Errorf("'run' must be a single command line, without newlines"))
	}

	if c.Base.GPU {
		if err := c.validateAndCompleteCUDA(); err != nil {
			errs = append(errs, err)
		}
	} else if c.Base.CUDA != "" {
		errs = append(errs, fmt.Errorf("base.cuda is set but base.gpu is false; set gpu: true to build on a CUDA base image"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// BaseImageTag returns the image reference the build starts from.
func (c *Config) BaseImageTag() (string, error) {
	if c.Base.GPU {
		return CUDABaseImageTag(c.Base.CUDA, c.Base.CuDNN, c.Base.Flavor, c.Base.Ubuntu)
	}
	return "ubuntu:" + c.Base.Ubuntu, nil
}

// EnvBinDir is the path inside the image holding the named environment's
// binaries. Activation wiring prepends this to PATH so the environment's
// interpreter shadows any system one.
func (c *Config) EnvBinDir() string {
	return c.Conda.Prefix + "/envs/" + c.Conda.EnvironmentName + "/bin"
}

// EnvPythonPath is the default interpreter the host manifest points editors
// at.
func (c *Config) EnvPythonPath() string {
	return c.EnvBinDir() + "/python"
}
