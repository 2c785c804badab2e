package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/go-version"

	"github.com/workbench-sh/workbench/pkg/util/console"
)

const (
	MinimumCUDAVersion = "11.6"
	DefaultCUDA        = "11.8"
	DefaultFlavor      = "runtime"
)

// cudaRelease pins a supported CUDA minor version to the exact patch tag
// published on Docker Hub, the cuDNN major baked into its tags, and the
// Ubuntu versions nvidia builds it for. An incompatible host driver only
// surfaces at container run time, never at build time, so this matrix is the
// last line of build-time checking we get.
type cudaRelease struct {
	Patch   string
	CuDNN   string // empty for releases whose tags drop the cuDNN major
	Ubuntus []string
}

var cudaReleases = map[string]cudaRelease{
	"11.6": {Patch: "11.6.2", CuDNN: "8", Ubuntus: []string{"18.04", "20.04"}},
	"11.7": {Patch: "11.7.1", CuDNN: "8", Ubuntus: []string{"18.04", "20.04", "22.04"}},
	"11.8": {Patch: "11.8.0", CuDNN: "8", Ubuntus: []string{"18.04", "20.04", "22.04"}},
	"12.1": {Patch: "12.1.1", CuDNN: "8", Ubuntus: []string{"20.04", "22.04"}},
	"12.2": {Patch: "12.2.2", CuDNN: "8", Ubuntus: []string{"20.04", "22.04"}},
	"12.4": {Patch: "12.4.1", CuDNN: "", Ubuntus: []string{"22.04", "24.04"}},
	"12.6": {Patch: "12.6.3", CuDNN: "", Ubuntus: []string{"22.04", "24.04"}},
}

var validFlavors = []string{"base", "runtime", "devel"}

// CUDABaseImageTag resolves a CUDA/cuDNN/flavor/Ubuntu combination to an
// nvidia/cuda image reference, or errors if nvidia doesn't publish that
// combination.
func CUDABaseImageTag(cuda string, cudnn string, flavor string, ubuntu string) (string, error) {
	if cuda == "" {
		cuda = DefaultCUDA
	}
	if flavor == "" {
		flavor = DefaultFlavor
	}
	if !sliceContains(validFlavors, flavor) {
		return "", fmt.Errorf("Invalid base image flavor %q. Valid flavors are: %s", flavor, strings.Join(validFlavors, ", "))
	}

	v, err := version.NewVersion(cuda)
	if err != nil {
		return "", fmt.Errorf("Invalid CUDA version %q: %w", cuda, err)
	}
	if v.LessThan(version.Must(version.NewVersion(MinimumCUDAVersion))) {
		return "", fmt.Errorf("CUDA version %s is no longer supported. The minimum supported version is %s", cuda, MinimumCUDAVersion)
	}

	minor := minorVersion(v)
	release, ok := cudaReleases[minor]
	if !ok {
		return "", fmt.Errorf("Unknown CUDA version %s. Supported versions are: %s", cuda, strings.Join(supportedCUDAs(), ", "))
	}

	if !sliceContains(release.Ubuntus, ubuntu) {
		return "", fmt.Errorf("CUDA %s images are not published for Ubuntu %s. Published for: %s", minor, ubuntu, strings.Join(release.Ubuntus, ", "))
	}

	if cudnn != "" && release.CuDNN != "" && cudnn != release.CuDNN {
		return "", fmt.Errorf("CUDA %s images bundle cuDNN %s, not cuDNN %s", minor, release.CuDNN, cudnn)
	}

	cudnnPart := "cudnn"
	if release.CuDNN != "" {
		cudnnPart += release.CuDNN
	}
	return fmt.Sprintf("nvidia/cuda:%s-%s-%s-ubuntu%s", release.Patch, cudnnPart, flavor, ubuntu), nil
}

func (c *Config) validateAndCompleteCUDA() error {
	if c.Base.CUDA == "" {
		c.Base.CUDA = DefaultCUDA
		console.Debugf("Setting CUDA to version %s", c.Base.CUDA)
	}
	if c.Base.Flavor == "" {
		c.Base.Flavor = DefaultFlavor
	}
	_, err := CUDABaseImageTag(c.Base.CUDA, c.Base.CuDNN, c.Base.Flavor, c.Base.Ubuntu)
	return err
}

// minorVersion returns "major.minor" for a parsed version, so "11.8.0" and
// "11.8" key the same release.
func minorVersion(v *version.Version) string {
	segments := v.Segments()
	return fmt.Sprintf("%d.%d", segments[0], segments[1])
}

func supportedCUDAs() []string {
	cudas := make([]string, 0, len(cudaReleases))
	for minor := range cudaReleases {
		cudas = append(cudas, minor)
	}
	sort.Strings(cudas)
	return cudas
}

func sliceContains(slice []string, s string) bool {
	for _, el := range slice {
		if el == s {
			return true
		}
	}
	return false
}
