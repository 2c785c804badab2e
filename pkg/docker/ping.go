package docker

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/docker/client"
)

// Ping checks the docker daemon is reachable before the build starts; an
// unreachable daemon is a build-fatal error, better surfaced up front than
// halfway through a long image build.
func Ping(ctx context.Context, duration time.Duration) error {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return fmt.Errorf("failed to create docker client: %w", err)
	}
	defer cli.Close()

	ctx, cancel := context.WithTimeout(ctx, duration)
	defer cancel()

	if _, err := cli.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping docker, please try restarting the docker daemon: %w", err)
	}

	return nil
}
