//go:build smoke

package integration

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/docker/docker/api/types/container"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// createContainer copies the dvsim binary (built at the repository root) and the sample
// scenario into a busybox container and runs command until waitFor appears in its logs.
func createContainer(ctx context.Context, t *testing.T, command []string, waitFor string) (testcontainers.Container, error) {
	t.Helper()
	binPath, err := filepath.Abs(filepath.Join("../", "dvsim"))
	require.NoError(t, err)
	r, err := os.Open(binPath)
	require.NoError(t, err)

	scenarioPath, err := filepath.Abs(filepath.Join("fixtures", "abc.in"))
	require.NoError(t, err)
	r2, err := os.Open(scenarioPath)
	require.NoError(t, err)

	return testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image: "busybox:1.37-glibc",
			HostConfigModifier: func(config *container.HostConfig) {
				config.NetworkMode = "none"
			},
			Files: []testcontainers.ContainerFile{
				{
					Reader:            r,
					HostFilePath:      binPath, // will be discarded internally
					ContainerFilePath: "/dvsim",
					FileMode:          0o700,
				},
				{
					Reader:            r2,
					HostFilePath:      scenarioPath,
					ContainerFilePath: "/abc.in",
					FileMode:          0o600,
				},
			},
			Cmd:        command,
			WaitingFor: wait.ForLog(waitFor),
		},
		Started: true,
	})
}

func TestDvsimExecutes(t *testing.T) {
	ctx := context.Background()
	c, err := createContainer(ctx, t, []string{"/dvsim", "--help"}, "dvsim simulates a RIP style distance-vector protocol")
	testcontainers.CleanupContainer(t, c)
	require.NoError(t, err)
}

func TestDvsimRuns(t *testing.T) {
	ctx := context.Background()
	c, err := createContainer(ctx, t, []string{"/dvsim", "run", "-i", "/abc.in"}, "Routing table of router C:")
	testcontainers.CleanupContainer(t, c)
	require.NoError(t, err)

	logs, err := c.Logs(ctx)
	require.NoError(t, err)
	defer logs.Close()
	out, err := io.ReadAll(logs)
	require.NoError(t, err)
	require.Contains(t, string(out), "Routing table of router A:\nB,B,1\nC,C,1\n")
}
