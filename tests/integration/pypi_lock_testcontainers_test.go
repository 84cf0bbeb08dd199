//go:build integration

package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"reqtool/internal/adapters"
	"reqtool/internal/app"
	"reqtool/tests/testutil"
)

// TestLockAgainstPyPIMockWithTestcontainers locks a manifest against a
// containerized mock of the PyPI JSON API, covering pass-through pins,
// range resolution over the network, and the retry path (the mock fails
// the first request for each project with a 503).
func TestLockAgainstPyPIMockWithTestcontainers(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping testcontainers integration in short mode")
	}

	ctx := t.Context()
	endpoint, cleanup := startPyPIMock(ctx, t)
	t.Cleanup(cleanup)

	dir := t.TempDir()
	manifestPath := testutil.WriteFile(t, dir, "requirements.txt", "flask==3.0.3\njinja2>=3.1,<4\npytest>=8\n")
	outputPath := filepath.Join(dir, "requirements.lock")

	service := app.NewService()
	result, err := service.Lock(ctx, app.LockRequest{
		ManifestPath:     manifestPath,
		PyPIURL:          endpoint,
		Output:           outputPath,
		HTTPTimeoutSec:   10,
		HTTPRetries:      3,
		HTTPRetryDelayMs: 100,
	})
	require.NoError(t, err)

	pinned := map[string]string{}
	for _, entry := range result.Entries {
		pinned[entry.Package] = entry.Version
	}
	require.Equal(t, "3.0.3", pinned["flask"])
	require.Equal(t, "3.1.4", pinned["jinja2"])
	require.Equal(t, "8.3.2", pinned["pytest"])

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	require.Contains(t, string(data), "jinja2==3.1.4\n")
}

// TestLockUnknownProjectWithTestcontainers verifies that a project the
// index does not know fails the whole lock with a clear error.
func TestLockUnknownProjectWithTestcontainers(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping testcontainers integration in short mode")
	}

	ctx := t.Context()
	endpoint, cleanup := startPyPIMock(ctx, t)
	t.Cleanup(cleanup)

	dir := t.TempDir()
	manifestPath := testutil.WriteFile(t, dir, "requirements.txt", "no-such-project>=1\n")

	service := app.NewService()
	_, err := service.Lock(ctx, app.LockRequest{
		ManifestPath:     manifestPath,
		PyPIURL:          endpoint,
		Output:           filepath.Join(dir, "requirements.lock"),
		HTTPTimeoutSec:   10,
		HTTPRetries:      1,
		HTTPRetryDelayMs: 100,
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "no available versions")
}

// TestOutdatedAgainstPyPIMockWithTestcontainers checks the outdated
// report against the containerized index.
func TestOutdatedAgainstPyPIMockWithTestcontainers(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping testcontainers integration in short mode")
	}

	ctx := t.Context()
	endpoint, cleanup := startPyPIMock(ctx, t)
	t.Cleanup(cleanup)

	dir := t.TempDir()
	manifestPath := testutil.WriteFile(t, dir, "requirements.txt", "flask==2.3.0\npytest==8.3.2\n")

	service := app.NewService()
	result, err := service.Outdated(ctx, app.OutdatedRequest{
		ManifestPath:     manifestPath,
		PyPIURL:          endpoint,
		HTTPTimeoutSec:   10,
		HTTPRetries:      3,
		HTTPRetryDelayMs: 100,
	})
	require.NoError(t, err)
	require.Len(t, result.Entries, 2)
	require.Equal(t, "flask", result.Entries[0].Package)
	require.Equal(t, "2.3.0", result.Entries[0].Pinned)
	require.Equal(t, "3.0.3", result.Entries[0].Latest)
	require.True(t, result.Entries[0].Behind)
	require.Equal(t, "pytest", result.Entries[1].Package)
	require.False(t, result.Entries[1].Behind)
}

// TestPyPIAdapterRetriesWithTestcontainers drives the adapter directly
// to confirm the 503 on first contact is retried rather than surfaced.
func TestPyPIAdapterRetriesWithTestcontainers(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping testcontainers integration in short mode")
	}

	ctx := t.Context()
	endpoint, cleanup := startPyPIMock(ctx, t)
	t.Cleanup(cleanup)

	index := adapters.NewPyPIIndexAdapter(endpoint, 10, 3, 100)
	versions, err := index.AvailableVersions(ctx, "pip", "flask")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"2.3.0", "3.0.3"}, versions)
}

func startPyPIMock(ctx context.Context, t *testing.T) (string, func()) {
	t.Helper()
	req := testcontainers.ContainerRequest{
		Image:        "python:3.12-alpine",
		ExposedPorts: []string{"8080/tcp"},
		Cmd:          []string{"python", "-c", pypiMockScript},
		WaitingFor:   wait.ForListeningPort("8080/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "8080/tcp")
	require.NoError(t, err)

	endpoint := fmt.Sprintf("http://%s:%s", host, port.Port())
	cleanup := func() {
		_ = container.Terminate(ctx)
	}
	return endpoint, cleanup
}

// pypiMockScript serves the subset of the PyPI JSON API the lock path
// uses. The first request for every project returns a 503 so clients
// must retry.
const pypiMockScript = `
import json
from http.server import BaseHTTPRequestHandler, ThreadingHTTPServer

releases = {
    "flask": {"2.3.0": [{"filename": "flask-2.3.0.tar.gz"}], "3.0.3": [{"filename": "flask-3.0.3.tar.gz"}]},
    "jinja2": {"3.1.2": [{"filename": "jinja2-3.1.2.tar.gz"}], "3.1.4": [{"filename": "jinja2-3.1.4.tar.gz"}]},
    "pytest": {"7.4.4": [{"filename": "pytest-7.4.4.tar.gz"}], "8.3.2": [{"filename": "pytest-8.3.2.tar.gz"}]},
}
seen = set()

class Handler(BaseHTTPRequestHandler):
    def do_GET(self):
        parts = self.path.strip("/").split("/")
        if len(parts) != 3 or parts[0] != "pypi" or parts[2] != "json":
            self.send_response(404)
            self.end_headers()
            return
        name = parts[1]
        if name not in seen:
            seen.add(name)
            self.send_response(503)
            self.end_headers()
            return
        if name not in releases:
            self.send_response(404)
            self.end_headers()
            return
        body = json.dumps({"releases": releases[name]}).encode("utf-8")
        self.send_response(200)
        self.send_header("Content-Type", "application/json")
        self.end_headers()
        self.wfile.write(body)

    def log_message(self, format, *args):
        return

def main():
    server = ThreadingHTTPServer(("0.0.0.0", 8080), Handler)
    server.serve_forever()

if __name__ == "__main__":
    main()
`
