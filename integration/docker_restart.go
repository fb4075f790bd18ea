//go:build integration
// +build integration

package integration

import (
	"context"
	"os"
	"os/exec"
	"testing"
)

// restartStorefront restarts the compose service named by E2E_COMPOSE_SERVICE.
// Tests that need it are skipped when the variable is unset.
func restartStorefront(t *testing.T, ctx context.Context) {
	t.Helper()

	svc := os.Getenv("E2E_COMPOSE_SERVICE")
	if svc == "" {
		t.Skip("E2E_COMPOSE_SERVICE not set")
	}

	cmd := exec.CommandContext(ctx, "docker", "compose", "restart", svc)
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("docker compose restart %s failed: %v\n%s", svc, err, string(out))
	}
}
