//go:build integration
// +build integration

package integration

import (
	"context"
	"os/exec"
	"testing"
)

func restartLedgerContainer(t *testing.T, ctx context.Context) {
	t.Helper()

	cmd := exec.CommandContext(ctx, "docker", "compose", "restart", "ledger")
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("docker compose restart ledger failed: %v\n%s", err, string(out))
	}
}
