package probe

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// runCommand resolves name on PATH and executes it with the given timeout,
// returning trimmed stdout. Stderr is folded into the error on failure.
func runCommand(ctx context.Context, timeout time.Duration, name string, args ...string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%s not found in PATH: %w", name, err)
	}

	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(cctx, path, args...)
	output, err := cmd.Output()
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok && len(ee.Stderr) > 0 {
			return "", fmt.Errorf("%s failed: %s", name, strings.TrimSpace(string(ee.Stderr)))
		}
		return "", fmt.Errorf("failed to execute %s: %w", name, err)
	}

	return strings.TrimSpace(string(output)), nil
}
