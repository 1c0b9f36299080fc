package report

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// ArtifactName returns the host-local file name for a finalized report,
// encoding hostname and generation timestamp. The file is never rotated
// or deleted by this tool.
func ArtifactName(host string, ts time.Time) string {
	return fmt.Sprintf("prereq-%s-%s.txt", host, ts.UTC().Format("20060102T150405Z"))
}

// WriteArtifact writes the rendered report text to dir and returns the
// full path. The report stays on local disk even if delivery later fails.
func WriteArtifact(dir, host string, ts time.Time, text string) (string, error) {
	if dir == "" {
		dir = os.TempDir()
	}

	path := filepath.Join(dir, ArtifactName(host, ts))
	if err := os.WriteFile(path, []byte(text), 0600); err != nil {
		return "", fmt.Errorf("failed to write report artifact %s: %w", path, err)
	}

	slog.Info("report written", "path", path, "bytes", len(text))
	return path, nil
}
