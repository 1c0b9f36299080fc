package probe

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/ElangoShush/carrier-prerequest/pkg/defaults"
	"github.com/ElangoShush/carrier-prerequest/pkg/report"
)

var (
	releasePathPrimary  = "/etc/os-release"
	releasePathFallback = "/usr/lib/os-release"
	meminfoPath         = "/proc/meminfo"
)

// SystemProbe reports host identity: hostname, OS release, kernel,
// architecture, CPU count, and total memory.
func SystemProbe() Probe {
	return Probe{
		ID:      "system",
		Section: "system",
		Tools:   []string{"uname"},
		Run:     runSystem,
	}
}

func runSystem(ctx context.Context) (*Output, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve hostname: %w", err)
	}

	kernel, err := runCommand(ctx, defaults.ProbeCommandTimeout, "uname", "-r")
	if err != nil {
		return nil, err
	}

	findings := []report.Finding{
		{Label: "hostname", Value: hostname},
		{Label: "kernel", Value: kernel},
		{Label: "arch", Value: runtime.GOARCH},
		{Label: "cpus", Value: fmt.Sprintf("%d", runtime.NumCPU())},
	}

	osName := ""
	if release, err := parseOSRelease(); err == nil {
		osName = release["PRETTY_NAME"]
		if osName == "" {
			osName = release["NAME"]
		}
		if osName != "" {
			findings = append(findings, report.Finding{Label: "os", Value: osName})
		}
		if id := release["ID"]; id != "" {
			findings = append(findings, report.Finding{Label: "os-id", Value: id})
		}
		if v := release["VERSION_ID"]; v != "" {
			findings = append(findings, report.Finding{Label: "os-version", Value: v})
		}
	}

	if mem := totalMemory(); mem != "" {
		findings = append(findings, report.Finding{Label: "memory-total", Value: mem})
	}

	return &Output{
		Findings: findings,
		Notes: map[string]string{
			report.NoteOS:     osName,
			report.NoteKernel: kernel,
		},
	}, nil
}

// parseOSRelease reads /etc/os-release key-value pairs, falling back to
// /usr/lib/os-release per the freedesktop.org spec. Malformed lines are
// skipped rather than failing the probe.
func parseOSRelease() (map[string]string, error) {
	root := releasePathPrimary
	if _, err := os.Stat(root); os.IsNotExist(err) {
		root = releasePathFallback
	}

	f, err := os.Open(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read os release from %s: %w", root, err)
	}
	defer f.Close()

	params := make(map[string]string, 15)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found || key == "" {
			continue
		}
		params[key] = strings.Trim(value, `"'`)
	}

	return params, scanner.Err()
}

// totalMemory reads MemTotal from /proc/meminfo, returning "" when the
// field is unavailable.
func totalMemory() string {
	f, err := os.Open(meminfoPath)
	if err != nil {
		return ""
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if value, found := strings.CutPrefix(scanner.Text(), "MemTotal:"); found {
			return strings.TrimSpace(value)
		}
	}
	return ""
}
