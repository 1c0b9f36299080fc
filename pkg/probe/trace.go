package probe

import (
	"context"
	"fmt"
	"strings"

	"github.com/ElangoShush/carrier-prerequest/pkg/defaults"
	"github.com/ElangoShush/carrier-prerequest/pkg/report"
)

// TraceProbe runs a bounded numeric traceroute to the storage endpoint.
// It is the single long-running check and is suppressed by quick mode even
// when the tool is present.
func TraceProbe() Probe {
	return Probe{
		ID:        "trace",
		Section:   "trace",
		Tools:     []string{"traceroute"},
		QuickSkip: true,
		Run:       runTrace,
	}
}

func runTrace(ctx context.Context) (*Output, error) {
	out, err := runCommand(ctx, defaults.TraceTimeout,
		"traceroute", "-n", "-w", "2", "-q", "1", "-m", "15", defaults.ConnectivityHost)
	if err != nil {
		return nil, fmt.Errorf("traceroute to %s failed: %w", defaults.ConnectivityHost, err)
	}

	findings := []report.Finding{
		{Label: "trace-target", Value: defaults.ConnectivityHost},
	}
	for i, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || i == 0 {
			// First line is the traceroute banner.
			continue
		}
		findings = append(findings, report.Finding{
			Label: fmt.Sprintf("hop-%02d", i),
			Value: line,
		})
	}

	return &Output{Findings: findings}, nil
}
