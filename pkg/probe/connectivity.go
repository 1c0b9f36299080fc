package probe

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/ElangoShush/carrier-prerequest/pkg/defaults"
	"github.com/ElangoShush/carrier-prerequest/pkg/report"
)

// DNSProbe resolves the storage endpoint to confirm name resolution works
// before any delivery attempt.
func DNSProbe() Probe {
	return Probe{
		ID:      "dns",
		Section: "dns",
		Run:     runDNS,
	}
}

func runDNS(ctx context.Context) (*Output, error) {
	cctx, cancel := context.WithTimeout(ctx, defaults.DNSTimeout)
	defer cancel()

	start := time.Now()
	addrs, err := net.DefaultResolver.LookupHost(cctx, defaults.ConnectivityHost)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", defaults.ConnectivityHost, err)
	}

	return &Output{
		Findings: []report.Finding{
			{Label: "resolver-target", Value: defaults.ConnectivityHost},
			{Label: "resolved", Value: strings.Join(addrs, ", ")},
			{Label: "lookup-ms", Value: fmt.Sprintf("%d", time.Since(start).Milliseconds())},
		},
	}, nil
}

// PingProbe sends a single bounded ICMP echo to the storage endpoint.
func PingProbe() Probe {
	return Probe{
		ID:      "ping",
		Section: "reachability",
		Tools:   []string{"ping"},
		Run:     runPing,
	}
}

func runPing(ctx context.Context) (*Output, error) {
	out, err := runCommand(ctx, defaults.ProbeCommandTimeout,
		"ping", "-c", "1", "-W", "2", defaults.ConnectivityHost)
	if err != nil {
		return nil, fmt.Errorf("ping to %s failed: %w", defaults.ConnectivityHost, err)
	}

	findings := []report.Finding{
		{Label: "ping-target", Value: defaults.ConnectivityHost},
		{Label: "reachable", Value: "yes"},
	}
	if rtt := parsePingRTT(out); rtt != "" {
		findings = append(findings, report.Finding{Label: "rtt", Value: rtt})
	}

	return &Output{Findings: findings}, nil
}

// parsePingRTT extracts the time= field from ping output, empty when the
// layout is unrecognized.
func parsePingRTT(out string) string {
	for _, line := range strings.Split(out, "\n") {
		if idx := strings.Index(line, "time="); idx >= 0 {
			return strings.TrimSpace(line[idx+len("time="):])
		}
	}
	return ""
}
