package probe

import (
	"context"
	"fmt"

	"github.com/coreos/go-systemd/v22/dbus"

	"github.com/ElangoShush/carrier-prerequest/pkg/defaults"
	"github.com/ElangoShush/carrier-prerequest/pkg/report"
)

// watchedUnits are the container and orchestrator services whose state is
// relevant before a node joins a fleet.
var watchedUnits = []string{
	"containerd.service",
	"docker.service",
	"kubelet.service",
}

// ServicesProbe reports the systemd state of container runtime and kubelet
// units over the system bus. Hosts without systemd degrade gracefully.
func ServicesProbe() Probe {
	return Probe{
		ID:      "services",
		Section: "services",
		Run:     runServices,
	}
}

func runServices(ctx context.Context) (*Output, error) {
	cctx, cancel := context.WithTimeout(ctx, defaults.SystemdTimeout)
	defer cancel()

	conn, err := dbus.NewSystemdConnectionContext(cctx)
	if err != nil {
		// Fall back to the user-level connection for rootless environments.
		conn, err = dbus.NewUserConnectionContext(cctx)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to systemd: %w", err)
		}
	}
	defer conn.Close()

	statuses, err := conn.ListUnitsByNamesContext(cctx, watchedUnits)
	if err != nil {
		return nil, fmt.Errorf("failed to list unit states: %w", err)
	}

	byName := make(map[string]dbus.UnitStatus, len(statuses))
	for _, s := range statuses {
		byName[s.Name] = s
	}

	findings := make([]report.Finding, 0, len(watchedUnits))
	for _, unit := range watchedUnits {
		s, ok := byName[unit]
		if !ok || s.LoadState == "not-found" {
			findings = append(findings, report.Finding{Label: unit, Value: "not installed"})
			continue
		}
		findings = append(findings, report.Finding{
			Label: unit,
			Value: fmt.Sprintf("%s (%s)", s.ActiveState, s.SubState),
		})
	}

	return &Output{Findings: findings}, nil
}
