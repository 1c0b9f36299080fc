package cluster

import (
	"context"
	"fmt"
	"strings"

	"github.com/ElangoShush/carrier-prerequest/pkg/probe"
	"github.com/ElangoShush/carrier-prerequest/pkg/report"
)

// NewProbe wraps the inspector as one probe family in the runner's table.
// The probe itself never fails: all-backends-down surfaces as a degraded
// process-scan section.
func NewProbe(inspector *Inspector) probe.Probe {
	return probe.Probe{
		ID:      "cluster",
		Section: "cluster",
		Run: func(ctx context.Context) (*probe.Output, error) {
			return renderInspection(inspector.Inspect(ctx)), nil
		},
	}
}

func renderInspection(ins *Inspection) *probe.Output {
	findings := []report.Finding{
		{Label: "backend", Value: ins.Backend},
	}

	if ins.Degraded {
		procs := "none detected"
		if len(ins.ControlPlaneProcs) > 0 {
			procs = strings.Join(ins.ControlPlaneProcs, ", ")
		}
		findings = append(findings,
			report.Finding{Label: "status", Value: "degraded (no backend reachable, process scan only)"},
			report.Finding{Label: "control-plane-procs", Value: procs},
		)
		return &probe.Output{Findings: findings}
	}

	findings = append(findings, report.Finding{
		Label: "nodes",
		Value: fmt.Sprintf("%d", len(ins.Nodes)),
	})

	for _, n := range ins.Nodes {
		findings = append(findings, report.Finding{
			Label: "node:" + n.Name,
			Value: fmt.Sprintf("control-plane=%s master=%s", n.ControlPlane, n.Master),
		})
		if len(n.Taints) > 0 {
			findings = append(findings, report.Finding{
				Label: "taints:" + n.Name,
				Value: strings.Join(n.Taints, ", "),
			})
		}
	}

	return &probe.Output{Findings: findings}
}
