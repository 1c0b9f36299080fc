package probe

import (
	"context"

	"github.com/ElangoShush/carrier-prerequest/pkg/report"
)

// inventoryTools is the fixed set of external collaborators whose presence
// is recorded in the report. Absence of any of these (other than the
// mandatory tool) only narrows what later probes can check.
var inventoryTools = []string{
	"ip",
	"ping",
	"traceroute",
	"curl",
	"jq",
	"kubectl",
	"k3s",
	"microk8s",
	"docker",
	"helm",
	"gcloud",
	"gsutil",
}

// ToolsProbe records a yes/no inventory line per known tool.
func ToolsProbe() Probe {
	return Probe{
		ID:      "tools",
		Section: "tools",
		Run:     runTools,
	}
}

func runTools(_ context.Context) (*Output, error) {
	findings := make([]report.Finding, 0, len(inventoryTools))
	for _, tool := range inventoryTools {
		value := "no"
		if Have(tool) {
			value = "yes"
		}
		findings = append(findings, report.Finding{Label: "tool:" + tool, Value: value})
	}
	return &Output{Findings: findings}, nil
}
