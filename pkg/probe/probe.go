// Package probe implements the diagnostic probe table and the sequential
// runner that executes it with per-probe graceful degradation.
package probe

import (
	"context"

	"github.com/ElangoShush/carrier-prerequest/pkg/report"
)

// Status classifies the outcome of a single probe.
type Status string

const (
	// StatusOK means the probe produced its findings.
	StatusOK Status = "ok"
	// StatusDegraded means the probe ran but its check failed; the reason
	// is recorded and the run continues.
	StatusDegraded Status = "degraded"
	// StatusSkipped means a required tool was missing or quick mode
	// suppressed the probe.
	StatusSkipped Status = "skipped"
)

// Output is what a probe run produces: ordered findings for its report
// section and optional summary notes.
type Output struct {
	Findings []report.Finding
	Notes    map[string]string
}

// Probe is one independent diagnostic check. Probes are registered once at
// process start and are read-only during a run.
type Probe struct {
	// ID identifies the probe in results and metrics.
	ID string

	// Section is the report section label the probe's findings land in.
	Section string

	// Tools are executables that must be resolvable on PATH for the probe
	// to be eligible. An empty set means always eligible.
	Tools []string

	// QuickSkip marks the probe as suppressed in quick mode regardless of
	// tool availability.
	QuickSkip bool

	// Run executes the check. A returned error degrades the probe, never
	// the run.
	Run func(ctx context.Context) (*Output, error)
}

// Result records the terminal outcome of one probe in one run. It is
// produced exactly once per probe and never mutated.
type Result struct {
	ProbeID string
	Status  Status
	Reason  string
}

// eligible reports whether all required tools resolve, and the first
// missing tool name when not.
func (p Probe) eligible() (bool, string) {
	for _, tool := range p.Tools {
		if !Have(tool) {
			return false, tool
		}
	}
	return true, ""
}
