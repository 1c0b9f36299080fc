package probe

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ElangoShush/carrier-prerequest/pkg/errors"
	"github.com/ElangoShush/carrier-prerequest/pkg/report"
)

// MandatoryTool is the single network-inspection tool whose absence aborts
// the entire run: every network-dependent probe would be meaningless
// without it.
const MandatoryTool = "ip"

// Runner executes a fixed, ordered list of probes sequentially. Probe
// failures degrade individual findings; they never abort the run. Section
// order in the report is registration order.
type Runner struct {
	// Probes is the ordered probe table.
	Probes []Probe

	// Quick suppresses probes marked QuickSkip.
	Quick bool

	// Mandatory overrides MandatoryTool, for tests.
	Mandatory string
}

// Run executes the probe table against the builder. It returns a
// fatal-probe error before executing anything when the mandatory network
// tool is absent.
func (r *Runner) Run(ctx context.Context, b *report.Builder) ([]Result, error) {
	mandatory := r.Mandatory
	if mandatory == "" {
		mandatory = MandatoryTool
	}
	if !Have(mandatory) {
		return nil, errors.Newf(errors.ErrCodeFatalProbe,
			"mandatory network tool %q not found in PATH", mandatory)
	}

	start := time.Now()
	defer func() {
		runDuration.Observe(time.Since(start).Seconds())
	}()

	results := make([]Result, 0, len(r.Probes))

	for _, p := range r.Probes {
		res := r.runOne(ctx, p, b)
		results = append(results, res)
		probeTotal.WithLabelValues(p.ID, string(res.Status)).Inc()
	}

	return results, nil
}

func (r *Runner) runOne(ctx context.Context, p Probe, b *report.Builder) Result {
	if r.Quick && p.QuickSkip {
		slog.Debug("probe suppressed by quick mode", "probe", p.ID)
		b.AddSection(p.Section, []report.Finding{
			{Label: "status", Value: "skipped (quick mode)"},
		})
		return Result{ProbeID: p.ID, Status: StatusSkipped, Reason: "quick mode"}
	}

	if ok, missing := p.eligible(); !ok {
		slog.Info("probe skipped, tool missing", "probe", p.ID, "tool", missing)
		b.AddSection(p.Section, []report.Finding{
			{Label: "status", Value: fmt.Sprintf("skipped (missing tool: %s)", missing)},
		})
		return Result{ProbeID: p.ID, Status: StatusSkipped, Reason: "missing tool: " + missing}
	}

	probeStart := time.Now()
	out, err := p.Run(ctx)
	probeDuration.WithLabelValues(p.ID).Observe(time.Since(probeStart).Seconds())

	if err != nil {
		slog.Warn("probe degraded", "probe", p.ID, "error", err)
		findings := []report.Finding{
			{Label: "status", Value: fmt.Sprintf("degraded (%v)", err)},
		}
		if out != nil {
			// Partial findings collected before the failure stay in the report.
			findings = append(out.Findings, findings...)
		}
		b.AddSection(p.Section, findings)
		return Result{ProbeID: p.ID, Status: StatusDegraded, Reason: err.Error()}
	}

	b.AddSection(p.Section, out.Findings)
	for k, v := range out.Notes {
		b.Note(k, v)
	}

	slog.Debug("probe complete", "probe", p.ID, "findings", len(out.Findings))
	return Result{ProbeID: p.ID, Status: StatusOK}
}
