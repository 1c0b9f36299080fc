package report

import (
	"fmt"
	"strings"
	"time"
)

const labelWidth = 24

// Render returns the line-oriented textual form of the report: a metadata
// preamble, then each section introduced by a header line with fixed-width
// "label : value" findings. This is the artifact actually delivered.
func (r *Report) Render() string {
	var b strings.Builder

	b.WriteString("### run\n")
	writeFinding(&b, "run-id", r.Meta.RunID)
	writeFinding(&b, "host", r.Meta.Host)
	writeFinding(&b, "carrier", r.Meta.Carrier)
	writeFinding(&b, "started", r.Meta.Start.UTC().Format(time.RFC3339))
	writeFinding(&b, "finished", r.Meta.End.UTC().Format(time.RFC3339))
	writeFinding(&b, "quick-mode", fmt.Sprintf("%t", r.Meta.Quick))

	for _, s := range r.Sections {
		b.WriteString("\n### ")
		b.WriteString(s.Label)
		b.WriteByte('\n')
		for _, f := range s.Findings {
			writeFinding(&b, f.Label, f.Value)
		}
	}

	return b.String()
}

func writeFinding(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "%-*s: %s\n", labelWidth, label, value)
}
