package report

import (
	"encoding/json"
	"fmt"
)

// Summary is the compact machine-consumable view of a report. It is
// derived from probe notes and run metadata, never authoritative. The
// Bucket field is populated only when a credentialed bucket target is
// configured for the run.
type Summary struct {
	Host        string `json:"host"`
	OS          string `json:"os,omitempty"`
	Kernel      string `json:"kernel,omitempty"`
	Carrier     string `json:"carrier"`
	SourceIP    string `json:"source_ip,omitempty"`
	EgressIface string `json:"egress_iface,omitempty"`
	Gateway     string `json:"gateway,omitempty"`
	Bucket      string `json:"bucket,omitempty"`
}

// Note keys probes use to feed the summary.
const (
	NoteOS          = "os"
	NoteKernel      = "kernel"
	NoteSourceIP    = "source_ip"
	NoteEgressIface = "egress_iface"
	NoteGateway     = "gateway"
)

// Summary derives the compact summary. bucket is the configured bucket
// identifier, or empty when no credentialed target is set.
func (r *Report) Summary(bucket string) Summary {
	return Summary{
		Host:        r.Meta.Host,
		OS:          r.note(NoteOS),
		Kernel:      r.note(NoteKernel),
		Carrier:     r.Meta.Carrier,
		SourceIP:    r.note(NoteSourceIP),
		EgressIface: r.note(NoteEgressIface),
		Gateway:     r.note(NoteGateway),
		Bucket:      bucket,
	}
}

// SummaryLine renders the summary as a single trailing line suitable for
// appending to the text artifact.
func (r *Report) SummaryLine(bucket string) (string, error) {
	data, err := json.Marshal(r.Summary(bucket))
	if err != nil {
		return "", fmt.Errorf("failed to marshal summary: %w", err)
	}
	return "summary " + string(data), nil
}
