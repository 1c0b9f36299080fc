// Package report accumulates probe findings into an ordered, immutable
// artifact with a line-oriented text rendering and a compact structured
// summary for machine consumption.
package report

import (
	"time"
)

// Finding is a single label/value line within a section.
type Finding struct {
	Label string
	Value string
}

// Section is an ordered group of findings introduced by a header line.
type Section struct {
	Label    string
	Findings []Finding
}

// Metadata describes the run that produced the report.
type Metadata struct {
	RunID   string
	Host    string
	Carrier string
	Start   time.Time
	End     time.Time
	Quick   bool
}

// Builder accumulates sections in append-only order. It is owned by a
// single run and is not safe for concurrent use. Appending after Finalize
// is a programming error and panics.
type Builder struct {
	meta      Metadata
	sections  []Section
	notes     map[string]string
	finalized bool
}

// NewBuilder creates a Builder for the given run metadata.
func NewBuilder(meta Metadata) *Builder {
	return &Builder{
		meta:     meta,
		sections: make([]Section, 0, 8),
		notes:    make(map[string]string),
	}
}

// AddSection appends a section. Sections may not be reordered or removed
// once added.
func (b *Builder) AddSection(label string, findings []Finding) {
	if b.finalized {
		panic("report: AddSection called after Finalize")
	}
	b.sections = append(b.sections, Section{Label: label, Findings: findings})
}

// Note records a summary field (os, kernel, source_ip, egress_iface,
// gateway) derived by a probe. Notes feed the compact summary only; the
// section findings remain the authoritative record.
func (b *Builder) Note(key, value string) {
	if b.finalized {
		panic("report: Note called after Finalize")
	}
	if value != "" {
		b.notes[key] = value
	}
}

// Finalize stamps the end time and returns the immutable Report. It may be
// called exactly once; a second call panics.
func (b *Builder) Finalize() *Report {
	if b.finalized {
		panic("report: Finalize called twice")
	}
	b.finalized = true
	b.meta.End = time.Now().UTC()

	return &Report{
		Meta:     b.meta,
		Sections: b.sections,
		notes:    b.notes,
	}
}

// Report is a finalized, ordered sequence of sections plus run metadata.
type Report struct {
	Meta     Metadata
	Sections []Section

	notes map[string]string
}

func (r *Report) note(key string) string {
	return r.notes[key]
}
