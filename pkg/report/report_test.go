package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMeta() Metadata {
	return Metadata{
		RunID:   "9f2c6a1e-0000-0000-0000-000000000000",
		Host:    "node-01",
		Carrier: "mint-mobile",
		Start:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestBuilderPreservesSectionOrder(t *testing.T) {
	b := NewBuilder(testMeta())
	b.AddSection("system", []Finding{{Label: "hostname", Value: "node-01"}})
	b.AddSection("network", []Finding{{Label: "source-ip", Value: "10.0.0.5"}})
	b.AddSection("cluster", nil)

	r := b.Finalize()

	require.Len(t, r.Sections, 3)
	assert.Equal(t, "system", r.Sections[0].Label)
	assert.Equal(t, "network", r.Sections[1].Label)
	assert.Equal(t, "cluster", r.Sections[2].Label)
}

func TestBuilderPanicsAfterFinalize(t *testing.T) {
	b := NewBuilder(testMeta())
	b.Finalize()

	assert.Panics(t, func() { b.AddSection("late", nil) })
	assert.Panics(t, func() { b.Note(NoteOS, "ubuntu") })
	assert.Panics(t, func() { b.Finalize() })
}

func TestRender(t *testing.T) {
	b := NewBuilder(testMeta())
	b.AddSection("network", []Finding{
		{Label: "source-ip", Value: "10.0.0.5"},
		{Label: "gateway", Value: "10.0.0.1"},
	})

	text := b.Finalize().Render()

	assert.Contains(t, text, "### run\n")
	assert.Contains(t, text, "### network\n")
	assert.Contains(t, text, fmt.Sprintf("%-*s: %s\n", labelWidth, "carrier", "mint-mobile"))
	assert.Contains(t, text, fmt.Sprintf("%-*s: %s\n", labelWidth, "source-ip", "10.0.0.5"))

	// Every finding line uses the same fixed label width.
	for _, line := range strings.Split(text, "\n") {
		if line == "" || strings.HasPrefix(line, "###") {
			continue
		}
		assert.Equal(t, labelWidth, strings.Index(line, ":"), "line %q", line)
	}
}

func TestSummaryFields(t *testing.T) {
	b := NewBuilder(testMeta())
	b.Note(NoteOS, "Ubuntu 22.04.4 LTS")
	b.Note(NoteKernel, "5.15.0-91-generic")
	b.Note(NoteSourceIP, "10.0.0.5")
	b.Note(NoteEgressIface, "eth0")
	b.Note(NoteGateway, "10.0.0.1")
	r := b.Finalize()

	s := r.Summary("")
	assert.Equal(t, "node-01", s.Host)
	assert.Equal(t, "mint-mobile", s.Carrier)
	assert.Equal(t, "Ubuntu 22.04.4 LTS", s.OS)
	assert.Equal(t, "eth0", s.EgressIface)
	assert.Empty(t, s.Bucket)

	withBucket := r.Summary("carrier-prereq-mint-mobile")
	assert.Equal(t, "carrier-prereq-mint-mobile", withBucket.Bucket)
}

func TestSummaryLineOmitsBucketWhenUnset(t *testing.T) {
	b := NewBuilder(testMeta())
	r := b.Finalize()

	line, err := r.SummaryLine("")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(line, "summary {"))
	assert.NotContains(t, line, "bucket")

	var s map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "summary ")), &s))
	assert.Equal(t, "node-01", s["host"])
}

func TestEmptyNoteIgnored(t *testing.T) {
	b := NewBuilder(testMeta())
	b.Note(NoteGateway, "")
	r := b.Finalize()
	assert.Empty(t, r.Summary("").Gateway)
}

func TestWriteArtifact(t *testing.T) {
	dir := t.TempDir()
	ts := time.Date(2025, 6, 1, 12, 30, 45, 0, time.UTC)

	path, err := WriteArtifact(dir, "node-01", ts, "### run\n")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "prereq-node-01-20250601T123045Z.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "### run\n", string(data))
}
