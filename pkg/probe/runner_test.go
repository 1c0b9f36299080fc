package probe

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ElangoShush/carrier-prerequest/pkg/report"
)

func testBuilder() *report.Builder {
	return report.NewBuilder(report.Metadata{
		Host:    "node-01",
		Carrier: "mint-mobile",
		Start:   time.Now().UTC(),
	})
}

func okProbe(id string) Probe {
	return Probe{
		ID:      id,
		Section: id,
		Run: func(context.Context) (*Output, error) {
			return &Output{Findings: []report.Finding{{Label: "ok", Value: "yes"}}}, nil
		},
	}
}

func TestRunnerFatalWhenMandatoryToolMissing(t *testing.T) {
	executed := false
	r := &Runner{
		Mandatory: "definitely-not-a-real-tool-xyz",
		Probes: []Probe{{
			ID:      "never",
			Section: "never",
			Run: func(context.Context) (*Output, error) {
				executed = true
				return &Output{}, nil
			},
		}},
	}

	b := testBuilder()
	_, err := r.Run(context.Background(), b)

	require.Error(t, err)
	assert.False(t, executed, "no probe may execute after a fatal tool check")

	// The builder must still be usable: nothing was appended.
	rep := b.Finalize()
	assert.Empty(t, rep.Sections)
}

func TestRunnerSequentialOrderAndDegradation(t *testing.T) {
	var order []string
	record := func(id string, out *Output, err error) Probe {
		return Probe{
			ID:      id,
			Section: id,
			Run: func(context.Context) (*Output, error) {
				order = append(order, id)
				return out, err
			},
		}
	}

	r := &Runner{
		Mandatory: "sh",
		Probes: []Probe{
			record("first", &Output{Findings: []report.Finding{{Label: "a", Value: "1"}}}, nil),
			record("second", nil, errors.New("query failed")),
			record("third", &Output{}, nil),
		},
	}

	b := testBuilder()
	results, err := r.Run(context.Background(), b)
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second", "third"}, order)

	require.Len(t, results, 3)
	assert.Equal(t, StatusOK, results[0].Status)
	assert.Equal(t, StatusDegraded, results[1].Status)
	assert.Equal(t, "query failed", results[1].Reason)
	assert.Equal(t, StatusOK, results[2].Status)

	// Report sections appear in registration order regardless of outcome.
	rep := b.Finalize()
	require.Len(t, rep.Sections, 3)
	assert.Equal(t, "first", rep.Sections[0].Label)
	assert.Equal(t, "second", rep.Sections[1].Label)
	assert.Equal(t, "third", rep.Sections[2].Label)
	assert.Contains(t, rep.Sections[1].Findings[0].Value, "degraded")
}

func TestRunnerSkipsProbeWithMissingTool(t *testing.T) {
	executed := false
	r := &Runner{
		Mandatory: "sh",
		Probes: []Probe{{
			ID:      "gated",
			Section: "gated",
			Tools:   []string{"sh", "definitely-not-a-real-tool-xyz"},
			Run: func(context.Context) (*Output, error) {
				executed = true
				return &Output{}, nil
			},
		}},
	}

	b := testBuilder()
	results, err := r.Run(context.Background(), b)
	require.NoError(t, err)

	assert.False(t, executed)
	require.Len(t, results, 1)
	assert.Equal(t, StatusSkipped, results[0].Status)
	assert.Contains(t, results[0].Reason, "definitely-not-a-real-tool-xyz")
}

func TestRunnerQuickModeSuppressionIsFlagDriven(t *testing.T) {
	executed := false
	long := Probe{
		ID:        "trace",
		Section:   "trace",
		Tools:     []string{"sh"}, // tool is present; suppression must still win
		QuickSkip: true,
		Run: func(context.Context) (*Output, error) {
			executed = true
			return &Output{}, nil
		},
	}

	r := &Runner{Mandatory: "sh", Quick: true, Probes: []Probe{long}}

	b := testBuilder()
	results, err := r.Run(context.Background(), b)
	require.NoError(t, err)

	assert.False(t, executed, "quick mode suppression is flag-driven, not availability-driven")
	require.Len(t, results, 1)
	assert.Equal(t, StatusSkipped, results[0].Status)
	assert.Equal(t, "quick mode", results[0].Reason)

	// Without quick mode the same probe runs.
	executed = false
	r.Quick = false
	_, err = r.Run(context.Background(), testBuilder())
	require.NoError(t, err)
	assert.True(t, executed)
}

func TestRunnerRecordsNotes(t *testing.T) {
	r := &Runner{
		Mandatory: "sh",
		Probes: []Probe{{
			ID:      "net",
			Section: "net",
			Run: func(context.Context) (*Output, error) {
				return &Output{
					Notes: map[string]string{report.NoteGateway: "10.0.0.1"},
				}, nil
			},
		}},
	}

	b := testBuilder()
	_, err := r.Run(context.Background(), b)
	require.NoError(t, err)

	rep := b.Finalize()
	assert.Equal(t, "10.0.0.1", rep.Summary("").Gateway)
}

func TestProbeEligible(t *testing.T) {
	p := okProbe("x")
	ok, missing := p.eligible()
	assert.True(t, ok)
	assert.Empty(t, missing)

	p.Tools = []string{"definitely-not-a-real-tool-xyz"}
	ok, missing = p.eligible()
	assert.False(t, ok)
	assert.Equal(t, "definitely-not-a-real-tool-xyz", missing)
}
