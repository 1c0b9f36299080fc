/*
Copyright © 2025 carrier-prerequest authors
SPDX-License-Identifier: Apache-2.0
*/

package cluster

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	name     string
	nodes    []NodeInfo
	err      error
	attempts int
}

func (f *fakeBackend) Name() string { return f.name }

func (f *fakeBackend) List(context.Context) ([]NodeInfo, error) {
	f.attempts++
	return f.nodes, f.err
}

func TestInspectSecondBackendShortCircuits(t *testing.T) {
	want := []NodeInfo{{Name: "node-a", ControlPlane: Present, Master: Absent}}

	first := &fakeBackend{name: "kubeconfig", err: errors.New("no kubeconfig")}
	second := &fakeBackend{name: "k3s", nodes: want}
	third := &fakeBackend{name: "microk8s", nodes: []NodeInfo{{Name: "wrong"}}}

	i := &Inspector{Backends: []Backend{first, second, third}}
	ins := i.Inspect(context.Background())

	assert.Equal(t, "k3s", ins.Backend)
	assert.Equal(t, want, ins.Nodes)
	assert.False(t, ins.Degraded)

	assert.Equal(t, 1, first.attempts)
	assert.Equal(t, 1, second.attempts)
	assert.Equal(t, 0, third.attempts, "remaining backends are not attempted after a success")
}

func TestInspectAllBackendsFailFallsBackToProcessScan(t *testing.T) {
	first := &fakeBackend{name: "kubeconfig", err: errors.New("down")}
	second := &fakeBackend{name: "k3s", err: errors.New("down")}
	third := &fakeBackend{name: "microk8s", err: errors.New("down")}

	scans := 0
	i := &Inspector{
		Backends: []Backend{first, second, third},
		ScanProcs: func() []string {
			scans++
			return []string{"k3s", "kubelet"}
		},
	}

	ins := i.Inspect(context.Background())

	assert.True(t, ins.Degraded, "process fallback is degraded-but-useful, not a failure")
	assert.Equal(t, "process-scan", ins.Backend)
	assert.Equal(t, []string{"k3s", "kubelet"}, ins.ControlPlaneProcs)
	assert.Nil(t, ins.Nodes)
	assert.Equal(t, 1, scans, "process scan is invoked exactly once")

	assert.Equal(t, 1, first.attempts)
	assert.Equal(t, 1, second.attempts)
	assert.Equal(t, 1, third.attempts)
}

func TestInspectEmptyListingIsSuccess(t *testing.T) {
	// A backend that answers with zero nodes still short-circuits: the
	// control plane responded.
	empty := &fakeBackend{name: "kubeconfig", nodes: []NodeInfo{}}
	i := &Inspector{Backends: []Backend{empty, &fakeBackend{name: "k3s"}}}

	ins := i.Inspect(context.Background())
	require.False(t, ins.Degraded)
	assert.Equal(t, "kubeconfig", ins.Backend)
	assert.Empty(t, ins.Nodes)
}

func TestRenderInspectionDegraded(t *testing.T) {
	out := renderInspection(&Inspection{
		Backend:           "process-scan",
		Degraded:          true,
		ControlPlaneProcs: []string{"kubelet"},
	})

	require.NotEmpty(t, out.Findings)
	assert.Equal(t, "backend", out.Findings[0].Label)
	assert.Contains(t, out.Findings[1].Value, "degraded")
	assert.Equal(t, "kubelet", out.Findings[2].Value)
}

func TestRenderInspectionNodes(t *testing.T) {
	out := renderInspection(&Inspection{
		Backend: "kubeconfig",
		Nodes: []NodeInfo{
			{Name: "cp-0", ControlPlane: Present, Master: Absent, Taints: []string{"node-role.kubernetes.io/control-plane:NoSchedule"}},
			{Name: "worker-1", ControlPlane: Absent, Master: Absent},
		},
	})

	labels := make([]string, 0, len(out.Findings))
	for _, f := range out.Findings {
		labels = append(labels, f.Label)
	}

	assert.Contains(t, labels, "node:cp-0")
	assert.Contains(t, labels, "taints:cp-0")
	assert.Contains(t, labels, "node:worker-1")
	assert.NotContains(t, labels, "taints:worker-1", "untainted nodes get no taints line")
}
