/*
Copyright © 2025 carrier-prerequest authors
SPDX-License-Identifier: Apache-2.0
*/

// Package cluster inspects the host's orchestrator control plane through an
// ordered set of backend strategies with a process-table fallback.
package cluster

import (
	"context"
	"log/slog"
)

// TriState classifies a node role label whose labeling convention itself
// may be unavailable.
type TriState string

const (
	// Present means the role label exists on the node.
	Present TriState = "present"
	// Absent means label data was readable but the role label is not set.
	Absent TriState = "absent"
	// Unavailable means the label system could not be consulted at all.
	Unavailable TriState = "unavailable"
)

// NodeInfo is the structured result for one cluster node.
type NodeInfo struct {
	Name         string
	ControlPlane TriState
	Master       TriState
	Taints       []string
}

// Backend is one strategy for listing cluster nodes.
type Backend interface {
	// Name identifies the backend in the report.
	Name() string
	// List returns structured node data, or an error to hand over to the
	// next backend in priority order.
	List(ctx context.Context) ([]NodeInfo, error)
}

// Inspection is the terminal result of an inspect pass. Either Nodes is
// populated (a backend succeeded) or Degraded is set and ControlPlaneProcs
// carries the process-table heuristic result.
type Inspection struct {
	Backend           string
	Nodes             []NodeInfo
	ControlPlaneProcs []string
	Degraded          bool
}

// Inspector tries backends in fixed priority order; the first non-error
// listing short-circuits the rest. When every backend fails it falls back
// to scanning the process table for control-plane component names, which
// is degraded but useful, never a run failure.
type Inspector struct {
	Backends []Backend

	// ScanProcs overrides the process-table scan, for tests.
	ScanProcs func() []string
}

// NewInspector builds the default backend chain: kubeconfig-resolvable
// client, then k3s, then microk8s with its non-default config path.
func NewInspector() *Inspector {
	return &Inspector{
		Backends: []Backend{
			&clientGoBackend{},
			newK3sBackend(),
			newMicroK8sBackend(),
		},
	}
}

// Inspect never fails: it returns structured node data from the first
// working backend, or the process-table heuristic.
func (i *Inspector) Inspect(ctx context.Context) *Inspection {
	for _, b := range i.Backends {
		nodes, err := b.List(ctx)
		if err != nil {
			slog.Info("cluster backend unavailable", "backend", b.Name(), "error", err)
			continue
		}
		slog.Debug("cluster backend succeeded", "backend", b.Name(), "nodes", len(nodes))
		return &Inspection{Backend: b.Name(), Nodes: nodes}
	}

	scan := i.ScanProcs
	if scan == nil {
		scan = controlPlaneProcesses
	}

	return &Inspection{
		Backend:           "process-scan",
		ControlPlaneProcs: scan(),
		Degraded:          true,
	}
}
