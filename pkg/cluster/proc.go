package cluster

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// controlPlaneNames are process names characteristic of an orchestrator
// control-plane component running outside any queryable API.
var controlPlaneNames = map[string]bool{
	"kube-apiserver":          true,
	"kube-controller-manager": true,
	"kube-scheduler":          true,
	"kubelet":                 true,
	"etcd":                    true,
	"k3s":                     true,
	"k3s-server":              true,
	"k3s-agent":               true,
	"kubelite":                true, // microk8s bundles the control plane into one binary
}

var procRoot = "/proc"

// controlPlaneProcesses scans the process table for control-plane
// component names and returns the sorted, de-duplicated matches.
func controlPlaneProcesses() []string {
	entries, err := os.ReadDir(procRoot)
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	for _, e := range entries {
		if !e.IsDir() || !isNumeric(e.Name()) {
			continue
		}
		comm, err := os.ReadFile(filepath.Join(procRoot, e.Name(), "comm"))
		if err != nil {
			continue
		}
		name := strings.TrimSpace(string(comm))
		if controlPlaneNames[name] {
			seen[name] = true
		}
	}

	found := make([]string, 0, len(seen))
	for name := range seen {
		found = append(found, name)
	}
	sort.Strings(found)
	return found
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
