package cluster

import (
	"encoding/json"
	"fmt"
)

// Role labels checked independently per node. The legacy master label is
// still emitted by older distributions.
const (
	labelControlPlane = "node-role.kubernetes.io/control-plane"
	labelMaster       = "node-role.kubernetes.io/master"
)

// nodeListing is the typed shape of `kubectl get nodes -o json`. Only the
// fields the inspector consumes are declared; everything else is ignored.
type nodeListing struct {
	Items []struct {
		Metadata struct {
			Name   string            `json:"name"`
			Labels map[string]string `json:"labels"`
		} `json:"metadata"`
		Spec struct {
			Taints []struct {
				Key    string `json:"key"`
				Value  string `json:"value"`
				Effect string `json:"effect"`
			} `json:"taints"`
		} `json:"spec"`
	} `json:"items"`
}

// parseNodeListing decodes a CLI node listing. Output that does not decode
// as the expected shape is an error (the backend hands over); per-node
// malformations fail closed to absent/unavailable instead of aborting.
func parseNodeListing(data []byte) ([]NodeInfo, error) {
	var listing nodeListing
	if err := json.Unmarshal(data, &listing); err != nil {
		return nil, fmt.Errorf("unparseable node listing: %w", err)
	}

	nodes := make([]NodeInfo, 0, len(listing.Items))
	for _, item := range listing.Items {
		if item.Metadata.Name == "" {
			// Entry without a name carries no usable node identity.
			continue
		}

		taints := make([]string, 0, len(item.Spec.Taints))
		for _, t := range item.Spec.Taints {
			if t.Key == "" {
				continue
			}
			if t.Value != "" {
				taints = append(taints, fmt.Sprintf("%s=%s:%s", t.Key, t.Value, t.Effect))
			} else {
				taints = append(taints, fmt.Sprintf("%s:%s", t.Key, t.Effect))
			}
		}

		nodes = append(nodes, classifyNode(item.Metadata.Name, item.Metadata.Labels, taints))
	}

	return nodes, nil
}

// classifyNode reduces the two role label lookups to tri-states. A nil
// label map means the label system is unavailable; a readable map without
// the label means absent. Classification never fails.
func classifyNode(name string, labels map[string]string, taints []string) NodeInfo {
	info := NodeInfo{
		Name:         name,
		ControlPlane: Unavailable,
		Master:       Unavailable,
		Taints:       taints,
	}

	if labels != nil {
		info.ControlPlane = labelState(labels, labelControlPlane)
		info.Master = labelState(labels, labelMaster)
	}

	return info
}

func labelState(labels map[string]string, key string) TriState {
	if _, ok := labels[key]; ok {
		return Present
	}
	return Absent
}
