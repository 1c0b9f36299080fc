package cluster

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"

	"github.com/ElangoShush/carrier-prerequest/pkg/defaults"
)

// microK8sKubeconfig is the non-default client config microk8s maintains
// under its snap data directory.
const microK8sKubeconfig = "/var/snap/microk8s/current/credentials/client.config"

// clientGoBackend queries the primary orchestrator through client-go with
// an already-resolvable kubeconfig (KUBECONFIG, then ~/.kube/config).
type clientGoBackend struct {
	// Clientset overrides the resolved client, for tests.
	Clientset kubernetes.Interface
}

func (b *clientGoBackend) Name() string { return "kubeconfig" }

func (b *clientGoBackend) List(ctx context.Context) ([]NodeInfo, error) {
	client, err := b.getClient()
	if err != nil {
		return nil, err
	}

	cctx, cancel := context.WithTimeout(ctx, defaults.ClusterQueryTimeout)
	defer cancel()

	list, err := client.CoreV1().Nodes().List(cctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list nodes: %w", err)
	}

	nodes := make([]NodeInfo, 0, len(list.Items))
	for _, n := range list.Items {
		taints := make([]string, 0, len(n.Spec.Taints))
		for _, t := range n.Spec.Taints {
			if t.Value != "" {
				taints = append(taints, fmt.Sprintf("%s=%s:%s", t.Key, t.Value, t.Effect))
			} else {
				taints = append(taints, fmt.Sprintf("%s:%s", t.Key, t.Effect))
			}
		}
		// The API returned the node object, so the label system is
		// consultable even when no labels are set.
		labels := n.Labels
		if labels == nil {
			labels = map[string]string{}
		}
		nodes = append(nodes, classifyNode(n.Name, labels, taints))
	}

	return nodes, nil
}

func (b *clientGoBackend) getClient() (kubernetes.Interface, error) {
	if b.Clientset != nil {
		return b.Clientset, nil
	}

	kubeconfig := resolveKubeconfig()
	if kubeconfig == "" {
		return nil, fmt.Errorf("no resolvable kubeconfig")
	}

	config, err := clientcmd.BuildConfigFromFlags("", kubeconfig)
	if err != nil {
		return nil, fmt.Errorf("failed to build kube config: %w", err)
	}

	client, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}
	return client, nil
}

// resolveKubeconfig looks for the KUBECONFIG environment variable, then the
// default kubeconfig file in the user's home directory. Empty means no
// configuration is resolvable and the backend hands over.
func resolveKubeconfig() string {
	if kubeconfig := os.Getenv("KUBECONFIG"); kubeconfig != "" {
		return kubeconfig
	}

	kubeconfig := filepath.Join(homedir.HomeDir(), ".kube", "config")
	if _, err := os.Stat(kubeconfig); err != nil {
		return ""
	}
	return kubeconfig
}

// execBackend lists nodes by running an orchestrator CLI and parsing its
// JSON node listing with the typed parser.
type execBackend struct {
	name     string
	tool     string
	args     []string
	required string // optional file that must exist for the backend to apply
}

func newK3sBackend() *execBackend {
	return &execBackend{
		name: "k3s",
		tool: "k3s",
		args: []string{"kubectl", "get", "nodes", "-o", "json"},
	}
}

func newMicroK8sBackend() *execBackend {
	return &execBackend{
		name:     "microk8s",
		tool:     "kubectl",
		args:     []string{"--kubeconfig", microK8sKubeconfig, "get", "nodes", "-o", "json"},
		required: microK8sKubeconfig,
	}
}

func (b *execBackend) Name() string { return b.name }

func (b *execBackend) List(ctx context.Context) ([]NodeInfo, error) {
	path, err := exec.LookPath(b.tool)
	if err != nil {
		return nil, fmt.Errorf("%s not found in PATH: %w", b.tool, err)
	}

	if b.required != "" {
		if _, err := os.Stat(b.required); err != nil {
			return nil, fmt.Errorf("config %s not present: %w", b.required, err)
		}
	}

	cctx, cancel := context.WithTimeout(ctx, defaults.ClusterQueryTimeout)
	defer cancel()

	output, err := exec.CommandContext(cctx, path, b.args...).Output()
	if err != nil {
		return nil, fmt.Errorf("failed to query %s node listing: %w", b.name, err)
	}

	return parseNodeListing(output)
}
