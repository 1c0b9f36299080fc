package probe

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ElangoShush/carrier-prerequest/pkg/defaults"
	"github.com/ElangoShush/carrier-prerequest/pkg/report"
)

// routeProbeTarget is a stable public address used only to ask the kernel
// which source address and device it would route through. No packet is sent.
const routeProbeTarget = "1.1.1.1"

// ipRoute is the typed shape of `ip -j route` entries. Unknown fields are
// ignored; missing fields degrade to empty values rather than failing.
type ipRoute struct {
	Dst     string `json:"dst"`
	Gateway string `json:"gateway"`
	Dev     string `json:"dev"`
	PrefSrc string `json:"prefsrc"`
}

// ipAddress is the typed shape of `ip -j addr show` entries.
type ipAddress struct {
	IfName   string `json:"ifname"`
	AddrInfo []struct {
		Family string `json:"family"`
		Local  string `json:"local"`
		Prefix int    `json:"prefixlen"`
	} `json:"addr_info"`
}

// NetworkProbe derives the host's network identity from the routing table:
// default gateway, egress interface, and the source address used for
// outbound traffic.
func NetworkProbe() Probe {
	return Probe{
		ID:      "network",
		Section: "network",
		Tools:   []string{"ip"},
		Run:     runNetwork,
	}
}

func runNetwork(ctx context.Context) (*Output, error) {
	gateway, gwDev := defaultRoute(ctx)
	sourceIP, egress := routeTo(ctx, routeProbeTarget)
	if egress == "" {
		egress = gwDev
	}

	if gateway == "" && sourceIP == "" {
		return nil, fmt.Errorf("no default route and no routable source address")
	}

	findings := []report.Finding{
		{Label: "source-ip", Value: orUnknown(sourceIP)},
		{Label: "egress-iface", Value: orUnknown(egress)},
		{Label: "default-gateway", Value: orUnknown(gateway)},
	}

	if egress != "" {
		for _, addr := range interfaceAddrs(ctx, egress) {
			findings = append(findings, report.Finding{Label: "addr:" + egress, Value: addr})
		}
	}

	return &Output{
		Findings: findings,
		Notes: map[string]string{
			report.NoteSourceIP:    sourceIP,
			report.NoteEgressIface: egress,
			report.NoteGateway:     gateway,
		},
	}, nil
}

// defaultRoute returns the gateway and device of the default route, or
// empty values when the output is unparseable. The parser fails closed.
func defaultRoute(ctx context.Context) (gateway, dev string) {
	out, err := runCommand(ctx, defaults.ProbeCommandTimeout, "ip", "-j", "route", "show", "default")
	if err != nil {
		return "", ""
	}

	routes := parseRoutes(out)
	if len(routes) == 0 {
		return "", ""
	}
	return routes[0].Gateway, routes[0].Dev
}

// routeTo returns the preferred source address and device for reaching the
// given address, empty on any parse failure.
func routeTo(ctx context.Context, target string) (src, dev string) {
	out, err := runCommand(ctx, defaults.ProbeCommandTimeout, "ip", "-j", "route", "get", target)
	if err != nil {
		return "", ""
	}

	routes := parseRoutes(out)
	if len(routes) == 0 {
		return "", ""
	}
	return routes[0].PrefSrc, routes[0].Dev
}

// interfaceAddrs lists the IPv4 addresses on the named interface.
func interfaceAddrs(ctx context.Context, ifname string) []string {
	out, err := runCommand(ctx, defaults.ProbeCommandTimeout, "ip", "-j", "-4", "addr", "show", "dev", ifname)
	if err != nil {
		return nil
	}
	return parseAddrs(out)
}

// parseRoutes decodes `ip -j route` output, returning nil on any
// malformation so callers treat the field as absent.
func parseRoutes(out string) []ipRoute {
	var routes []ipRoute
	if err := json.Unmarshal([]byte(out), &routes); err != nil {
		return nil
	}
	return routes
}

// parseAddrs decodes `ip -j addr show` output into CIDR strings, nil on
// malformation.
func parseAddrs(out string) []string {
	var addrs []ipAddress
	if err := json.Unmarshal([]byte(out), &addrs); err != nil {
		return nil
	}

	var result []string
	for _, a := range addrs {
		for _, info := range a.AddrInfo {
			if info.Family == "inet" && info.Local != "" {
				result = append(result, fmt.Sprintf("%s/%d", info.Local, info.Prefix))
			}
		}
	}
	return result
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
