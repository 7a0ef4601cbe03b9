/*
Copyright 2024 topo-configgen contributors
*/

package emit

import (
	"fmt"
	"strings"
)

// Report renders the human-readable allocation report spec.md §4.8
// describes: one four-line block per backbone subnet (network,
// endpoint-A IP, blank, endpoint-B IP) followed by one four-line block per
// VLAN subnet (network, gateway, blank, broadcast).
func Report(in Inputs) string {
	var b strings.Builder

	for _, link := range in.Topology.RoutedLinks() {
		a := in.Links.ByLink[link.ID]
		if a == nil {
			continue
		}
		fmt.Fprintf(&b, "%s\n", a.Subnet.String())
		fmt.Fprintf(&b, "%s\n", a.Lower.IP.String())
		fmt.Fprintf(&b, "\n")
		fmt.Fprintf(&b, "%s\n", a.Higher.IP.String())
	}

	for _, name := range in.Topology.VLANNames() {
		a := in.VLANs.ByName[name]
		if a == nil {
			continue
		}
		fmt.Fprintf(&b, "%s\n", a.Subnet.String())
		fmt.Fprintf(&b, "%s\n", a.Gateway.String())
		fmt.Fprintf(&b, "\n")
		fmt.Fprintf(&b, "%s\n", a.Broadcast.String())
	}

	return b.String()
}
