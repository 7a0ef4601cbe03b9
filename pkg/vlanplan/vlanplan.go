/*
Copyright 2024 topo-configgen contributors
*/

// Package vlanplan allocates a subnet per declared VLAN and derives the
// fixed gateway and DHCP-exclusion policy described in spec.md §4.4. It is
// grounded on the teacher's IPV4Subnet gateway/DHCP-exclusion fields and
// UpdateDHCPRange, narrowed to a policy that is not user-configurable.
package vlanplan

import (
	"net"

	"github.com/nodeforge/topo-configgen/pkg/ipam"
	"github.com/nodeforge/topo-configgen/pkg/topoerr"
	"github.com/nodeforge/topo-configgen/pkg/topology"
)

// dhcpExclusionCount is the number of leading usable hosts excluded from
// DHCP leasing, per spec.md §4.4. Fixed policy, not configurable.
const dhcpExclusionCount = 10

// Assignment is the plan record for one VLAN.
type Assignment struct {
	Name           string
	Subnet         net.IPNet
	Gateway        net.IP
	Broadcast      net.IP
	ExclusionStart net.IP
	ExclusionEnd   net.IP
}

// Plan maps every VLAN name to its allocated subnet and derived addresses.
type Plan struct {
	ByName map[string]*Assignment
}

// Build allocates a subnet for every VLAN in topo, in the order the VLANs
// were declared via topology.Build. Iterating in submission order (rather
// than Go map order) keeps subnet assignment deterministic across runs.
func Build(topo *topology.Topology, registry *ipam.Registry) (*Plan, error) {
	plan := &Plan{ByName: make(map[string]*Assignment)}

	for _, name := range topo.VLANNames() {
		vlan := topo.VLANs[name]
		subnet, err := registry.Allocate(vlan.Prefix)
		if err != nil {
			return nil, topoerr.Wrap(topoerr.AddressExhausted, name, err)
		}

		gateway := ipam.Gateway(subnet)
		broadcast := ipam.Broadcast(subnet)

		exclusionEnd := ipam.Add(subnet.IP, dhcpExclusionCount)
		if compareIP(exclusionEnd, gateway) >= 0 {
			// A short VLAN subnet (e.g. /30) can't fit ten excluded hosts
			// without colliding with the gateway; clamp to the host just
			// below the gateway, per spec.md's boundary behavior note.
			exclusionEnd = ipam.Add(gateway, -1)
		}

		plan.ByName[name] = &Assignment{
			Name:           name,
			Subnet:         subnet,
			Gateway:        gateway,
			Broadcast:      broadcast,
			ExclusionStart: ipam.Add(subnet.IP, 1),
			ExclusionEnd:   exclusionEnd,
		}
	}

	return plan, nil
}

func compareIP(a, b net.IP) int {
	a4 := a.To4()
	b4 := b.To4()
	for i := range a4 {
		if a4[i] != b4[i] {
			if a4[i] < b4[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}
