/*
Copyright 2024 topo-configgen contributors
*/

// Package routing computes static routes by direction-respecting BFS over
// the topology's out-neighbor adjacency, per spec.md §4.5. The traversal is
// written inline in solveFrom: it walks topo.OutNeighbors directly and skips
// unrouted links itself; it does not take an adjacency function or a
// caller-supplied direction predicate.
package routing

import (
	"net"

	"github.com/nodeforge/topo-configgen/pkg/linkplan"
	"github.com/nodeforge/topo-configgen/pkg/topology"
	"github.com/nodeforge/topo-configgen/pkg/vlanplan"
)

// Network is one directly connected or reachable subnet.
type Network struct {
	Subnet net.IPNet
}

func (n Network) key() string { return n.Subnet.String() }

// Route is one synthesized static route: destination network reachable via
// next-hop, the IP of a directly connected L3 neighbor.
type Route struct {
	Destination net.IPNet
	NextHop     net.IP
}

// Plan maps every L3 device (router or switch_core) to its synthesized
// static routes, in the order they were discovered by BFS.
type Plan struct {
	ByRouter map[topology.DeviceID][]Route
}

// DirectNetworks returns the subnets directly connected to device id: the
// backbone subnet of every routed link incident to it, plus (for L3
// devices) the subnet of every VLAN it owns a gateway for.
func DirectNetworks(topo *topology.Topology, links *linkplan.Plan, vlans *vlanplan.Plan, id topology.DeviceID) []Network {
	var out []Network
	seen := make(map[string]bool)

	add := func(n Network) {
		k := n.key()
		if !seen[k] {
			seen[k] = true
			out = append(out, n)
		}
	}

	for _, lid := range topo.Incident(id) {
		l := topo.Links[lid]
		if !topo.IsRoutedLink(l) {
			continue
		}
		if a, ok := links.ByLink[lid]; ok {
			add(Network{Subnet: a.Subnet})
		}
	}

	device := topo.Devices[id]
	if device != nil && device.Kind.IsL3() {
		for _, vlanName := range topo.OwnedVLANs(id) {
			if assignment, ok := vlans.ByName[vlanName]; ok {
				add(Network{Subnet: assignment.Subnet})
			}
		}
	}

	return out
}

// Solve computes static routes for every L3 device (router or switch_core)
// in topo, per spec.md §4.6's "Static routes (routers and L3 cores)" rule.
func Solve(topo *topology.Topology, links *linkplan.Plan, vlans *vlanplan.Plan) *Plan {
	plan := &Plan{ByRouter: make(map[topology.DeviceID][]Route)}

	for _, d := range topo.DevicesByKind(topology.DeviceKindRouter) {
		plan.ByRouter[d.ID] = solveFrom(topo, links, vlans, d.ID)
	}
	for _, d := range topo.DevicesByKind(topology.DeviceKindSwitchCore) {
		plan.ByRouter[d.ID] = solveFrom(topo, links, vlans, d.ID)
	}

	return plan
}

// solveFrom runs the BFS described in spec.md §4.5 from a single L3 device
// (router or switch_core).
func solveFrom(topo *topology.Topology, links *linkplan.Plan, vlans *vlanplan.Plan, root topology.DeviceID) []Route {
	directRoot := DirectNetworks(topo, links, vlans, root)
	directRootKeys := make(map[string]bool, len(directRoot))
	for _, n := range directRoot {
		directRootKeys[n.key()] = true
	}

	visited := map[topology.DeviceID]bool{root: true}
	firstHop := make(map[topology.DeviceID]net.IP)

	type queued struct {
		node topology.DeviceID
	}
	queue := []queued{{node: root}}

	var order []topology.DeviceID

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, edge := range topo.OutNeighbors(cur.node) {
			link := topo.Links[edge.Link]
			if !topo.IsRoutedLink(link) {
				continue
			}
			if visited[edge.To] {
				continue
			}
			visited[edge.To] = true

			if cur.node == root {
				if ep, ok := links.OtherEndpoint(edge.Link, root); ok {
					firstHop[edge.To] = ep.IP
				}
			} else {
				firstHop[edge.To] = firstHop[cur.node]
			}

			order = append(order, edge.To)
			queue = append(queue, queued{node: edge.To})
		}
	}

	seenDest := make(map[string]bool)
	var routes []Route

	for _, node := range order {
		hop := firstHop[node]
		if hop == nil {
			continue
		}
		for _, n := range DirectNetworks(topo, links, vlans, node) {
			k := n.key()
			if directRootKeys[k] || seenDest[k] {
				continue
			}
			seenDest[k] = true
			routes = append(routes, Route{Destination: n.Subnet, NextHop: hop})
		}
	}

	return routes
}
