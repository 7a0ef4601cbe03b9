/*
Copyright 2024 topo-configgen contributors
*/

package iosconfig

import (
	"net"

	"github.com/nodeforge/topo-configgen/pkg/topoerr"
	"github.com/nodeforge/topo-configgen/pkg/topology"
)

// emitBackboneInterfaces assigns the /30 backbone IP directly to the
// physical interface of every routed link incident to d, shared by the
// router and L3-core builders (spec.md §4.6 ordering item 4).
func emitBackboneInterfaces(in Inputs, d *topology.Device, b *Builder) ([]net.IPNet, error) {
	var known []net.IPNet

	for _, l := range in.Topology.LinksOf(d.ID) {
		if !in.Topology.IsRoutedLink(l) {
			continue
		}
		ep, ok := in.Links.EndpointFor(l.ID, d.ID)
		if !ok {
			return nil, topoerr.New(topoerr.ConfigBuildFailure, d.Name, "routed link %q has no backbone assignment for %q", l.ID, d.Name)
		}
		assignment := in.Links.ByLink[l.ID]
		b.Blockf(ModeInterface, "interface %s", ep.Interface.String())
		b.Linef("ip address %s %s", ep.IP.String(), maskString(assignment.Subnet.Mask))
		b.Line("no shutdown")
		known = append(known, assignment.Subnet)
	}

	return known, nil
}

// emitStaticRoutes opens the routes block and emits every synthesized
// static route for d, in the order the routing solver discovered them.
func emitStaticRoutes(in Inputs, d *topology.Device, b *Builder) {
	b.EnterRoutes()
	for _, r := range in.Routes.ByRouter[d.ID] {
		b.Linef("ip route %s %s %s", r.Destination.IP.String(), maskString(r.Destination.Mask), r.NextHop.String())
	}
}
