/*
Copyright 2024 topo-configgen contributors
*/

// Package linkplan assigns backbone /30 subnets to routed L3-to-L3 links
// and records the per-endpoint IP/interface bindings used by the device
// configurators. The allocation strategy mirrors IPV4Network.AddSubnet in
// the networking package this module descends from, narrowed to the fixed
// /30 backbone case.
package linkplan

import (
	"net"

	"github.com/nodeforge/topo-configgen/pkg/ipam"
	"github.com/nodeforge/topo-configgen/pkg/topoerr"
	"github.com/nodeforge/topo-configgen/pkg/topology"
)

const backbonePrefixLen = 30

// Endpoint is one side of a backbone link's address assignment.
type Endpoint struct {
	Device    topology.DeviceID
	Interface topology.InterfaceRef
	IP        net.IP
}

// Assignment is the plan record for one routed link.
type Assignment struct {
	Link    topology.LinkID
	Subnet  net.IPNet
	Lower   Endpoint
	Higher  Endpoint
}

// Plan maps every routed link to its backbone assignment.
type Plan struct {
	ByLink map[topology.LinkID]*Assignment
}

// Build allocates a /30 for every routed link in topo, in submission order,
// and assigns host addresses per spec.md §4.3: the endpoint ordered first
// by (kind priority, name) receives the lower usable host.
func Build(topo *topology.Topology, registry *ipam.Registry) (*Plan, error) {
	plan := &Plan{ByLink: make(map[topology.LinkID]*Assignment)}

	for _, link := range topo.RoutedLinks() {
		subnet, err := registry.Allocate(backbonePrefixLen)
		if err != nil {
			return nil, topoerr.Wrap(topoerr.AddressExhausted, string(link.ID), err)
		}

		lowerDevice, higherDevice := topo.BackboneEndpointOrder(link)
		lowerIP := ipam.Add(subnet.IP, 1)
		higherIP := ipam.Add(subnet.IP, 2)

		lowerIface, higherIface := link.FromInterface, link.ToInterface
		if lowerDevice.ID != link.From {
			lowerIface, higherIface = link.ToInterface, link.FromInterface
		}

		plan.ByLink[link.ID] = &Assignment{
			Link:   link.ID,
			Subnet: subnet,
			Lower: Endpoint{
				Device:    lowerDevice.ID,
				Interface: lowerIface,
				IP:        lowerIP,
			},
			Higher: Endpoint{
				Device:    higherDevice.ID,
				Interface: higherIface,
				IP:        higherIP,
			},
		}
	}

	return plan, nil
}

// EndpointFor returns the Endpoint belonging to device on link, if any.
func (p *Plan) EndpointFor(linkID topology.LinkID, device topology.DeviceID) (Endpoint, bool) {
	a, ok := p.ByLink[linkID]
	if !ok {
		return Endpoint{}, false
	}
	if a.Lower.Device == device {
		return a.Lower, true
	}
	if a.Higher.Device == device {
		return a.Higher, true
	}
	return Endpoint{}, false
}

// OtherEndpoint returns the Endpoint on the far side of linkID from device.
func (p *Plan) OtherEndpoint(linkID topology.LinkID, device topology.DeviceID) (Endpoint, bool) {
	a, ok := p.ByLink[linkID]
	if !ok {
		return Endpoint{}, false
	}
	if a.Lower.Device == device {
		return a.Higher, true
	}
	if a.Higher.Device == device {
		return a.Lower, true
	}
	return Endpoint{}, false
}
