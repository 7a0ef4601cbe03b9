/*
Copyright 2024 topo-configgen contributors
*/

package iosconfig

import (
	"net"

	"github.com/nodeforge/topo-configgen/pkg/linkplan"
	"github.com/nodeforge/topo-configgen/pkg/routing"
	"github.com/nodeforge/topo-configgen/pkg/topoerr"
	"github.com/nodeforge/topo-configgen/pkg/topology"
	"github.com/nodeforge/topo-configgen/pkg/vlanplan"
)

// DeviceConfig is the rendered command stream for one device, plus the
// metadata the emitters and tests need without re-deriving it.
type DeviceConfig struct {
	Device        topology.DeviceID
	Hostname      string
	Commands      string
	KnownNetworks []net.IPNet
	AttachedVLANs []string
}

// Plan maps every configured device (router, L3 core, L2 switch) to its
// rendered command stream.
type Plan struct {
	ByDevice map[topology.DeviceID]*DeviceConfig
}

// Inputs bundles the upstream plans a device configurator needs.
type Inputs struct {
	Topology *topology.Topology
	Links    *linkplan.Plan
	VLANs    *vlanplan.Plan
	Routes   *routing.Plan
	Mode     topology.GenerationMode
}

// Build renders every router, L3 core switch, and L2 switch in the
// topology. EtherChannel bundles are folded into their endpoint devices'
// streams by the per-kind builders, per spec.md §4.6d.
func Build(in Inputs) (*Plan, error) {
	plan := &Plan{ByDevice: make(map[topology.DeviceID]*DeviceConfig)}

	for _, d := range in.Topology.DevicesByKind(topology.DeviceKindRouter) {
		cfg, err := buildRouter(in, d)
		if err != nil {
			return nil, err
		}
		plan.ByDevice[d.ID] = cfg
	}

	for _, d := range in.Topology.DevicesByKind(topology.DeviceKindSwitchCore) {
		cfg, err := buildL3Core(in, d)
		if err != nil {
			return nil, err
		}
		plan.ByDevice[d.ID] = cfg
	}

	for _, d := range in.Topology.DevicesByKind(topology.DeviceKindSwitch) {
		cfg, err := buildL2Switch(in, d)
		if err != nil {
			return nil, err
		}
		plan.ByDevice[d.ID] = cfg
	}

	return plan, nil
}

// requireModel enforces spec.md §6's physical-mode precondition: a routed
// L2/L3 device must carry a model tag.
func requireModel(in Inputs, d *topology.Device) error {
	if in.Mode == topology.ModePhysical && d.Model == "" {
		return topoerr.New(topoerr.PhysicalModelMissing, d.Name, "device %q has no model tag in physical mode", d.Name)
	}
	return nil
}

// etherChannelSide is one device's half of an EtherChannel bundle: the link,
// the device's own interface range on it, and whether the device is the
// link's "from" end. etherChannelLinksOf returns one per bundle the device
// participates in.
type etherChannelSide struct {
	link     *topology.Link
	ownRange topology.InterfaceRange
	isFrom   bool
}

func etherChannelLinksOf(topo *topology.Topology, id topology.DeviceID) []etherChannelSide {
	var out []etherChannelSide
	for _, l := range topo.LinksOf(id) {
		if !l.IsEtherChannel() {
			continue
		}
		if l.From == id {
			out = append(out, etherChannelSide{link: l, ownRange: l.EtherChannel.FromRange, isFrom: true})
		} else {
			out = append(out, etherChannelSide{link: l, ownRange: l.EtherChannel.ToRange, isFrom: false})
		}
	}
	return out
}
