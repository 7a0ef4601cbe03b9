/*
Copyright 2024 topo-configgen contributors
*/

package iosconfig

import (
	"net"

	"github.com/nodeforge/topo-configgen/pkg/topoerr"
	"github.com/nodeforge/topo-configgen/pkg/topology"
)

// buildRouter renders one router's command stream per spec.md §4.6a.
func buildRouter(in Inputs, d *topology.Device) (*DeviceConfig, error) {
	if err := requireModel(in, d); err != nil {
		return nil, err
	}

	b := NewBuilder()
	b.Block(ModeGlobal, "hostname "+d.Name)
	b.Block(ModeGlobal, "enable secret cisco")

	known, err := emitBackboneInterfaces(in, d, b)
	if err != nil {
		return nil, err
	}

	attached, err := emitRouterVLANTrunk(in, d, b, &known)
	if err != nil {
		return nil, err
	}

	for _, side := range etherChannelLinksOf(in.Topology, d.ID) {
		emitEtherChannel(b, side)
	}

	emitStaticRoutes(in, d, b)

	return &DeviceConfig{
		Device:        d.ID,
		Hostname:      d.Name,
		Commands:      Format(d.Name, b.Lines()),
		KnownNetworks: known,
		AttachedVLANs: attached,
	}, nil
}

// emitRouterVLANTrunk emits the subinterfaces and DHCP pools for every VLAN
// the router owns through its primary L2-facing interface, per spec.md
// §3's single-trunk rule and §4.6a. If every L2 neighbor is a switch_core,
// the router owns no VLANs and emits nothing here.
func emitRouterVLANTrunk(in Inputs, d *topology.Device, b *Builder, known *[]net.IPNet) ([]string, error) {
	owned := in.Topology.OwnedVLANs(d.ID)
	if len(owned) == 0 {
		return nil, nil
	}

	primary, ok := in.Topology.PrimaryL2Interface(d.ID)
	if !ok {
		return nil, topoerr.New(topoerr.ConfigBuildFailure, d.Name, "router %q owns VLANs but has no plain-switch neighbor", d.Name)
	}

	b.Blockf(ModeInterface, "interface %s", primary.String())
	b.Line("no shutdown")

	for _, vlanName := range owned {
		assignment, ok := in.VLANs.ByName[vlanName]
		if !ok {
			return nil, topoerr.New(topoerr.ConfigBuildFailure, d.Name, "VLAN %q has no subnet assignment", vlanName)
		}
		vlan := in.Topology.VLANs[vlanName]
		vlanID, err := vlan.NumericID()
		if err != nil {
			return nil, err
		}

		b.Blockf(ModeInterface, "interface %s", primary.SubInterface(vlanID))
		b.Linef("encapsulation dot1Q %d", vlanID)
		b.Linef("ip address %s %s", assignment.Gateway.String(), maskString(assignment.Subnet.Mask))
		b.Line("no shutdown")
		*known = append(*known, assignment.Subnet)
	}

	for _, vlanName := range owned {
		assignment := in.VLANs.ByName[vlanName]
		vlan := in.Topology.VLANs[vlanName]
		vlanID, err := vlan.NumericID()
		if err != nil {
			return nil, err
		}
		b.Blockf(ModeDHCPPool, "ip dhcp excluded-address %s %s", assignment.ExclusionStart.String(), assignment.ExclusionEnd.String())
		b.Blockf(ModeDHCPPool, "ip dhcp pool vlan%d", vlanID)
		b.Linef("network %s %s", assignment.Subnet.IP.String(), maskString(assignment.Subnet.Mask))
		b.Linef("default-router %s", assignment.Gateway.String())
	}

	return owned, nil
}
