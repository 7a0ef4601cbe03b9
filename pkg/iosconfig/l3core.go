/*
Copyright 2024 topo-configgen contributors
*/

package iosconfig

import (
	"github.com/nodeforge/topo-configgen/pkg/topoerr"
	"github.com/nodeforge/topo-configgen/pkg/topology"
)

// buildL3Core renders one L3 core switch's command stream per spec.md
// §4.6b: ip routing, SVIs for hosted VLANs, trunk ports, access ports, DHCP
// pools, and a static-routes block.
func buildL3Core(in Inputs, d *topology.Device) (*DeviceConfig, error) {
	if err := requireModel(in, d); err != nil {
		return nil, err
	}

	b := NewBuilder()
	b.Block(ModeGlobal, "hostname "+d.Name)
	b.Block(ModeGlobal, "enable secret cisco")
	b.Block(ModeGlobal, "ip routing")

	known, err := emitBackboneInterfaces(in, d, b)
	if err != nil {
		return nil, err
	}

	owned := in.Topology.OwnedVLANs(d.ID)
	if len(owned) > 0 {
		for _, vlanName := range owned {
			vlan := in.Topology.VLANs[vlanName]
			vlanID, err := vlan.NumericID()
			if err != nil {
				return nil, err
			}
			b.Blockf(ModeVLANDatabase, "vlan %d", vlanID)
			b.Linef("name %s", vlan.Name)
		}
	}

	if err := emitL3CoreAccessPorts(in, d, b); err != nil {
		return nil, err
	}

	emitTrunkPorts(in, d, b)

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
		b.Blockf(ModeInterface, "interface vlan %d", vlanID)
		b.Linef("ip address %s %s", assignment.Gateway.String(), maskString(assignment.Subnet.Mask))
		b.Line("no shutdown")
		known = append(known, assignment.Subnet)
	}

	for _, side := range etherChannelLinksOf(in.Topology, d.ID) {
		emitEtherChannel(b, side)
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

	emitStaticRoutes(in, d, b)

	return &DeviceConfig{
		Device:        d.ID,
		Hostname:      d.Name,
		Commands:      Format(d.Name, b.Lines()),
		KnownNetworks: known,
		AttachedVLANs: owned,
	}, nil
}

// emitL3CoreAccessPorts emits an access-port block for every computer wired
// directly to this L3 core (spec.md §4.6b's "access ports for attached
// hosts").
func emitL3CoreAccessPorts(in Inputs, d *topology.Device, b *Builder) error {
	for _, c := range d.Computers {
		vlan := in.Topology.VLANs[c.VLAN]
		if vlan == nil {
			return topoerr.New(topoerr.ConfigBuildFailure, d.Name, "computer %q references unknown VLAN %q", c.Name, c.VLAN)
		}
		vlanID, err := vlan.NumericID()
		if err != nil {
			return err
		}
		b.Blockf(ModeInterface, "interface %s%s", c.PortType, c.PortNumber)
		b.Linef("switchport access vlan %d", vlanID)
		b.Line("no shutdown")
	}
	return nil
}

// emitTrunkPorts emits a trunk interface toward every directly attached
// plain switch or other L3 device reached over a non-backbone (unrouted)
// link, per spec.md §4.6b's "trunk ports toward connected routers/cores".
func emitTrunkPorts(in Inputs, d *topology.Device, b *Builder) {
	for _, l := range in.Topology.LinksOf(d.ID) {
		if in.Topology.IsRoutedLink(l) {
			continue
		}
		if l.IsEtherChannel() {
			continue
		}
		other := in.Topology.Devices[topology.OtherEnd(l, d.ID)]
		if other == nil || !(other.Kind == topology.DeviceKindSwitch || other.Kind.IsL3()) {
			continue
		}
		iface := l.FromInterface
		if l.To == d.ID {
			iface = l.ToInterface
		}
		b.Blockf(ModeInterface, "interface %s", iface.String())
		b.Line("switchport mode trunk")
		b.Line("no shutdown")
	}
}
