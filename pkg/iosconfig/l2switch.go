/*
Copyright 2024 topo-configgen contributors
*/

package iosconfig

import (
	"github.com/nodeforge/topo-configgen/pkg/topoerr"
	"github.com/nodeforge/topo-configgen/pkg/topology"
)

// buildL2Switch renders one plain switch's command stream per spec.md
// §4.6c: a VLAN database, access ports for its attached computers, trunk
// ports toward neighboring plain switches and L3 devices, and any
// EtherChannel bundles it participates
// in. L2 switches do not route, so no static-routes block is emitted. The
// optional SSH management block spec.md §4.6c allows is omitted: the
// submitted schema carries no field (credentials, ACL, VTY count) to drive
// its contents, so "optional" is read here as "omit absent input" rather
// than a feature to fabricate defaults for.
func buildL2Switch(in Inputs, d *topology.Device) (*DeviceConfig, error) {
	if err := requireModel(in, d); err != nil {
		return nil, err
	}

	b := NewBuilder()
	b.Block(ModeGlobal, "hostname "+d.Name)
	b.Block(ModeGlobal, "enable secret cisco")

	attached, err := emitSwitchVLANDatabase(in, d, b)
	if err != nil {
		return nil, err
	}

	if err := emitSwitchAccessPorts(in, d, b); err != nil {
		return nil, err
	}

	emitTrunkPorts(in, d, b)

	for _, side := range etherChannelLinksOf(in.Topology, d.ID) {
		emitEtherChannel(b, side)
	}

	return &DeviceConfig{
		Device:        d.ID,
		Hostname:      d.Name,
		Commands:      Format(d.Name, b.Lines()),
		KnownNetworks: nil,
		AttachedVLANs: attached,
	}, nil
}

// emitSwitchVLANDatabase emits one "vlan <id>"/"name <name>" block for every
// VLAN referenced by this switch's attached computers, in topology VLAN
// order, and returns the VLAN names in that order.
func emitSwitchVLANDatabase(in Inputs, d *topology.Device, b *Builder) ([]string, error) {
	wanted := make(map[string]bool, len(d.Computers))
	for _, c := range d.Computers {
		wanted[c.VLAN] = true
	}

	var attached []string
	for _, name := range in.Topology.VLANNames() {
		if !wanted[name] {
			continue
		}
		vlan := in.Topology.VLANs[name]
		vlanID, err := vlan.NumericID()
		if err != nil {
			return nil, err
		}
		b.Blockf(ModeVLANDatabase, "vlan %d", vlanID)
		b.Linef("name %s", vlan.Name)
		attached = append(attached, name)
	}
	return attached, nil
}

// emitSwitchAccessPorts emits an access-port block for every computer
// attached to this switch.
func emitSwitchAccessPorts(in Inputs, d *topology.Device, b *Builder) error {
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
