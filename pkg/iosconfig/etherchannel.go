/*
Copyright 2024 topo-configgen contributors
*/

// EtherChannel Composer: folds each endpoint's half of an EtherChannel
// bundle into its own command stream, per spec.md §4.6d.
package iosconfig

import "github.com/nodeforge/topo-configgen/pkg/topology"

// emitEtherChannel appends the interface-range + channel-group +
// port-channel sequence for one endpoint of an EtherChannel bundle.
func emitEtherChannel(b *Builder, side etherChannelSide) {
	ec := side.link.EtherChannel

	b.Blockf(ModeInterface, "interface range %s%s", side.ownRange.Type, side.ownRange.RangeSpec())
	b.Linef("channel-group %d mode %s", ec.Group, channelMode(ec.Protocol, side.isFrom))
	b.Line("no shutdown")

	b.Blockf(ModeInterface, "interface Port-channel%d", ec.Group)
	b.Line("switchport mode trunk")
	b.Line("no shutdown")
}

// channelMode returns the negotiation mode for one side of a bundle: the
// "from" side runs the active/desirable role, the "to" side the
// complementary passive/auto role.
func channelMode(protocol topology.EtherChannelProtocol, isFrom bool) string {
	switch protocol {
	case topology.ProtocolLACP:
		if isFrom {
			return "active"
		}
		return "passive"
	case topology.ProtocolPAgP:
		if isFrom {
			return "desirable"
		}
		return "auto"
	}
	return "on"
}
