/*
Copyright 2024 topo-configgen contributors
*/

package emit

import (
	"strings"

	"github.com/nodeforge/topo-configgen/pkg/topology"
)

// Bundles holds the four per-category device text bundles spec.md §4.8
// names: routers, L3 cores, L2 switches, and a consolidated all.
type Bundles struct {
	Routers    string
	L3Cores    string
	L2Switches string
	All        string
}

// banner renders the delimiter line that separates one device's command
// stream from the next inside a bundle.
func banner(name string) string {
	return "==== " + name + " ===="
}

func appendDevice(b *strings.Builder, name, commands string) {
	b.WriteString(banner(name))
	b.WriteString("\n")
	b.WriteString(commands)
	b.WriteString("\n")
}

// DeviceBundles renders the four category bundles in device-submission
// order. An empty category still yields a well-formed (if empty) string, so
// the empty-topology boundary case in spec.md §8 needs no special casing.
func DeviceBundles(in Inputs) Bundles {
	var routers, cores, switches, all strings.Builder

	for _, d := range in.Topology.DevicesByKind(topology.DeviceKindRouter) {
		cfg := in.Configs.ByDevice[d.ID]
		appendDevice(&routers, d.Name, cfg.Commands)
		appendDevice(&all, d.Name, cfg.Commands)
	}
	for _, d := range in.Topology.DevicesByKind(topology.DeviceKindSwitchCore) {
		cfg := in.Configs.ByDevice[d.ID]
		appendDevice(&cores, d.Name, cfg.Commands)
		appendDevice(&all, d.Name, cfg.Commands)
	}
	for _, d := range in.Topology.DevicesByKind(topology.DeviceKindSwitch) {
		cfg := in.Configs.ByDevice[d.ID]
		appendDevice(&switches, d.Name, cfg.Commands)
		appendDevice(&all, d.Name, cfg.Commands)
	}

	return Bundles{
		Routers:    routers.String(),
		L3Cores:    cores.String(),
		L2Switches: switches.String(),
		All:        all.String(),
	}
}
