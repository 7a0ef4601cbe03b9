/*
Copyright 2024 topo-configgen contributors
*/

package emit

import (
	"fmt"
	"strings"

	"github.com/nodeforge/topo-configgen/pkg/coords"
)

// escapeForSingleLine turns a multi-line command stream into the escaped
// single-line form configureIosDevice expects, per spec.md §4.8.
func escapeForSingleLine(commands string) string {
	return strings.ReplaceAll(strings.TrimRight(commands, "\n"), "\n", "\\n")
}

// SimulatorDriver renders the scripted device-placement program spec.md
// §4.8 describes: one addDevice call per device in submission order, then
// one configureIosDevice call per configured device, then link-creation
// statements mirroring the graph.
func SimulatorDriver(in Inputs, scale float64) string {
	devices := in.Topology.AllDevices()

	positions := make([]coords.DevicePosition, len(devices))
	for i, d := range devices {
		positions[i] = coords.DevicePosition{ID: string(d.ID), Point: coords.Point{X: d.X, Y: d.Y}, Supplied: d.CoordinatesSupplied}
	}
	remapped := coords.RemapDevices(positions, scale)

	var b strings.Builder

	for _, d := range devices {
		p := remapped[string(d.ID)]
		fmt.Fprintf(&b, "addDevice(\"%s\", \"%s\", %g, %g);\n", d.Name, ModelTag(d), p.X, p.Y)
	}

	for _, d := range devices {
		cfg, ok := in.Configs.ByDevice[d.ID]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "configureIosDevice(\"%s\", \"%s\");\n", d.Name, escapeForSingleLine(cfg.Commands))
	}

	for _, l := range in.Topology.AllLinks() {
		from := in.Topology.Devices[l.From]
		to := in.Topology.Devices[l.To]
		fmt.Fprintf(&b, "addLink(\"%s\", \"%s\");\n", from.Name, to.Name)
	}

	return b.String()
}
