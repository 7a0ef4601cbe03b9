/*
Copyright 2024 topo-configgen contributors
*/

// Package emit renders a completed generation plan into the three output
// artifacts spec.md §4.8 defines: per-category device bundles, the
// allocation report, and the simulator driver script. Grounded on the
// teacher's report-assembly idiom (pkg/csi/makedocs.go): deterministic,
// banner-delimited text generation driven by an ordered slice, never a
// map range.
package emit

import (
	"github.com/nodeforge/topo-configgen/pkg/iosconfig"
	"github.com/nodeforge/topo-configgen/pkg/linkplan"
	"github.com/nodeforge/topo-configgen/pkg/topology"
	"github.com/nodeforge/topo-configgen/pkg/vlanplan"
)

// DefaultModel returns the device-model tag spec.md §6 assigns by kind when
// the request did not pin one: router -> 2811, L2 switch -> 2960-24TT, L3
// core -> 3560-24PS, host -> PC-PT.
func DefaultModel(kind topology.DeviceKind) string {
	switch kind {
	case topology.DeviceKindRouter:
		return "2811"
	case topology.DeviceKindSwitchCore:
		return "3560-24PS"
	case topology.DeviceKindSwitch:
		return "2960-24TT"
	case topology.DeviceKindHost:
		return "PC-PT"
	default:
		return ""
	}
}

// ModelTag resolves the model tag to emit for a device: the device's own
// tag if set (required in physical mode, optional otherwise), else the
// per-kind default.
func ModelTag(d *topology.Device) string {
	if d.Model != "" {
		return d.Model
	}
	return DefaultModel(d.Kind)
}

// Inputs bundles everything the emitters need to render artifacts from a
// completed plan.
type Inputs struct {
	Topology *topology.Topology
	Links    *linkplan.Plan
	VLANs    *vlanplan.Plan
	Configs  *iosconfig.Plan
}
