/*
Copyright 2024 topo-configgen contributors
*/

package topology

import (
	"github.com/nodeforge/topo-configgen/pkg/topoerr"
)

// OutEdge is one direction-respecting adjacency entry: travel to To over
// Link.
type OutEdge struct {
	To   DeviceID
	Link LinkID
}

// Topology owns every Device, Link, and VLAN of a generation request and
// the indices derived from them. It is built once per request via Build and
// never mutated afterward.
type Topology struct {
	Devices map[DeviceID]*Device
	Links   map[LinkID]*Link
	VLANs   map[string]*VLAN

	nodesByName  map[string]DeviceID
	incident     map[DeviceID][]LinkID
	outNeighbors map[DeviceID][]OutEdge

	// deviceOrder, linkOrder, and vlanOrder preserve submission order for
	// rules that depend on it, e.g. the router's primary L2-facing
	// interface (spec.md §4.6a: "iterate the router's edges in submission
	// order") and deterministic VLAN subnet allocation order.
	deviceOrder []DeviceID
	linkOrder   []LinkID
	vlanOrder   []string
}

// Build normalizes devices, links, and vlans into a validated Topology.
func Build(devices []*Device, links []*Link, vlans []*VLAN) (*Topology, error) {
	t := &Topology{
		Devices:      make(map[DeviceID]*Device, len(devices)),
		Links:        make(map[LinkID]*Link, len(links)),
		VLANs:        make(map[string]*VLAN, len(vlans)),
		nodesByName:  make(map[string]DeviceID, len(devices)),
		incident:     make(map[DeviceID][]LinkID),
		outNeighbors: make(map[DeviceID][]OutEdge),
	}

	if err := t.addDevices(devices); err != nil {
		return nil, err
	}
	if err := t.addVLANs(vlans); err != nil {
		return nil, err
	}
	if err := t.addLinks(links); err != nil {
		return nil, err
	}

	return t, nil
}

func (t *Topology) addDevices(devices []*Device) error {
	for _, d := range devices {
		if !d.Kind.Valid() {
			return topoerr.New(topoerr.InvalidTopology, d.Name, "device %q has unknown kind %q", d.Name, d.Kind)
		}
		if _, exists := t.Devices[d.ID]; exists {
			return topoerr.New(topoerr.InvalidTopology, d.Name, "duplicate device id %q", d.ID)
		}
		if existingID, exists := t.nodesByName[d.Name]; exists {
			return topoerr.New(topoerr.InvalidTopology, d.Name, "duplicate device name %q (ids %q and %q)", d.Name, existingID, d.ID)
		}
		t.Devices[d.ID] = d
		t.nodesByName[d.Name] = d.ID
		t.deviceOrder = append(t.deviceOrder, d.ID)
	}
	return nil
}

func (t *Topology) addVLANs(vlans []*VLAN) error {
	seenNative := false
	for _, v := range vlans {
		if err := v.Validate(); err != nil {
			return err
		}
		if _, exists := t.VLANs[v.Name]; exists {
			return topoerr.New(topoerr.InvalidVlan, v.Name, "duplicate VLAN name %q", v.Name)
		}
		if v.IsNative {
			if seenNative {
				return topoerr.New(topoerr.InvalidVlan, v.Name, "more than one VLAN marked native")
			}
			seenNative = true
		}
		t.VLANs[v.Name] = v
		t.vlanOrder = append(t.vlanOrder, v.Name)
	}
	return nil
}

// VLANNames returns every declared VLAN name in submission order.
func (t *Topology) VLANNames() []string {
	out := make([]string, len(t.vlanOrder))
	copy(out, t.vlanOrder)
	return out
}

func (t *Topology) addLinks(links []*Link) error {
	used := make(map[DeviceID]map[string]LinkID)

	claim := func(device DeviceID, ref InterfaceRef, link LinkID) error {
		if device == "" || ref == (InterfaceRef{}) {
			return nil
		}
		if used[device] == nil {
			used[device] = make(map[string]LinkID)
		}
		key := ref.String()
		if existing, exists := used[device][key]; exists {
			return topoerr.New(topoerr.InterfaceConflict, string(device),
				"interface %s on device %q already bound by link %q", key, device, existing)
		}
		used[device][key] = link
		return nil
	}

	for _, l := range links {
		if _, exists := t.Links[l.ID]; exists {
			return topoerr.New(topoerr.InvalidTopology, string(l.ID), "duplicate link id %q", l.ID)
		}
		from, ok := t.Devices[l.From]
		if !ok {
			return topoerr.New(topoerr.InvalidTopology, string(l.ID), "link %q references unknown from-device %q", l.ID, l.From)
		}
		to, ok := t.Devices[l.To]
		if !ok {
			return topoerr.New(topoerr.InvalidTopology, string(l.ID), "link %q references unknown to-device %q", l.ID, l.To)
		}
		if !l.RoutingDirection.Valid() {
			return topoerr.New(topoerr.InvalidTopology, string(l.ID), "link %q has unknown routing direction %q", l.ID, l.RoutingDirection)
		}

		if l.IsEtherChannel() {
			if err := t.claimEtherChannelRange(used, l); err != nil {
				return err
			}
		} else {
			if err := claim(l.From, l.FromInterface, l.ID); err != nil {
				return err
			}
			if err := claim(l.To, l.ToInterface, l.ID); err != nil {
				return err
			}
		}

		t.Links[l.ID] = l
		t.linkOrder = append(t.linkOrder, l.ID)
		t.incident[l.From] = append(t.incident[l.From], l.ID)
		t.incident[l.To] = append(t.incident[l.To], l.ID)

		t.addAdjacency(l, from, to)
	}
	return nil
}

func (t *Topology) claimEtherChannelRange(used map[DeviceID]map[string]LinkID, l *Link) error {
	ec := l.EtherChannel
	if ec.FromRange.Len() != ec.ToRange.Len() {
		return topoerr.New(topoerr.InterfaceConflict, string(l.ID),
			"etherchannel link %q has mismatched range lengths (%d vs %d)", l.ID, ec.FromRange.Len(), ec.ToRange.Len())
	}
	for _, member := range ec.FromRange.Members() {
		if used[l.From] == nil {
			used[l.From] = make(map[string]LinkID)
		}
		key := member.String()
		if existing, exists := used[l.From][key]; exists {
			return topoerr.New(topoerr.InterfaceConflict, string(l.From),
				"etherchannel range member %s on device %q collides with existing assignment from link %q", key, l.From, existing)
		}
		used[l.From][key] = l.ID
	}
	for _, member := range ec.ToRange.Members() {
		if used[l.To] == nil {
			used[l.To] = make(map[string]LinkID)
		}
		key := member.String()
		if existing, exists := used[l.To][key]; exists {
			return topoerr.New(topoerr.InterfaceConflict, string(l.To),
				"etherchannel range member %s on device %q collides with existing assignment from link %q", key, l.To, existing)
		}
		used[l.To][key] = l.ID
	}
	return nil
}

func (t *Topology) addAdjacency(l *Link, from, to *Device) {
	switch l.RoutingDirection {
	case RoutingBidirectional:
		t.outNeighbors[from.ID] = append(t.outNeighbors[from.ID], OutEdge{To: to.ID, Link: l.ID})
		t.outNeighbors[to.ID] = append(t.outNeighbors[to.ID], OutEdge{To: from.ID, Link: l.ID})
	case RoutingFromTo:
		t.outNeighbors[from.ID] = append(t.outNeighbors[from.ID], OutEdge{To: to.ID, Link: l.ID})
	case RoutingToFrom:
		t.outNeighbors[to.ID] = append(t.outNeighbors[to.ID], OutEdge{To: from.ID, Link: l.ID})
	case RoutingNone:
		// Physical connector only; contributes no routing adjacency.
	}
}

// OutNeighbors returns the direction-respecting out-adjacency of a device.
func (t *Topology) OutNeighbors(id DeviceID) []OutEdge {
	return t.outNeighbors[id]
}

// Incident returns every link touching a device, in submission order.
func (t *Topology) Incident(id DeviceID) []LinkID {
	return t.incident[id]
}

// DeviceByName looks a device up by its unique name.
func (t *Topology) DeviceByName(name string) (*Device, bool) {
	id, ok := t.nodesByName[name]
	if !ok {
		return nil, false
	}
	return t.Devices[id], true
}

// AllLinks returns every link in submission order.
func (t *Topology) AllLinks() []*Link {
	out := make([]*Link, 0, len(t.linkOrder))
	for _, id := range t.linkOrder {
		out = append(out, t.Links[id])
	}
	return out
}

// AllDevices returns every device in submission order.
func (t *Topology) AllDevices() []*Device {
	out := make([]*Device, 0, len(t.deviceOrder))
	for _, id := range t.deviceOrder {
		out = append(out, t.Devices[id])
	}
	return out
}

// DevicesByKind returns every device of the given kind, in submission
// order.
func (t *Topology) DevicesByKind(kind DeviceKind) []*Device {
	var out []*Device
	for _, id := range t.deviceOrder {
		if d := t.Devices[id]; d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}

// LinksOf returns the links incident to a device, in submission order.
// The far endpoint is not resolved here; callers use OtherEnd for that.
func (t *Topology) LinksOf(id DeviceID) []*Link {
	ids := t.incident[id]
	out := make([]*Link, 0, len(ids))
	for _, lid := range ids {
		out = append(out, t.Links[lid])
	}
	return out
}

// OtherEnd returns the device id at the far end of link l from the
// perspective of id.
func OtherEnd(l *Link, id DeviceID) DeviceID {
	if l.From == id {
		return l.To
	}
	return l.From
}

// IsRoutedLink reports whether a link is routed per spec.md §3: both
// endpoints are L3 and the routing direction is not none.
func (t *Topology) IsRoutedLink(l *Link) bool {
	from := t.Devices[l.From]
	to := t.Devices[l.To]
	if from == nil || to == nil {
		return false
	}
	return from.Kind.IsL3() && to.Kind.IsL3() && l.RoutingDirection != RoutingNone
}

// RoutedLinks returns every routed link, in submission order.
func (t *Topology) RoutedLinks() []*Link {
	var out []*Link
	for _, id := range t.linkOrder {
		if l := t.Links[id]; t.IsRoutedLink(l) {
			out = append(out, l)
		}
	}
	return out
}

// NeighborsOfKind returns the devices of the given kind directly linked to
// id, regardless of routing direction, in submission (incident-link) order.
func (t *Topology) NeighborsOfKind(id DeviceID, kind DeviceKind) []*Device {
	var out []*Device
	for _, lid := range t.incident[id] {
		l := t.Links[lid]
		other := t.Devices[OtherEnd(l, id)]
		if other != nil && other.Kind == kind {
			out = append(out, other)
		}
	}
	return out
}

// OwnedVLANs returns the VLAN names an L3 device (router or switch_core)
// directly owns gateways for: those referenced by its own Computers (access
// ports wired straight to the L3 device, the switch_core case of spec.md
// §4.6b) plus those referenced by any Computer.VLAN field on its directly
// attached plain switches (the trunked-in case of spec.md §4.6a). Names are
// returned in first-seen order, deduplicated.
func (t *Topology) OwnedVLANs(id DeviceID) []string {
	seen := make(map[string]bool)
	var out []string

	collect := func(computers []Computer) {
		for _, c := range computers {
			if c.VLAN == "" || seen[c.VLAN] {
				continue
			}
			seen[c.VLAN] = true
			out = append(out, c.VLAN)
		}
	}

	if d := t.Devices[id]; d != nil {
		collect(d.Computers)
	}
	for _, sw := range t.NeighborsOfKind(id, DeviceKindSwitch) {
		collect(sw.Computers)
	}
	return out
}

// PrimaryL2Interface returns the interface on device id that faces its
// first plain-switch neighbor in submission order, per spec.md §4.6a's
// single-trunk rule. ok is false if id has no plain-switch neighbor.
func (t *Topology) PrimaryL2Interface(id DeviceID) (ref InterfaceRef, ok bool) {
	for _, lid := range t.incident[id] {
		l := t.Links[lid]
		other := t.Devices[OtherEnd(l, id)]
		if other == nil || other.Kind != DeviceKindSwitch {
			continue
		}
		if l.From == id {
			return l.FromInterface, true
		}
		return l.ToInterface, true
	}
	return InterfaceRef{}, false
}

// BackboneEndpointOrder orders the two endpoints of a routed link by
// (kind priority, name) ascending, per spec.md §4.3: the lower-ordered
// endpoint receives the numerically lower host address.
func (t *Topology) BackboneEndpointOrder(l *Link) (lower, higher *Device) {
	a := t.Devices[l.From]
	b := t.Devices[l.To]

	less := func(x, y *Device) bool {
		if x.Kind.l3Priority() != y.Kind.l3Priority() {
			return x.Kind.l3Priority() < y.Kind.l3Priority()
		}
		return x.Name < y.Name
	}

	if less(a, b) {
		return a, b
	}
	return b, a
}
