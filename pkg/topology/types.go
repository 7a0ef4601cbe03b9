/*
Copyright 2024 topo-configgen contributors
*/

// Package topology normalizes a submitted network topology (devices, links,
// VLANs) into an in-memory graph keyed by stable identifiers, with neighbor
// indices used by the routing solver and device configurators.
package topology

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nodeforge/topo-configgen/pkg/topoerr"
)

// DeviceID is an opaque, stable device identifier.
type DeviceID string

// LinkID is an opaque, stable link identifier.
type LinkID string

// DeviceKind is the tagged-variant discriminator for a Device.
type DeviceKind string

// The four device kinds a topology may contain.
const (
	DeviceKindRouter     DeviceKind = "router"
	DeviceKindSwitchCore DeviceKind = "switch_core"
	DeviceKindSwitch     DeviceKind = "switch"
	DeviceKindHost       DeviceKind = "host"
)

// Valid reports whether k is one of the four known device kinds.
func (k DeviceKind) Valid() bool {
	switch k {
	case DeviceKindRouter, DeviceKindSwitchCore, DeviceKindSwitch, DeviceKindHost:
		return true
	}
	return false
}

// IsL3 reports whether this kind participates in backbone routing.
func (k DeviceKind) IsL3() bool {
	return k == DeviceKindRouter || k == DeviceKindSwitchCore
}

// l3Priority orders L3 device kinds for deterministic backbone address
// assignment: router gets priority over switch_core, per spec.md §4.3.
func (k DeviceKind) l3Priority() int {
	switch k {
	case DeviceKindRouter:
		return 0
	case DeviceKindSwitchCore:
		return 1
	default:
		return 2
	}
}

// InterfaceRef names a physical interface by type and dotted-path number,
// e.g. {FastEthernet, "0/1"} or {GigabitEthernet, "1/0/3"}.
type InterfaceRef struct {
	Type   string
	Number string
}

// String renders the Cisco IOS interface name, e.g. "FastEthernet0/1".
func (i InterfaceRef) String() string {
	return i.Type + i.Number
}

// SubInterface renders a dot1Q subinterface name for the given VLAN id.
func (i InterfaceRef) SubInterface(vlanID int) string {
	return fmt.Sprintf("%s%s.%d", i.Type, i.Number, vlanID)
}

// Computer records an endpoint attached to a switch by port, not by graph
// edge.
type Computer struct {
	Name       string
	PortType   string
	PortNumber string
	VLAN       string
}

// Device is one node of the submitted topology.
type Device struct {
	ID    DeviceID
	Kind  DeviceKind
	Name  string
	X, Y  float64
	Model string

	// CoordinatesSupplied reports whether the input payload carried x/y
	// for this device, as opposed to defaulting both to zero.
	CoordinatesSupplied bool

	// Computers is populated for switches: endpoints attached by port.
	Computers []Computer

	// VLAN is populated for hosts/servers referencing their access VLAN.
	VLAN string
}

// LinkRoutingDirection controls whether, and which way, a link contributes
// to the directional BFS performed by the routing solver.
type LinkRoutingDirection string

// The four routing directions a link may declare.
const (
	RoutingBidirectional LinkRoutingDirection = "bidirectional"
	RoutingFromTo        LinkRoutingDirection = "from-to"
	RoutingToFrom        LinkRoutingDirection = "to-from"
	RoutingNone          LinkRoutingDirection = "none"
)

// Valid reports whether d is one of the four known routing directions.
func (d LinkRoutingDirection) Valid() bool {
	switch d {
	case RoutingBidirectional, RoutingFromTo, RoutingToFrom, RoutingNone:
		return true
	}
	return false
}

// LinkConnectionType distinguishes a plain link from an EtherChannel bundle.
type LinkConnectionType string

// The two connection types a link may declare.
const (
	ConnectionNormal       LinkConnectionType = "normal"
	ConnectionEtherChannel LinkConnectionType = "etherchannel"
)

// EtherChannelProtocol is the bundle negotiation protocol.
type EtherChannelProtocol string

// The two supported EtherChannel protocols.
const (
	ProtocolLACP EtherChannelProtocol = "lacp"
	ProtocolPAgP EtherChannelProtocol = "pagp"
)

// InterfaceRange is an inclusive, contiguous range of same-type interfaces,
// e.g. "0/1-3" -> {Type: FastEthernet, Prefix: "0/", Start: 1, End: 3}.
type InterfaceRange struct {
	Type   string
	Prefix string // the portion of Number before the final numeric segment, e.g. "0/"
	Start  int
	End    int
}

// Len returns the number of interfaces spanned by the range.
func (r InterfaceRange) Len() int {
	return r.End - r.Start + 1
}

// RangeSpec renders the dotted-path range spec IOS expects after "interface
// range <type>", e.g. "0/1-3" or "0/1" for a single-member range.
func (r InterfaceRange) RangeSpec() string {
	if r.Start == r.End {
		return fmt.Sprintf("%s%d", r.Prefix, r.Start)
	}
	return fmt.Sprintf("%s%d-%d", r.Prefix, r.Start, r.End)
}

// Members returns every individual InterfaceRef in the range, in order.
func (r InterfaceRange) Members() []InterfaceRef {
	out := make([]InterfaceRef, 0, r.Len())
	for n := r.Start; n <= r.End; n++ {
		out = append(out, InterfaceRef{Type: r.Type, Number: fmt.Sprintf("%s%d", r.Prefix, n)})
	}
	return out
}

// ParseInterfaceRange parses a dotted-path range like "0/1-3" into an
// InterfaceRange of the given interface type.
func ParseInterfaceRange(ifType, spec string) (InterfaceRange, error) {
	lastSlash := strings.LastIndex(spec, "/")
	var prefix, tail string
	if lastSlash == -1 {
		prefix, tail = "", spec
	} else {
		prefix, tail = spec[:lastSlash+1], spec[lastSlash+1:]
	}

	parts := strings.SplitN(tail, "-", 2)
	start, err := strconv.Atoi(parts[0])
	if err != nil {
		return InterfaceRange{}, topoerr.New(topoerr.InterfaceConflict, spec, "invalid interface range %q: %v", spec, err)
	}
	end := start
	if len(parts) == 2 {
		end, err = strconv.Atoi(parts[1])
		if err != nil {
			return InterfaceRange{}, topoerr.New(topoerr.InterfaceConflict, spec, "invalid interface range %q: %v", spec, err)
		}
	}
	if end < start {
		return InterfaceRange{}, topoerr.New(topoerr.InterfaceConflict, spec, "interface range %q ends before it starts", spec)
	}
	return InterfaceRange{Type: ifType, Prefix: prefix, Start: start, End: end}, nil
}

// EtherChannelInfo carries the bundle-specific fields of a link whose
// ConnectionType is ConnectionEtherChannel.
type EtherChannelInfo struct {
	Protocol  EtherChannelProtocol
	Group     int
	FromRange InterfaceRange
	ToRange   InterfaceRange
}

// Link is one edge of the submitted topology.
type Link struct {
	ID   LinkID
	From DeviceID
	To   DeviceID

	FromInterface InterfaceRef
	ToInterface   InterfaceRef

	ConnectionType   LinkConnectionType
	RoutingDirection LinkRoutingDirection

	EtherChannel *EtherChannelInfo
}

// IsEtherChannel reports whether this link is an EtherChannel bundle.
func (l *Link) IsEtherChannel() bool {
	return l.ConnectionType == ConnectionEtherChannel && l.EtherChannel != nil
}

// VLAN is a declared VLAN definition.
type VLAN struct {
	Name     string
	Prefix   int
	IsNative bool
}

// Validate checks the fixed VLAN-prefix policy of spec.md §3/§7: prefix in
// [8,30] (/31 and /32 cannot host DHCP and are rejected).
func (v *VLAN) Validate() error {
	if v.Prefix < 8 || v.Prefix > 30 {
		return topoerr.New(topoerr.InvalidVlan, v.Name, "VLAN prefix /%d out of range [8,30]", v.Prefix)
	}
	return nil
}

// NumericID extracts the numeric VLAN id IOS commands require from the
// trailing digits of the VLAN's name (e.g. "vlan10" or "VLAN 10" -> 10).
// The submitted schema carries no separate numeric id field; every
// concrete scenario in spec.md §8 names VLANs this way.
func (v *VLAN) NumericID() (int, error) {
	i := len(v.Name)
	for i > 0 && v.Name[i-1] >= '0' && v.Name[i-1] <= '9' {
		i--
	}
	if i == len(v.Name) {
		return 0, topoerr.New(topoerr.InvalidVlan, v.Name, "VLAN name %q carries no trailing numeric id", v.Name)
	}
	id, err := strconv.Atoi(v.Name[i:])
	if err != nil {
		return 0, topoerr.New(topoerr.InvalidVlan, v.Name, "VLAN name %q carries no trailing numeric id", v.Name)
	}
	return id, nil
}
