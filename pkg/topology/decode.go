/*
Copyright 2024 topo-configgen contributors
*/

package topology

import (
	"github.com/asaskevich/govalidator"
	"github.com/mitchellh/mapstructure"

	"github.com/nodeforge/topo-configgen/pkg/topoerr"
)

// RawNode is one node of the ingested payload described in spec.md §6:
// `{id, label, x, y, data: {type, name, model?, computers?, vlan?}}`.
type RawNode struct {
	ID    string
	Label string
	X, Y  float64
	// CoordinatesSupplied reports whether the caller's payload actually
	// carried x/y for this node, as opposed to X/Y defaulting to zero.
	CoordinatesSupplied bool
	Data                map[string]interface{}
}

// RawEdge is one edge of the ingested payload: `{id, from, to, data:
// {fromInterface, toInterface, routingDirection, connectionType,
// etherChannel?}}`.
type RawEdge struct {
	ID   string
	From string
	To   string
	Data map[string]interface{}
}

// nodeData mirrors the node's `data` object for mapstructure decoding, the
// same pattern the teacher uses to decode ManagementSwitch's generic
// payload into a typed struct.
type nodeData struct {
	Type      string        `mapstructure:"type" valid:"required"`
	Name      string        `mapstructure:"name" valid:"required"`
	Model     string        `mapstructure:"model"`
	Computers []rawComputer `mapstructure:"computers"`
	VLAN      string        `mapstructure:"vlan"`
}

type rawComputer struct {
	Name       string `mapstructure:"name" valid:"required"`
	PortType   string `mapstructure:"portType" valid:"required"`
	PortNumber string `mapstructure:"portNumber" valid:"required"`
	VLAN       string `mapstructure:"vlan" valid:"required"`
}

type edgeData struct {
	FromInterface    rawInterface `mapstructure:"fromInterface"`
	ToInterface      rawInterface `mapstructure:"toInterface"`
	RoutingDirection string       `mapstructure:"routingDirection"`
	ConnectionType   string       `mapstructure:"connectionType"`
	EtherChannel     *rawEtherChannel `mapstructure:"etherChannel"`
}

type rawInterface struct {
	Type   string `mapstructure:"type"`
	Number string `mapstructure:"number"`
}

type rawEtherChannel struct {
	Protocol  string `mapstructure:"protocol"`
	Group     int    `mapstructure:"group"`
	FromRange string `mapstructure:"fromRange"`
	ToRange   string `mapstructure:"toRange"`
}

// DecodeDevice decodes one RawNode's generic `data` payload into a typed
// Device, validating required fields via govalidator struct tags before
// the topology graph ever sees it.
func DecodeDevice(n RawNode) (*Device, error) {
	var nd nodeData
	if err := mapstructure.Decode(n.Data, &nd); err != nil {
		return nil, topoerr.New(topoerr.InvalidTopology, n.ID, "node %q has malformed data payload: %v", n.ID, err)
	}
	if _, err := govalidator.ValidateStruct(nd); err != nil {
		return nil, topoerr.New(topoerr.InvalidTopology, n.ID, "node %q failed validation: %v", n.ID, err)
	}

	computers := make([]Computer, 0, len(nd.Computers))
	for _, c := range nd.Computers {
		if _, err := govalidator.ValidateStruct(c); err != nil {
			return nil, topoerr.New(topoerr.InvalidTopology, n.ID, "node %q has invalid computer entry: %v", n.ID, err)
		}
		computers = append(computers, Computer{Name: c.Name, PortType: c.PortType, PortNumber: c.PortNumber, VLAN: c.VLAN})
	}

	return &Device{
		ID:                  DeviceID(n.ID),
		Kind:                DeviceKind(nd.Type),
		Name:                nd.Name,
		X:                   n.X,
		Y:                   n.Y,
		CoordinatesSupplied: n.CoordinatesSupplied,
		Model:               nd.Model,
		Computers:           computers,
		VLAN:                nd.VLAN,
	}, nil
}

// DecodeLink decodes one RawEdge's generic `data` payload into a typed
// Link.
func DecodeLink(e RawEdge) (*Link, error) {
	var ed edgeData
	if err := mapstructure.Decode(e.Data, &ed); err != nil {
		return nil, topoerr.New(topoerr.InvalidTopology, e.ID, "edge %q has malformed data payload: %v", e.ID, err)
	}

	l := &Link{
		ID:               LinkID(e.ID),
		From:             DeviceID(e.From),
		To:               DeviceID(e.To),
		FromInterface:    InterfaceRef{Type: ed.FromInterface.Type, Number: ed.FromInterface.Number},
		ToInterface:      InterfaceRef{Type: ed.ToInterface.Type, Number: ed.ToInterface.Number},
		ConnectionType:   LinkConnectionType(ed.ConnectionType),
		RoutingDirection: LinkRoutingDirection(ed.RoutingDirection),
	}
	if l.ConnectionType == "" {
		l.ConnectionType = ConnectionNormal
	}
	if l.RoutingDirection == "" {
		l.RoutingDirection = RoutingBidirectional
	}

	if ed.EtherChannel != nil {
		fromRange, err := ParseInterfaceRange(ed.FromInterface.Type, ed.EtherChannel.FromRange)
		if err != nil {
			return nil, err
		}
		toRange, err := ParseInterfaceRange(ed.ToInterface.Type, ed.EtherChannel.ToRange)
		if err != nil {
			return nil, err
		}
		l.EtherChannel = &EtherChannelInfo{
			Protocol:  EtherChannelProtocol(ed.EtherChannel.Protocol),
			Group:     ed.EtherChannel.Group,
			FromRange: fromRange,
			ToRange:   toRange,
		}
	}

	return l, nil
}
