/*
Copyright 2024 topo-configgen contributors
*/

package ingest

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/nodeforge/topo-configgen/pkg/topology"
)

// jsonNode mirrors one entry of the submitted payload's `nodes[]`. X/Y are
// pointers so omission can be told apart from an explicit zero coordinate.
type jsonNode struct {
	ID    string                 `json:"id"`
	Label string                 `json:"label"`
	X     *float64               `json:"x"`
	Y     *float64               `json:"y"`
	Data  map[string]interface{} `json:"data"`
}

// jsonEdge mirrors one entry of the submitted payload's `edges[]`.
type jsonEdge struct {
	ID   string                 `json:"id"`
	From string                 `json:"from"`
	To   string                 `json:"to"`
	Data map[string]interface{} `json:"data"`
}

// jsonVLAN mirrors one entry of the submitted payload's `vlans[]`.
type jsonVLAN struct {
	Name     string `json:"name"`
	Prefix   int    `json:"prefix"`
	IsNative bool   `json:"isNative"`
}

// jsonPayload mirrors the full input payload described in spec.md §6.
type jsonPayload struct {
	Nodes            []jsonNode `json:"nodes"`
	Edges            []jsonEdge `json:"edges"`
	VLANs            []jsonVLAN `json:"vlans"`
	BaseNetworkOctet int        `json:"baseNetworkOctet"`
	Mode             string     `json:"mode"`
}

// Decoded is the fully normalized result of ingesting one payload: typed
// devices/links/vlans ready for topology.Build, plus the request-scoped
// knobs carried alongside them.
type Decoded struct {
	Devices          []*topology.Device
	Links            []*topology.Link
	VLANs            []*topology.VLAN
	BaseNetworkOctet int
	Mode             topology.GenerationMode
}

// DecodeJSON validates raw JSON against the embedded schema, then decodes
// it into a Decoded topology. Nodes/edges missing an id are minted one with
// uuid.NewString, the same accommodation spec.md's CLI collaborator makes
// for hand-assembled or bulk-imported fixtures.
func DecodeJSON(raw []byte) (*Decoded, error) {
	if err := ValidatePayload(raw); err != nil {
		return nil, err
	}

	var payload jsonPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, err
	}

	return decodePayload(payload)
}

func decodePayload(payload jsonPayload) (*Decoded, error) {
	devices := make([]*topology.Device, 0, len(payload.Nodes))
	for _, n := range payload.Nodes {
		id := n.ID
		if id == "" {
			id = uuid.NewString()
		}
		var x, y float64
		if n.X != nil {
			x = *n.X
		}
		if n.Y != nil {
			y = *n.Y
		}
		d, err := topology.DecodeDevice(topology.RawNode{
			ID:                  id,
			Label:               n.Label,
			X:                   x,
			Y:                   y,
			CoordinatesSupplied: n.X != nil || n.Y != nil,
			Data:                n.Data,
		})
		if err != nil {
			return nil, err
		}
		devices = append(devices, d)
	}

	links := make([]*topology.Link, 0, len(payload.Edges))
	for _, e := range payload.Edges {
		id := e.ID
		if id == "" {
			id = uuid.NewString()
		}
		l, err := topology.DecodeLink(topology.RawEdge{ID: id, From: e.From, To: e.To, Data: e.Data})
		if err != nil {
			return nil, err
		}
		links = append(links, l)
	}

	vlans := make([]*topology.VLAN, 0, len(payload.VLANs))
	for _, v := range payload.VLANs {
		vlans = append(vlans, &topology.VLAN{Name: v.Name, Prefix: v.Prefix, IsNative: v.IsNative})
	}

	mode := topology.GenerationMode(payload.Mode)
	if mode == "" {
		mode = topology.ModeDigital
	}
	octet := payload.BaseNetworkOctet
	if octet == 0 {
		octet = 19
	}

	return &Decoded{Devices: devices, Links: links, VLANs: vlans, BaseNetworkOctet: octet, Mode: mode}, nil
}
