/*
Copyright 2024 topo-configgen contributors
*/

package ingest

import (
	"gopkg.in/yaml.v3"
)

// yamlPayload mirrors jsonPayload but with yaml tags, for the CLI
// collaborator's topology-file input path (spec.md's AMBIENT STACK
// expansion), matching the teacher's IPV4Network/IPV4Subnet yaml-tagged
// style.
type yamlPayload struct {
	Nodes            []yamlNode `yaml:"nodes"`
	Edges            []yamlEdge `yaml:"edges"`
	VLANs            []jsonVLAN `yaml:"vlans"`
	BaseNetworkOctet int        `yaml:"baseNetworkOctet"`
	Mode             string     `yaml:"mode"`
}

type yamlNode struct {
	ID    string                 `yaml:"id"`
	Label string                 `yaml:"label"`
	X     *float64               `yaml:"x"`
	Y     *float64               `yaml:"y"`
	Data  map[string]interface{} `yaml:"data"`
}

type yamlEdge struct {
	ID   string                 `yaml:"id"`
	From string                 `yaml:"from"`
	To   string                 `yaml:"to"`
	Data map[string]interface{} `yaml:"data"`
}

// DecodeYAML decodes a YAML topology file into a Decoded topology. Unlike
// DecodeJSON, no JSON Schema validation runs first: the schema is JSON-only,
// so YAML input relies on the same downstream mapstructure/govalidator
// checks topology.DecodeDevice and topology.DecodeLink perform.
func DecodeYAML(raw []byte) (*Decoded, error) {
	var y yamlPayload
	if err := yaml.Unmarshal(raw, &y); err != nil {
		return nil, err
	}

	payload := jsonPayload{
		BaseNetworkOctet: y.BaseNetworkOctet,
		Mode:             y.Mode,
		VLANs:            y.VLANs,
	}
	for _, n := range y.Nodes {
		payload.Nodes = append(payload.Nodes, jsonNode{ID: n.ID, Label: n.Label, X: n.X, Y: n.Y, Data: n.Data})
	}
	for _, e := range y.Edges {
		payload.Edges = append(payload.Edges, jsonEdge{ID: e.ID, From: e.From, To: e.To, Data: e.Data})
	}

	return decodePayload(payload)
}
