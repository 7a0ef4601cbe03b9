/*
Copyright 2024 topo-configgen contributors
*/

// Package ingest normalizes the collaborator-submitted topology payload —
// JSON over HTTP, a YAML topology file, or a CSV bulk host import — into
// the typed topology.Device/Link/VLAN values the pipeline consumes.
package ingest

import (
	"github.com/xeipuuv/gojsonschema"

	"github.com/nodeforge/topo-configgen/pkg/topoerr"
)

// payloadSchema is the embedded JSON Schema spec.md §6's input payload must
// satisfy before decoding. Validated up front so a malformed payload fails
// with one readable diagnostic instead of a panic deep in mapstructure.
const payloadSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["nodes", "edges"],
  "properties": {
    "nodes": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["data"],
        "properties": {
          "id": {"type": "string"},
          "label": {"type": "string"},
          "x": {"type": "number"},
          "y": {"type": "number"},
          "data": {
            "type": "object",
            "required": ["type", "name"],
            "properties": {
              "type": {"type": "string", "enum": ["router", "switch_core", "switch", "host"]},
              "name": {"type": "string"}
            }
          }
        }
      }
    },
    "edges": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["from", "to"],
        "properties": {
          "id": {"type": "string"},
          "from": {"type": "string"},
          "to": {"type": "string"},
          "data": {"type": "object"}
        }
      }
    },
    "vlans": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "prefix"],
        "properties": {
          "name": {"type": "string"},
          "prefix": {"type": "integer", "minimum": 8, "maximum": 30},
          "isNative": {"type": "boolean"}
        }
      }
    },
    "baseNetworkOctet": {"type": "integer", "minimum": 1, "maximum": 223},
    "mode": {"type": "string", "enum": ["digital", "physical"]}
  }
}`

// ValidatePayload checks raw JSON bytes against the embedded schema before
// any decoding is attempted.
func ValidatePayload(raw []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(payloadSchema)
	docLoader := gojsonschema.NewBytesLoader(raw)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return topoerr.New(topoerr.InvalidTopology, "payload", "payload is not valid JSON: %v", err)
	}
	if !result.Valid() {
		msg := "payload failed schema validation:"
		for _, e := range result.Errors() {
			msg += " " + e.String() + ";"
		}
		return topoerr.New(topoerr.InvalidTopology, "payload", "%s", msg)
	}
	return nil
}
