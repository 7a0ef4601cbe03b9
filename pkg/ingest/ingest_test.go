/*
Copyright 2024 topo-configgen contributors
*/

package ingest

import (
	"os"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/nodeforge/topo-configgen/pkg/topology"
)

type IngestTestSuite struct {
	suite.Suite
}

func TestIngestTestSuite(t *testing.T) {
	suite.Run(t, new(IngestTestSuite))
}

func (s *IngestTestSuite) TestDecodeJSONValidPayload() {
	raw := []byte(`{
		"nodes": [
			{"id": "r1", "data": {"type": "router", "name": "R1"}},
			{"id": "sw1", "data": {"type": "switch", "name": "SW1"}}
		],
		"edges": [
			{"id": "l1", "from": "r1", "to": "sw1", "data": {
				"fromInterface": {"type": "FastEthernet", "number": "0/0"},
				"toInterface": {"type": "FastEthernet", "number": "0/24"}
			}}
		],
		"vlans": [{"name": "vlan10", "prefix": 24}],
		"baseNetworkOctet": 19,
		"mode": "digital"
	}`)

	decoded, err := DecodeJSON(raw)
	s.Require().NoError(err)
	s.Len(decoded.Devices, 2)
	s.Len(decoded.Links, 1)
	s.Len(decoded.VLANs, 1)
	s.Equal(19, decoded.BaseNetworkOctet)
	s.Equal(topology.ModeDigital, decoded.Mode)
}

func (s *IngestTestSuite) TestDecodeJSONRejectsSchemaViolation() {
	raw := []byte(`{"nodes": [{"id": "r1"}], "edges": []}`)
	_, err := DecodeJSON(raw)
	s.Error(err)
}

func (s *IngestTestSuite) TestDecodeJSONMintsIDsWhenMissing() {
	raw := []byte(`{
		"nodes": [{"data": {"type": "router", "name": "R1"}}],
		"edges": []
	}`)
	decoded, err := DecodeJSON(raw)
	s.Require().NoError(err)
	s.Require().Len(decoded.Devices, 1)
	s.NotEmpty(decoded.Devices[0].ID)
}

func (s *IngestTestSuite) TestDecodeYAMLMatchesJSONShape() {
	raw := []byte(`
nodes:
  - id: r1
    data:
      type: router
      name: R1
edges: []
vlans: []
baseNetworkOctet: 19
mode: digital
`)
	decoded, err := DecodeYAML(raw)
	s.Require().NoError(err)
	s.Require().Len(decoded.Devices, 1)
	s.Equal("R1", decoded.Devices[0].Name)
}

func (s *IngestTestSuite) TestReadComputersCSVGroupsBySwitch() {
	f, err := os.CreateTemp("", "computers-*.csv")
	s.Require().NoError(err)
	defer os.Remove(f.Name())

	_, err = f.WriteString("switch,name,portType,portNumber,vlan\nSW1,PC1,FastEthernet,0/1,vlan10\nSW1,PC2,FastEthernet,0/2,vlan10\n")
	s.Require().NoError(err)
	f.Close()

	byName, err := ReadComputersCSV(f.Name())
	s.Require().NoError(err)
	s.Len(byName["SW1"], 2)
}

func (s *IngestTestSuite) TestApplyComputersMergesOntoMatchingDevice() {
	devices := []*topology.Device{{ID: "sw1", Kind: topology.DeviceKindSwitch, Name: "SW1"}}
	byName := map[string][]topology.Computer{
		"SW1": {{Name: "PC1", PortType: "FastEthernet", PortNumber: "0/1", VLAN: "vlan10"}},
	}
	ApplyComputers(devices, byName)
	s.Len(devices[0].Computers, 1)
}
