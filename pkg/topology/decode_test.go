/*
Copyright 2024 topo-configgen contributors
*/

package topology

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type DecodeTestSuite struct {
	suite.Suite
}

func TestDecodeTestSuite(t *testing.T) {
	suite.Run(t, new(DecodeTestSuite))
}

func (s *DecodeTestSuite) TestDecodeDeviceWithComputers() {
	node := RawNode{
		ID: "sw1", X: 10, Y: 20,
		Data: map[string]interface{}{
			"type": "switch",
			"name": "SW1",
			"computers": []map[string]interface{}{
				{"name": "PC1", "portType": "FastEthernet", "portNumber": "0/1", "vlan": "vlan10"},
			},
		},
	}

	d, err := DecodeDevice(node)
	s.Require().NoError(err)
	s.Equal(DeviceKindSwitch, d.Kind)
	s.Equal("SW1", d.Name)
	s.Require().Len(d.Computers, 1)
	s.Equal("vlan10", d.Computers[0].VLAN)
}

func (s *DecodeTestSuite) TestDecodeDeviceRejectsMissingName() {
	node := RawNode{
		ID: "r1",
		Data: map[string]interface{}{
			"type": "router",
		},
	}
	_, err := DecodeDevice(node)
	s.Error(err)
}

func (s *DecodeTestSuite) TestDecodeLinkDefaultsRoutingAndConnection() {
	edge := RawEdge{
		ID: "l1", From: "r1", To: "r2",
		Data: map[string]interface{}{
			"fromInterface": map[string]interface{}{"type": "FastEthernet", "number": "0/0"},
			"toInterface":   map[string]interface{}{"type": "FastEthernet", "number": "0/1"},
		},
	}
	l, err := DecodeLink(edge)
	s.Require().NoError(err)
	s.Equal(RoutingBidirectional, l.RoutingDirection)
	s.Equal(ConnectionNormal, l.ConnectionType)
	s.Equal("FastEthernet0/0", l.FromInterface.String())
}

func (s *DecodeTestSuite) TestDecodeLinkWithEtherChannel() {
	edge := RawEdge{
		ID: "l1", From: "sw1", To: "sw2",
		Data: map[string]interface{}{
			"fromInterface":  map[string]interface{}{"type": "FastEthernet", "number": "0/1"},
			"toInterface":    map[string]interface{}{"type": "FastEthernet", "number": "0/1"},
			"connectionType": "etherchannel",
			"etherChannel": map[string]interface{}{
				"protocol":  "lacp",
				"group":     1,
				"fromRange": "0/1-2",
				"toRange":   "0/1-2",
			},
		},
	}
	l, err := DecodeLink(edge)
	s.Require().NoError(err)
	s.True(l.IsEtherChannel())
	s.Equal(2, l.EtherChannel.FromRange.Len())
}
