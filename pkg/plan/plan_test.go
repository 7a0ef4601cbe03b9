/*
Copyright 2024 topo-configgen contributors
*/

package plan

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"

	"github.com/nodeforge/topo-configgen/pkg/topology"
)

type PlanTestSuite struct {
	suite.Suite
}

func TestPlanTestSuite(t *testing.T) {
	suite.Run(t, new(PlanTestSuite))
}

func (s *PlanTestSuite) TestEndToEndGeneration() {
	req := Request{
		Devices: []*topology.Device{
			{ID: "r1", Kind: topology.DeviceKindRouter, Name: "R1"},
			{ID: "sw1", Kind: topology.DeviceKindSwitch, Name: "SW1",
				Computers: []topology.Computer{{Name: "PC1", PortType: "FastEthernet", PortNumber: "0/1", VLAN: "vlan10"}}},
		},
		Links: []*topology.Link{
			{ID: "l1", From: "r1", To: "sw1",
				FromInterface:    topology.InterfaceRef{Type: "FastEthernet", Number: "0/0"},
				ToInterface:      topology.InterfaceRef{Type: "FastEthernet", Number: "0/24"},
				RoutingDirection: topology.RoutingBidirectional},
		},
		VLANs: []*topology.VLAN{{Name: "vlan10", Prefix: 24}},
	}

	result, err := Generate(context.Background(), zaptest.NewLogger(s.T()), req)
	s.Require().NoError(err)
	s.Contains(result.Bundles.Routers, "R1")
	s.Contains(result.Bundles.L2Switches, "SW1")
	s.NotEmpty(result.Report)
	s.NotEmpty(result.SimulatorDriver)
}

func (s *PlanTestSuite) TestCancelledContextShortCircuits() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Generate(ctx, nil, Request{})
	s.ErrorIs(err, context.Canceled)
}

func (s *PlanTestSuite) TestInvalidTopologyPropagatesError() {
	req := Request{
		Devices: []*topology.Device{
			{ID: "r1", Kind: "bogus", Name: "R1"},
		},
	}
	_, err := Generate(context.Background(), nil, req)
	s.Error(err)
}
