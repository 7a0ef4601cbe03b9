/*
Copyright 2024 topo-configgen contributors
*/

package linkplan

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/nodeforge/topo-configgen/pkg/ipam"
	"github.com/nodeforge/topo-configgen/pkg/topology"
)

type LinkPlanTestSuite struct {
	suite.Suite
}

func TestLinkPlanTestSuite(t *testing.T) {
	suite.Run(t, new(LinkPlanTestSuite))
}

func (s *LinkPlanTestSuite) TestBackboneAssignmentS1() {
	devices := []*topology.Device{
		{ID: "r1", Kind: topology.DeviceKindRouter, Name: "R1"},
		{ID: "r2", Kind: topology.DeviceKindRouter, Name: "R2"},
	}
	links := []*topology.Link{
		{
			ID: "l1", From: "r1", To: "r2",
			FromInterface:    topology.InterfaceRef{Type: "FastEthernet", Number: "0/0"},
			ToInterface:      topology.InterfaceRef{Type: "FastEthernet", Number: "0/0"},
			RoutingDirection: topology.RoutingBidirectional,
		},
	}
	topo, err := topology.Build(devices, links, nil)
	s.Require().NoError(err)

	registry, err := ipam.NewRegistryFromOctet(19)
	s.Require().NoError(err)

	plan, err := Build(topo, registry)
	s.Require().NoError(err)

	a := plan.ByLink["l1"]
	s.Require().NotNil(a)
	s.Equal("19.0.0.0/30", a.Subnet.String())
	s.Equal("19.0.0.1", a.Lower.IP.String())
	s.Equal("19.0.0.2", a.Higher.IP.String())
	s.Equal(topology.DeviceID("r1"), a.Lower.Device)
	s.Equal(topology.DeviceID("r2"), a.Higher.Device)
}

func (s *LinkPlanTestSuite) TestRouterOutranksSwitchCore() {
	devices := []*topology.Device{
		{ID: "c1", Kind: topology.DeviceKindSwitchCore, Name: "core1"},
		{ID: "r1", Kind: topology.DeviceKindRouter, Name: "router1"},
	}
	links := []*topology.Link{
		{ID: "l1", From: "c1", To: "r1", RoutingDirection: topology.RoutingBidirectional},
	}
	topo, err := topology.Build(devices, links, nil)
	s.Require().NoError(err)

	registry, err := ipam.NewRegistryFromOctet(19)
	s.Require().NoError(err)

	plan, err := Build(topo, registry)
	s.Require().NoError(err)

	a := plan.ByLink["l1"]
	s.Equal(topology.DeviceID("r1"), a.Lower.Device)
	s.Equal(topology.DeviceID("c1"), a.Higher.Device)
}

func (s *LinkPlanTestSuite) TestNonRoutedLinksGetNoAssignment() {
	devices := []*topology.Device{
		{ID: "r1", Kind: topology.DeviceKindRouter, Name: "R1"},
		{ID: "sw1", Kind: topology.DeviceKindSwitch, Name: "SW1"},
	}
	links := []*topology.Link{
		{ID: "l1", From: "r1", To: "sw1", RoutingDirection: topology.RoutingNone},
	}
	topo, err := topology.Build(devices, links, nil)
	s.Require().NoError(err)

	registry, err := ipam.NewRegistryFromOctet(19)
	s.Require().NoError(err)

	plan, err := Build(topo, registry)
	s.Require().NoError(err)
	s.Empty(plan.ByLink)
}

func (s *LinkPlanTestSuite) TestSequentialBackbonesDoNotOverlap() {
	devices := []*topology.Device{
		{ID: "r1", Kind: topology.DeviceKindRouter, Name: "R1"},
		{ID: "r2", Kind: topology.DeviceKindRouter, Name: "R2"},
		{ID: "r3", Kind: topology.DeviceKindRouter, Name: "R3"},
	}
	links := []*topology.Link{
		{ID: "l1", From: "r1", To: "r2", RoutingDirection: topology.RoutingBidirectional},
		{ID: "l2", From: "r2", To: "r3", RoutingDirection: topology.RoutingBidirectional},
	}
	topo, err := topology.Build(devices, links, nil)
	s.Require().NoError(err)

	registry, err := ipam.NewRegistryFromOctet(19)
	s.Require().NoError(err)

	plan, err := Build(topo, registry)
	s.Require().NoError(err)

	s.Equal("19.0.0.0/30", plan.ByLink["l1"].Subnet.String())
	s.Equal("19.0.0.4/30", plan.ByLink["l2"].Subnet.String())
}
