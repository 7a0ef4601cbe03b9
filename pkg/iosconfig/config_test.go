/*
Copyright 2024 topo-configgen contributors
*/

package iosconfig

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/nodeforge/topo-configgen/pkg/ipam"
	"github.com/nodeforge/topo-configgen/pkg/linkplan"
	"github.com/nodeforge/topo-configgen/pkg/routing"
	"github.com/nodeforge/topo-configgen/pkg/topology"
	"github.com/nodeforge/topo-configgen/pkg/vlanplan"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) build(devices []*topology.Device, links []*topology.Link, vlans []*topology.VLAN, mode topology.GenerationMode) Inputs {
	topo, err := topology.Build(devices, links, vlans)
	s.Require().NoError(err)

	registry, err := ipam.NewRegistryFromOctet(19)
	s.Require().NoError(err)

	lp, err := linkplan.Build(topo, registry)
	s.Require().NoError(err)

	vp, err := vlanplan.Build(topo, registry)
	s.Require().NoError(err)

	rp := routing.Solve(topo, lp, vp)

	return Inputs{Topology: topo, Links: lp, VLANs: vp, Routes: rp, Mode: mode}
}

// S2 — one router trunked to a plain switch hosting VLAN10, with a single
// attached computer.
func (s *ConfigTestSuite) TestS2RouterOwnsTrunkedVLAN() {
	devices := []*topology.Device{
		{ID: "r1", Kind: topology.DeviceKindRouter, Name: "R1", Model: "2811"},
		{ID: "sw1", Kind: topology.DeviceKindSwitch, Name: "SW1", Model: "2960-24TT",
			Computers: []topology.Computer{{Name: "PC1", PortType: "FastEthernet", PortNumber: "0/1", VLAN: "vlan10"}}},
	}
	links := []*topology.Link{
		{ID: "l1", From: "r1", To: "sw1",
			FromInterface:    topology.InterfaceRef{Type: "FastEthernet", Number: "0/0"},
			ToInterface:      topology.InterfaceRef{Type: "FastEthernet", Number: "0/24"},
			RoutingDirection: topology.RoutingNone},
	}
	vlans := []*topology.VLAN{{Name: "vlan10", Prefix: 24}}

	in := s.build(devices, links, vlans, topology.ModeDigital)

	cfg, err := buildRouter(in, in.Topology.Devices["r1"])
	s.Require().NoError(err)
	s.Contains(cfg.Commands, "interface FastEthernet0/0.10")
	s.Contains(cfg.Commands, "encapsulation dot1Q 10")
	s.Contains(cfg.Commands, "ip dhcp pool vlan10")
	s.Equal([]string{"vlan10"}, cfg.AttachedVLANs)

	swCfg, err := buildL2Switch(in, in.Topology.Devices["sw1"])
	s.Require().NoError(err)
	s.Contains(swCfg.Commands, "vlan 10")
	s.Contains(swCfg.Commands, "switchport access vlan 10")
}

// S4 — L3 core directly owning VLAN30 via its own attached computer.
func (s *ConfigTestSuite) TestS4CoreOwnsDirectVLAN() {
	devices := []*topology.Device{
		{ID: "r1", Kind: topology.DeviceKindRouter, Name: "R1", Model: "2811"},
		{ID: "swc1", Kind: topology.DeviceKindSwitchCore, Name: "SWC1", Model: "3560-24PS",
			Computers: []topology.Computer{{Name: "PC2", PortType: "FastEthernet", PortNumber: "0/5", VLAN: "vlan30"}}},
	}
	links := []*topology.Link{
		{ID: "l1", From: "r1", To: "swc1",
			FromInterface: topology.InterfaceRef{Type: "FastEthernet", Number: "0/1"},
			ToInterface:   topology.InterfaceRef{Type: "GigabitEthernet", Number: "0/1"},
			RoutingDirection: topology.RoutingBidirectional},
	}
	vlans := []*topology.VLAN{{Name: "vlan30", Prefix: 24}}

	in := s.build(devices, links, vlans, topology.ModeDigital)

	cfg, err := buildL3Core(in, in.Topology.Devices["swc1"])
	s.Require().NoError(err)
	s.Contains(cfg.Commands, "ip routing")
	s.Contains(cfg.Commands, "interface vlan 30")
	s.Contains(cfg.Commands, "switchport access vlan 30")
	s.Equal([]string{"vlan30"}, cfg.AttachedVLANs)
}

// S3 — a router with no VLAN trunk (every L2-kind neighbor is a
// switch_core) emits no subinterfaces or DHCP pools.
func (s *ConfigTestSuite) TestS3RouterWithNoTrunkOwnsNoVLAN() {
	devices := []*topology.Device{
		{ID: "r1", Kind: topology.DeviceKindRouter, Name: "R1", Model: "2811"},
		{ID: "swc1", Kind: topology.DeviceKindSwitchCore, Name: "SWC1", Model: "3560-24PS"},
	}
	links := []*topology.Link{
		{ID: "l1", From: "r1", To: "swc1", RoutingDirection: topology.RoutingBidirectional},
	}
	in := s.build(devices, links, nil, topology.ModeDigital)

	cfg, err := buildRouter(in, in.Topology.Devices["r1"])
	s.Require().NoError(err)
	s.Empty(cfg.AttachedVLANs)
	s.NotContains(cfg.Commands, "dot1Q")
}

func (s *ConfigTestSuite) TestPhysicalModeRequiresModel() {
	devices := []*topology.Device{
		{ID: "r1", Kind: topology.DeviceKindRouter, Name: "R1"},
	}
	in := s.build(devices, nil, nil, topology.ModePhysical)

	_, err := buildRouter(in, in.Topology.Devices["r1"])
	s.Error(err)
}

func (s *ConfigTestSuite) TestL2SwitchEmitsNoRoutesBlock() {
	devices := []*topology.Device{
		{ID: "sw1", Kind: topology.DeviceKindSwitch, Name: "SW1",
			Computers: []topology.Computer{{Name: "PC1", PortType: "FastEthernet", PortNumber: "0/1", VLAN: "vlan10"}}},
	}
	vlans := []*topology.VLAN{{Name: "vlan10", Prefix: 24}}
	in := s.build(devices, nil, vlans, topology.ModeDigital)

	cfg, err := buildL2Switch(in, in.Topology.Devices["sw1"])
	s.Require().NoError(err)
	s.False(strings.Contains(cfg.Commands, "ip route"))
}
