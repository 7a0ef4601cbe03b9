/*
Copyright 2024 topo-configgen contributors
*/

package emit

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/nodeforge/topo-configgen/pkg/ipam"
	"github.com/nodeforge/topo-configgen/pkg/iosconfig"
	"github.com/nodeforge/topo-configgen/pkg/linkplan"
	"github.com/nodeforge/topo-configgen/pkg/routing"
	"github.com/nodeforge/topo-configgen/pkg/topology"
	"github.com/nodeforge/topo-configgen/pkg/vlanplan"
)

type EmitTestSuite struct {
	suite.Suite
}

func TestEmitTestSuite(t *testing.T) {
	suite.Run(t, new(EmitTestSuite))
}

func (s *EmitTestSuite) build(devices []*topology.Device, links []*topology.Link, vlans []*topology.VLAN) Inputs {
	topo, err := topology.Build(devices, links, vlans)
	s.Require().NoError(err)

	registry, err := ipam.NewRegistryFromOctet(19)
	s.Require().NoError(err)

	lp, err := linkplan.Build(topo, registry)
	s.Require().NoError(err)

	vp, err := vlanplan.Build(topo, registry)
	s.Require().NoError(err)

	rp := routing.Solve(topo, lp, vp)

	cfg, err := iosconfig.Build(iosconfig.Inputs{Topology: topo, Links: lp, VLANs: vp, Routes: rp, Mode: topology.ModeDigital})
	s.Require().NoError(err)

	return Inputs{Topology: topo, Links: lp, VLANs: vp, Configs: cfg}
}

func (s *EmitTestSuite) TestEmptyTopologyProducesEmptyBundles() {
	in := s.build(nil, nil, nil)
	bundles := DeviceBundles(in)
	s.Empty(bundles.Routers)
	s.Empty(bundles.L3Cores)
	s.Empty(bundles.L2Switches)
	s.Empty(bundles.All)
}

func (s *EmitTestSuite) TestBundlesSeparateByCategory() {
	devices := []*topology.Device{
		{ID: "r1", Kind: topology.DeviceKindRouter, Name: "R1"},
		{ID: "sw1", Kind: topology.DeviceKindSwitch, Name: "SW1"},
	}
	in := s.build(devices, nil, nil)

	bundles := DeviceBundles(in)
	s.Contains(bundles.Routers, "R1")
	s.NotContains(bundles.Routers, "SW1")
	s.Contains(bundles.L2Switches, "SW1")
	s.Contains(bundles.All, "R1")
	s.Contains(bundles.All, "SW1")
}

func (s *EmitTestSuite) TestReportListsBackboneBlock() {
	devices := []*topology.Device{
		{ID: "r1", Kind: topology.DeviceKindRouter, Name: "R1"},
		{ID: "r2", Kind: topology.DeviceKindRouter, Name: "R2"},
	}
	links := []*topology.Link{
		{ID: "l1", From: "r1", To: "r2", RoutingDirection: topology.RoutingBidirectional},
	}
	in := s.build(devices, links, nil)

	report := Report(in)
	s.Contains(report, "19.0.0.0/30")
	s.Contains(report, "19.0.0.1")
	s.Contains(report, "19.0.0.2")
}

func (s *EmitTestSuite) TestSimulatorDriverEmitsAddDeviceAndConfigure() {
	devices := []*topology.Device{
		{ID: "r1", Kind: topology.DeviceKindRouter, Name: "R1", X: 10, Y: 20, CoordinatesSupplied: true},
	}
	in := s.build(devices, nil, nil)

	driver := SimulatorDriver(in, 1.0)
	s.Contains(driver, `addDevice("R1", "2811",`)
	s.Contains(driver, `configureIosDevice("R1",`)
}

func (s *EmitTestSuite) TestSimulatorDriverCentersDeviceWithoutSuppliedCoordinates() {
	devices := []*topology.Device{
		{ID: "r1", Kind: topology.DeviceKindRouter, Name: "R1", X: 0, Y: 0, CoordinatesSupplied: false},
	}
	in := s.build(devices, nil, nil)

	driver := SimulatorDriver(in, 1.0)
	s.Contains(driver, `addDevice("R1", "2811", 2000, 2000);`)
}

func (s *EmitTestSuite) TestSimulatorDriverEmitsLinks() {
	devices := []*topology.Device{
		{ID: "r1", Kind: topology.DeviceKindRouter, Name: "R1"},
		{ID: "r2", Kind: topology.DeviceKindRouter, Name: "R2"},
	}
	links := []*topology.Link{
		{ID: "l1", From: "r1", To: "r2", RoutingDirection: topology.RoutingBidirectional},
	}
	in := s.build(devices, links, nil)

	driver := SimulatorDriver(in, 1.0)
	s.Contains(driver, `addLink("R1", "R2");`)
}

func (s *EmitTestSuite) TestDefaultModelByKind() {
	s.Equal("2811", DefaultModel(topology.DeviceKindRouter))
	s.Equal("3560-24PS", DefaultModel(topology.DeviceKindSwitchCore))
	s.Equal("2960-24TT", DefaultModel(topology.DeviceKindSwitch))
	s.Equal("PC-PT", DefaultModel(topology.DeviceKindHost))
}
