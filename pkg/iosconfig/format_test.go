/*
Copyright 2024 topo-configgen contributors
*/

package iosconfig

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

type FormatTestSuite struct {
	suite.Suite
}

func TestFormatTestSuite(t *testing.T) {
	suite.Run(t, new(FormatTestSuite))
}

func (s *FormatTestSuite) TestEmptyRoutesBlockStillEmitsTransition() {
	b := NewBuilder()
	b.Line("hostname R1")
	b.EnterRoutes()

	out := Format("R1", b.Lines())
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	s.Equal([]string{"R1", "enable", "conf t", "hostname R1", "exit", "enable"}, lines)
}

func (s *FormatTestSuite) TestInterfaceToInterfaceTransition() {
	b := NewBuilder()
	b.Block(ModeInterface, "interface FastEthernet0/0")
	b.Line("no shutdown")
	b.Block(ModeInterface, "interface FastEthernet0/1")
	b.Line("no shutdown")
	b.EnterRoutes()

	out := Format("SW1", b.Lines())
	s.Contains(out, "interface FastEthernet0/0\nno shutdown\nexit\nenable\nconf t\ninterface FastEthernet0/1")
}

func (s *FormatTestSuite) TestDHCPPoolToRoutesTransition() {
	b := NewBuilder()
	b.Block(ModeDHCPPool, "ip dhcp pool vlan10")
	b.Line("network 192.168.1.0 255.255.255.0")
	b.EnterRoutes()
	b.Line("ip route 10.0.0.0 255.255.255.252 192.168.1.2")

	out := Format("R1", b.Lines())
	s.Contains(out, "network 192.168.1.0 255.255.255.0\nexit\nenable\nip route 10.0.0.0 255.255.255.252 192.168.1.2")
}

func (s *FormatTestSuite) TestDuplicateExitEnableCollapsed() {
	b := NewBuilder()
	b.Block(ModeInterface, "interface FastEthernet0/0")
	b.EnterRoutes()

	out := Format("R1", b.Lines())
	s.NotContains(out, "exit\nexit")
	s.NotContains(out, "enable\nenable")
}

func (s *FormatTestSuite) TestVLANDatabaseEntriesNeedNoInternalTransition() {
	b := NewBuilder()
	b.Block(ModeVLANDatabase, "vlan 10")
	b.Line("name vlan10")
	b.Block(ModeVLANDatabase, "vlan 20")
	b.Line("name vlan20")
	b.EnterRoutes()

	out := Format("SW1", b.Lines())
	s.Contains(out, "vlan 10\nname vlan10\nvlan 20\nname vlan20")
}
