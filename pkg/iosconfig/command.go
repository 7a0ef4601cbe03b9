/*
Copyright 2024 topo-configgen contributors
*/

// Package iosconfig assembles per-device Cisco IOS command streams from the
// allocator, link, VLAN, and routing plans. A command stream is an ordered
// sequence of CommandLine records carrying a Mode tag; a single formatter
// pass (format.go) turns that sequence into the final text, inserting the
// exit/enable/conf-t transitions the CLI formatter contract requires
// instead of string-concatenating them inline at each call site.
package iosconfig

import "fmt"

// Mode names the Cisco IOS configuration mode a CommandLine executes in.
type Mode string

const (
	// ModeGlobal covers one-liners issued directly in global config mode:
	// hostname, enable secret, ip routing. Static routes use ModeRoutes.
	ModeGlobal Mode = "global"
	// ModeInterface covers any "interface ..." submode: physical
	// interfaces, subinterfaces, SVIs, access ports, trunk/port-channel
	// members.
	ModeInterface Mode = "interface"
	// ModeVLANDatabase covers "vlan <id>" / "name <name>" entries.
	ModeVLANDatabase Mode = "vlan-database"
	// ModeDHCPPool covers "ip dhcp pool <name>" bodies.
	ModeDHCPPool Mode = "dhcp-pool"
	// ModeLine covers "line vty ..." management blocks.
	ModeLine Mode = "line"
	// ModeRoutes covers the terminal ip route block.
	ModeRoutes Mode = "routes"
)

// CommandLine is one line of a device's command stream. NewBlock marks the
// first line of a logical section (a specific interface, the VLAN
// database, a DHCP pool, the routes block); the formatter only considers
// inserting a transition at a NewBlock boundary.
type CommandLine struct {
	Text     string
	Mode     Mode
	NewBlock bool
}

// Builder accumulates a device's command stream in the order described by
// spec.md §4.6: hostname/secret, optional ip routing, VLAN database,
// interface blocks, DHCP pools, and finally the routes block.
type Builder struct {
	lines   []CommandLine
	curMode Mode
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{curMode: ModeGlobal}
}

// Block starts a new logical section in the given mode with its first
// line. Pass an empty text to open a section that carries no command of
// its own (used by EnterRoutes to mark the routes block even when no
// routes are emitted).
func (b *Builder) Block(mode Mode, text string) *Builder {
	b.lines = append(b.lines, CommandLine{Text: text, Mode: mode, NewBlock: true})
	b.curMode = mode
	return b
}

// Blockf is Block with fmt.Sprintf formatting.
func (b *Builder) Blockf(mode Mode, format string, args ...interface{}) *Builder {
	return b.Block(mode, fmt.Sprintf(format, args...))
}

// Line appends a line continuing the current section's mode.
func (b *Builder) Line(text string) *Builder {
	b.lines = append(b.lines, CommandLine{Text: text, Mode: b.curMode})
	return b
}

// Linef is Line with fmt.Sprintf formatting.
func (b *Builder) Linef(format string, args ...interface{}) *Builder {
	return b.Line(fmt.Sprintf(format, args...))
}

// EnterRoutes opens the terminal routes block. It is always called, even
// when the device has zero static routes, so the exit/enable transition
// that introduces the block is never skipped (spec.md §8: "Both device
// scripts end with the transitions-then-empty-routes sequence").
func (b *Builder) EnterRoutes() *Builder {
	return b.Block(ModeRoutes, "")
}

// Lines returns the accumulated command stream.
func (b *Builder) Lines() []CommandLine {
	return b.lines
}
