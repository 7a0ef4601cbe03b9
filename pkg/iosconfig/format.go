/*
Copyright 2024 topo-configgen contributors
*/

package iosconfig

import "strings"

// Format renders a device's command stream into final text: the hostname
// label, "enable", "conf t", then every section with the required
// transitions inserted between sections, with consecutive duplicate
// exit/enable lines collapsed, per the CLI command formatter contract in
// spec.md §6.
func Format(hostname string, lines []CommandLine) string {
	out := []string{hostname, "enable", "conf t"}

	prevMode := ModeGlobal
	for _, l := range lines {
		if l.NewBlock {
			out = append(out, transition(prevMode, l.Mode)...)
			prevMode = l.Mode
		}
		if l.Text != "" {
			out = append(out, l.Text)
		}
	}

	out = collapseDuplicates(out)
	return strings.Join(out, "\n") + "\n"
}

// transition returns the lines required to move from prev mode to next
// mode at a section boundary. Only interface-to-interface transitions and
// entry into the routes block carry an explicit contract in spec.md §6;
// every other submode exit degrades to a bare "exit" back to global
// config, since no conf-t re-entry is required there.
func transition(prev, next Mode) []string {
	switch next {
	case ModeRoutes:
		// "Every ip route statement is preceded by exactly one exit and
		// one enable line, once per device" — applied unconditionally at
		// the single routes-block boundary, regardless of what preceded
		// it (spec.md §6 names the DHCP-pool case explicitly but the rule
		// is general).
		return []string{"exit", "enable"}
	case ModeInterface:
		switch prev {
		case ModeInterface:
			return []string{"exit", "enable", "conf t"}
		case ModeVLANDatabase, ModeDHCPPool, ModeLine:
			return []string{"exit"}
		}
		return nil
	case ModeVLANDatabase, ModeDHCPPool, ModeLine:
		if prev == ModeInterface {
			return []string{"exit"}
		}
		return nil
	}
	return nil
}

// collapseDuplicates removes a consecutive repeat of "exit" or "enable",
// per the formatter contract's final clause.
func collapseDuplicates(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if len(out) > 0 && out[len(out)-1] == l && (l == "exit" || l == "enable") {
			continue
		}
		out = append(out, l)
	}
	return out
}
