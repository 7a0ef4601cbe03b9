/*
Copyright 2024 topo-configgen contributors
*/

package iosconfig

import "net"

// maskString renders an IPv4 mask in dotted-decimal form, e.g. "255.255.255.252".
func maskString(mask net.IPMask) string {
	return net.IP(mask).String()
}
