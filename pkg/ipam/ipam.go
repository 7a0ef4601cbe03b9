/*
Copyright 2024 topo-configgen contributors
*/

// Package ipam provides IP address management functionality: variable-length
// subnetting, overlap-free allocation, and broadcast/gateway arithmetic.
// The subnetting routines are adapted from the giantswarm/ipam lineage.
package ipam

import (
	"encoding/binary"
	"math"
	"math/bits"
	"net"
	"sort"

	"github.com/nodeforge/topo-configgen/pkg/topoerr"
)

// IPRange is a pair of IPs over a contiguous range.
type IPRange struct {
	start net.IP
	end   net.IP
}

// ipNets sorts net.IPNets by their numeric network address.
type ipNets []net.IPNet

func (s ipNets) Len() int      { return len(s) }
func (s ipNets) Swap(i, j int) { s[i], s[j] = s[j], s[i] }
func (s ipNets) Less(i, j int) bool {
	return ipToDecimal(s[i].IP) < ipToDecimal(s[j].IP)
}

// Registry hands out non-overlapping subnets of a requested prefix length
// drawn from a single base block. It is the Address Allocator of the
// configuration-generation pipeline: constructed fresh per generation
// request, never shared across requests.
type Registry struct {
	base net.IPNet
	used []net.IPNet
}

// NewRegistry constructs a Registry over the given base CIDR block.
func NewRegistry(base net.IPNet) *Registry {
	return &Registry{base: base}
}

// NewRegistryFromOctet builds the default base block <octet>.0.0.0/8 used
// when a generation request supplies only baseNetworkOctet.
func NewRegistryFromOctet(octet int) (*Registry, error) {
	if octet < 1 || octet > 223 {
		return nil, topoerr.New(topoerr.InvalidTopology, "baseNetworkOctet", "octet %d out of range [1,223]", octet)
	}
	base := net.IPNet{
		IP:   net.IPv4(byte(octet), 0, 0, 0).To4(),
		Mask: net.CIDRMask(8, 32),
	}
	return NewRegistry(base), nil
}

// Allocate returns the first unused subnet of prefixLen within the base
// block, in ascending network-address order, and marks it used.
func (r *Registry) Allocate(prefixLen int) (net.IPNet, error) {
	baseOnes, baseBits := r.base.Mask.Size()
	if prefixLen < baseOnes || prefixLen > 32 {
		return net.IPNet{}, topoerr.New(topoerr.AddressExhausted, r.base.String(),
			"requested prefix /%d is not contained by base block /%d", prefixLen, baseOnes)
	}

	mask := net.CIDRMask(prefixLen, baseBits)
	free, err := Free(r.base, mask, r.used)
	if err != nil {
		return net.IPNet{}, topoerr.Wrap(topoerr.AddressExhausted, r.base.String(), err)
	}

	r.MarkUsed(free)
	return free, nil
}

// MarkUsed records net as allocated so future Allocate calls avoid it.
func (r *Registry) MarkUsed(n net.IPNet) {
	r.used = append(r.used, n)
	sort.Sort(ipNets(r.used))
}

// Allocated returns every subnet handed out so far, in canonical order.
func (r *Registry) Allocated() []net.IPNet {
	out := make([]net.IPNet, len(r.used))
	copy(out, r.used)
	return out
}

// Overlaps reports whether two networks overlap: one contains the other's
// network address.
func Overlaps(a, b net.IPNet) bool {
	return a.Contains(b.IP) || b.Contains(a.IP)
}

// CalculateSubnetMask calculates the subnet mask needed to accommodate n
// equally-sized subnets of a parent network mask.
func CalculateSubnetMask(networkMask net.IPMask, n uint) (net.IPMask, error) {
	if n == 0 {
		return nil, topoerr.New(topoerr.ConfigBuildFailure, "", "cannot divide a network into zero subnets")
	}
	subnetBitsNeeded := bits.Len(n - 1)
	maskOnes, maskBits := networkMask.Size()
	if subnetBitsNeeded > maskBits-maskOnes {
		return nil, topoerr.New(topoerr.AddressExhausted, networkMask.String(),
			"no room in network mask %s to accommodate %d subnets", networkMask.String(), n)
	}
	return net.CIDRMask(maskOnes+subnetBitsNeeded, maskBits), nil
}

// Free finds the first available subnet of the given mask within network,
// avoiding every subnet already present in used.
func Free(network net.IPNet, mask net.IPMask, used []net.IPNet) (net.IPNet, error) {
	if size(network.Mask) < size(mask) {
		return net.IPNet{}, topoerr.New(topoerr.AddressExhausted, network.String(),
			"network mask %v cannot hold requested mask %v", network.Mask, mask)
	}

	sorted := make([]net.IPNet, len(used))
	copy(sorted, used)
	sort.Sort(ipNets(sorted))

	freeRanges := freeIPRanges(network, sorted)

	freeIP, err := space(freeRanges, mask)
	if err != nil {
		return net.IPNet{}, topoerr.Wrap(topoerr.AddressExhausted, network.String(), err)
	}

	return net.IPNet{IP: freeIP, Mask: mask}, nil
}

// Split returns n non-overlapping subnets carved out of network.
func Split(network net.IPNet, n uint) ([]net.IPNet, error) {
	mask, err := CalculateSubnetMask(network.Mask, n)
	if err != nil {
		return nil, err
	}

	var subnets []net.IPNet
	for i := uint(0); i < n; i++ {
		subnet, err := Free(network, mask, subnets)
		if err != nil {
			return nil, err
		}
		subnets = append(subnets, subnet)
	}
	return subnets, nil
}

// Add increments ip by number (negative values decrement).
func Add(ip net.IP, number int) net.IP {
	return decimalToIP(ipToDecimal(ip) + number)
}

// Broadcast returns the broadcast address of network.
func Broadcast(network net.IPNet) net.IP {
	return Add(network.IP, size(network.Mask)-1)
}

// Gateway returns the last usable host of network, the fixed VLAN-gateway
// policy of the VLAN Planner.
func Gateway(network net.IPNet) net.IP {
	return Add(Broadcast(network), -1)
}

// UsableHosts returns the number of usable host addresses in network. A /31
// and /32 are never presented to this function by VLAN planning (rejected
// upstream), but are handled for completeness by the allocator's own use.
func UsableHosts(network net.IPNet) int {
	ones, _ := network.Mask.Size()
	if ones == 32 {
		return 1
	}
	if ones == 31 {
		return 2
	}
	return size(network.Mask) - 2
}

func decimalToIP(ip int) net.IP {
	t := make(net.IP, 4)
	binary.BigEndian.PutUint32(t, uint32(ip))
	return t
}

func ipToDecimal(ip net.IP) int {
	t := ip
	if len(ip) == 16 {
		t = ip[12:16]
	}
	return int(binary.BigEndian.Uint32(t))
}

func newIPRange(network net.IPNet) IPRange {
	start := network.IP
	end := Add(network.IP, size(network.Mask)-1)
	return IPRange{start: start, end: end}
}

func size(mask net.IPMask) int {
	ones, _ := mask.Size()
	return int(math.Pow(2, float64(32-ones)))
}

// freeIPRanges computes the free IP ranges within network given a sorted,
// non-overlapping list of already-used subnets.
func freeIPRanges(network net.IPNet, subnets []net.IPNet) []IPRange {
	var free []IPRange
	networkRange := newIPRange(network)

	if len(subnets) == 0 {
		return []IPRange{networkRange}
	}

	firstSubnetRange := newIPRange(subnets[0])
	if !networkRange.start.Equal(firstSubnetRange.start) {
		end := Add(firstSubnetRange.start, -1)
		free = append(free, IPRange{start: networkRange.start, end: end})
	}

	for i := 0; i < len(subnets)-1; i++ {
		currentRange := newIPRange(subnets[i])
		nextRange := newIPRange(subnets[i+1])
		if ipToDecimal(currentRange.end)+1 != ipToDecimal(nextRange.start) {
			start := Add(currentRange.end, 1)
			end := Add(nextRange.start, -1)
			free = append(free, IPRange{start: start, end: end})
		}
	}

	lastSubnetRange := newIPRange(subnets[len(subnets)-1])
	if !lastSubnetRange.end.Equal(networkRange.end) {
		start := Add(lastSubnetRange.end, 1)
		free = append(free, IPRange{start: start, end: networkRange.end})
	}

	return free
}

// space returns the start IP of the first free range that can fit mask.
func space(freeIPRanges []IPRange, mask net.IPMask) (net.IP, error) {
	for _, freeIPRange := range freeIPRanges {
		start := ipToDecimal(freeIPRange.start)
		end := ipToDecimal(freeIPRange.end)

		ones, _ := mask.Size()
		trailingZeros := bits.TrailingZeros32(uint32(start))
		for (start < end) && (ones < (32 - trailingZeros)) {
			var alignMask uint32
			for i := 0; i < trailingZeros; i++ {
				alignMask |= 1 << uint32(i)
			}
			start = int(uint32(start) | alignMask)
			start++
			trailingZeros = bits.TrailingZeros32(uint32(start))
		}

		if end-start+1 >= size(mask) {
			return decimalToIP(start), nil
		}
	}

	return nil, topoerr.New(topoerr.AddressExhausted, mask.String(), "no free range could fit mask %v", mask)
}
