// Package ipv4 provides bit-level IPv4 address arithmetic for subnet planning.
//
// Addresses are represented as 32-bit unsigned integers in host order, so a
// block is fully described by a (network, prefix) pair. The package covers
// parsing and formatting of dotted-quad notation, prefix masks, block sizes,
// and usable-host ranges under two reservation policies:
//
//   - Classic: the network and broadcast addresses are reserved (except for
//     /31 and /32 blocks, where every address is usable).
//   - Azure: the first four addresses and the broadcast address are reserved,
//     so blocks of five addresses or fewer have no usable range at all.
//
// All functions are pure and allocation-free apart from string formatting.
package ipv4

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxPrefix is the longest valid IPv4 prefix length.
const MaxPrefix = 32

var (
	// ErrInvalidAddress is returned by [ParseAddress] when the input is not
	// exactly four dot-separated decimal octets in the range 0-255.
	ErrInvalidAddress = errors.New("invalid IPv4 address")

	// ErrInvalidPrefix is returned when a prefix length is outside [0,32].
	ErrInvalidPrefix = errors.New("prefix length must be between 0 and 32")

	// ErrInvalidCIDR is returned by [ParseCIDR] when the input is not in
	// "address/prefix" form.
	ErrInvalidCIDR = errors.New("invalid CIDR notation")
)

// ParseAddress parses a dotted-quad IPv4 address into its 32-bit value.
// The input must be exactly four dot-separated decimal octets, each in the
// range 0-255, with no leading/trailing garbage. Anything else returns
// ErrInvalidAddress - there is no best-effort or partial parsing.
func ParseAddress(s string) (uint32, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	var addr uint32
	for _, p := range parts {
		if p == "" || len(p) > 3 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
		}
		for _, r := range p {
			if r < '0' || r > '9' {
				return 0, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
			}
		}
		octet, err := strconv.Atoi(p)
		if err != nil || octet > 255 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
		}
		addr = addr<<8 | uint32(octet)
	}
	return addr, nil
}

// FormatAddress formats a 32-bit value as a dotted-quad string.
// ParseAddress(FormatAddress(x)) == x holds for every uint32 x.
func FormatAddress(addr uint32) string {
	return fmt.Sprintf("%d.%d.%d.%d", addr>>24, addr>>16&0xFF, addr>>8&0xFF, addr&0xFF)
}

// ValidPrefix reports whether prefix is a legal IPv4 prefix length.
func ValidPrefix(prefix int) bool {
	return prefix >= 0 && prefix <= MaxPrefix
}

// PrefixMask returns the netmask for a prefix length: prefix leading one-bits
// followed by 32-prefix zero-bits. Prefix 0 yields 0 and prefix 32 yields
// all ones. The prefix-32 case is handled explicitly because a 32-bit shift
// by 32 is undefined on uint32 operands.
func PrefixMask(prefix int) uint32 {
	if prefix <= 0 {
		return 0
	}
	if prefix >= MaxPrefix {
		return 0xFFFFFFFF
	}
	return ^uint32(0) << (MaxPrefix - prefix)
}

// NormalizeNetwork rounds an address down to the start of its block by
// clearing all host bits. Callers that care whether host bits were set
// (a user typed an address inside the block rather than its start) should
// compare the result against the input.
func NormalizeNetwork(addr uint32, prefix int) uint32 {
	return addr & PrefixMask(prefix)
}

// AddressCount returns the number of addresses in a block with the given
// prefix length: 2^(32-prefix). A /0 block holds 2^32 addresses, which does
// not fit in uint32, so the count is returned as uint64.
func AddressCount(prefix int) uint64 {
	if !ValidPrefix(prefix) {
		return 0
	}
	return uint64(1) << (MaxPrefix - prefix)
}

// BlockSize returns AddressCount truncated to uint32 for prefix >= 1,
// suitable for address offset arithmetic. Must not be called with prefix 0.
func BlockSize(prefix int) uint32 {
	return uint32(AddressCount(prefix))
}

// LastAddress returns the final (broadcast) address of a block.
func LastAddress(network uint32, prefix int) uint32 {
	return network + uint32(AddressCount(prefix)-1)
}

// Range is an inclusive span of addresses. A zero-count range (Empty true)
// means the block has no usable hosts under the applied reservation policy.
type Range struct {
	First uint32
	Last  uint32
	Empty bool
}

// String formats the range as "first - last", or "none" when empty.
func (r Range) String() string {
	if r.Empty {
		return "none"
	}
	return FormatAddress(r.First) + " - " + FormatAddress(r.Last)
}

// UsableRange returns the host-assignable span of a block under the classic
// policy: network and broadcast addresses excluded. For /31 and /32 blocks
// the entire range is usable (RFC 3021 point-to-point semantics).
func UsableRange(network uint32, prefix int) Range {
	if prefix >= MaxPrefix-1 {
		return Range{First: network, Last: LastAddress(network, prefix)}
	}
	return Range{First: network + 1, Last: LastAddress(network, prefix) - 1}
}

// HostCapacity returns the number of assignable hosts under the classic
// policy: 1 for /32, 2 for /31, and count-2 otherwise.
func HostCapacity(prefix int) uint64 {
	switch {
	case prefix >= MaxPrefix:
		return 1
	case prefix == MaxPrefix-1:
		return 2
	default:
		return AddressCount(prefix) - 2
	}
}

// azureReserved is the number of addresses Azure reserves per block: the
// network address, three platform addresses, and the broadcast address.
const azureReserved = 5

// UsableRangeAzure returns the host-assignable span of a block under the
// Azure reservation policy: the first four addresses and the broadcast
// address are reserved. Blocks with five or fewer addresses have no usable
// range at all.
func UsableRangeAzure(network uint32, prefix int) Range {
	if AddressCount(prefix) <= azureReserved {
		return Range{Empty: true}
	}
	return Range{First: network + 4, Last: LastAddress(network, prefix) - 1}
}

// HostCapacityAzure returns the number of assignable hosts under the Azure
// reservation policy: count-5, or 0 when the block holds five addresses or
// fewer.
func HostCapacityAzure(prefix int) uint64 {
	count := AddressCount(prefix)
	if count <= azureReserved {
		return 0
	}
	return count - azureReserved
}

// ParseCIDR parses "address/prefix" notation into a normalized network and
// prefix length. The returned exact flag is false when the address carried
// host bits and was rounded down to the block boundary; callers decide
// whether to warn the user about the adjustment.
func ParseCIDR(s string) (network uint32, prefix int, exact bool, err error) {
	addrPart, prefixPart, found := strings.Cut(s, "/")
	if !found {
		return 0, 0, false, fmt.Errorf("%w: %q", ErrInvalidCIDR, s)
	}
	addr, err := ParseAddress(addrPart)
	if err != nil {
		return 0, 0, false, err
	}
	prefix, err = strconv.Atoi(prefixPart)
	if err != nil {
		return 0, 0, false, fmt.Errorf("%w: %q", ErrInvalidCIDR, s)
	}
	if !ValidPrefix(prefix) {
		return 0, 0, false, fmt.Errorf("%w: got %d", ErrInvalidPrefix, prefix)
	}
	network = NormalizeNetwork(addr, prefix)
	return network, prefix, network == addr, nil
}

// FormatCIDR formats a block as "address/prefix".
func FormatCIDR(network uint32, prefix int) string {
	return fmt.Sprintf("%s/%d", FormatAddress(network), prefix)
}
