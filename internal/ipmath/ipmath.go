// Package ipmath implements IPv4 subnet arithmetic over 32-bit unsigned
// integers in network byte order. All functions are pure and safe for
// concurrent use.
package ipmath

import (
	"encoding/binary"
	"errors"
	"fmt"
	"net/netip"
)

// ErrInvalidArgument is returned when a prefix is outside [0,32].
var ErrInvalidArgument = errors.New("invalid argument")

// Range is an inclusive span of IPv4 addresses.
type Range struct {
	First uint32
	Last  uint32
}

// Netmask returns the mask with the top prefix bits set.
func Netmask(prefix int) (uint32, error) {
	if err := checkPrefix(prefix); err != nil {
		return 0, err
	}
	if prefix == 0 {
		return 0, nil
	}
	return ^uint32(0) << (32 - prefix), nil
}

// LastAddress returns the broadcast (last) address of the subnet.
func LastAddress(network uint32, prefix int) (uint32, error) {
	mask, err := Netmask(prefix)
	if err != nil {
		return 0, err
	}
	return network | ^mask, nil
}

// HostCapacity returns the number of usable host addresses under the
// standard convention: network and broadcast are reserved, so /31 and
// /32 hold no usable hosts.
func HostCapacity(prefix int) (uint32, error) {
	if err := checkPrefix(prefix); err != nil {
		return 0, err
	}
	total := uint64(1) << (32 - prefix)
	if total <= 2 {
		return 0, nil
	}
	return uint32(total - 2), nil
}

// HostCapacityAzure returns the number of usable host addresses when
// Azure reserves five addresses per subnet (network, the next three,
// and broadcast). Subnets longer than /29 hold no usable hosts.
func HostCapacityAzure(prefix int) (uint32, error) {
	if err := checkPrefix(prefix); err != nil {
		return 0, err
	}
	total := uint64(1) << (32 - prefix)
	if total <= 5 {
		return 0, nil
	}
	return uint32(total - 5), nil
}

// UsableRange returns the first and last usable host addresses under
// the standard convention. ok is false when the subnet has no usable
// hosts.
func UsableRange(network uint32, prefix int) (r Range, ok bool, err error) {
	capacity, err := HostCapacity(prefix)
	if err != nil {
		return Range{}, false, err
	}
	if capacity == 0 {
		return Range{}, false, nil
	}
	last, err := LastAddress(network, prefix)
	if err != nil {
		return Range{}, false, err
	}
	return Range{First: network + 1, Last: last - 1}, true, nil
}

// UsableRangeAzure returns the first and last usable host addresses
// under the Azure convention: the network address plus the next three
// are reserved, as is broadcast.
func UsableRangeAzure(network uint32, prefix int) (r Range, ok bool, err error) {
	capacity, err := HostCapacityAzure(prefix)
	if err != nil {
		return Range{}, false, err
	}
	if capacity == 0 {
		return Range{}, false, nil
	}
	last, err := LastAddress(network, prefix)
	if err != nil {
		return Range{}, false, err
	}
	return Range{First: network + 4, Last: last - 1}, true, nil
}

// FormatAddress renders the address as dotted decimal, most
// significant octet first.
func FormatAddress(addr uint32) string {
	return fmt.Sprintf("%d.%d.%d.%d", addr>>24&0xFF, addr>>16&0xFF, addr>>8&0xFF, addr&0xFF)
}

// FromAddr converts a netip address to its uint32 representation.
// IPv4-mapped IPv6 addresses are unmapped first.
func FromAddr(addr netip.Addr) (uint32, error) {
	addr = addr.Unmap()
	if !addr.Is4() {
		return 0, fmt.Errorf("%w: not an ipv4 address", ErrInvalidArgument)
	}
	b := addr.As4()
	return binary.BigEndian.Uint32(b[:]), nil
}

// ToAddr converts a uint32 back to a netip address.
func ToAddr(addr uint32) netip.Addr {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], addr)
	return netip.AddrFrom4(b)
}

func checkPrefix(prefix int) error {
	if prefix < 0 || prefix > 32 {
		return fmt.Errorf("%w: prefix %d out of range [0,32]", ErrInvalidArgument, prefix)
	}
	return nil
}
