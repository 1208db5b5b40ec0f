package ipmath

import (
	"errors"
	"math/bits"
	"net/netip"
	"testing"
)

func TestNetmaskHasLeadingOnes(t *testing.T) {
	for prefix := 0; prefix <= 32; prefix++ {
		mask, err := Netmask(prefix)
		if err != nil {
			t.Fatalf("Netmask(%d): %v", prefix, err)
		}
		if got := bits.LeadingZeros32(^mask); got != prefix {
			t.Fatalf("Netmask(%d) = %032b, expected %d leading ones", prefix, mask, prefix)
		}
		if got := bits.TrailingZeros32(mask); prefix > 0 && prefix < 32 && got != 32-prefix {
			t.Fatalf("Netmask(%d) = %032b, expected %d trailing zeros", prefix, mask, 32-prefix)
		}
	}

	if mask, _ := Netmask(0); mask != 0 {
		t.Fatalf("Netmask(0) = %d, expected 0", mask)
	}
	if mask, _ := Netmask(32); mask != 0xFFFFFFFF {
		t.Fatalf("Netmask(32) = %d, expected all ones", mask)
	}
}

func TestNetmaskRejectsOutOfRangePrefix(t *testing.T) {
	for _, prefix := range []int{-1, 33, 128} {
		if _, err := Netmask(prefix); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("Netmask(%d): expected ErrInvalidArgument, got %v", prefix, err)
		}
	}
}

func TestLastAddress(t *testing.T) {
	network := uint32(167772160) // 10.0.0.0

	last, err := LastAddress(network, 24)
	if err != nil {
		t.Fatalf("LastAddress: %v", err)
	}
	if got := FormatAddress(last); got != "10.0.0.255" {
		t.Fatalf("LastAddress(10.0.0.0, 24) = %s, expected 10.0.0.255", got)
	}

	// /32: network and broadcast coincide.
	last, err = LastAddress(network, 32)
	if err != nil {
		t.Fatalf("LastAddress: %v", err)
	}
	if last != network {
		t.Fatalf("LastAddress(10.0.0.0, 32) = %d, expected %d", last, network)
	}
}

func TestHostCapacity(t *testing.T) {
	cases := []struct {
		prefix int
		want   uint32
	}{
		{24, 254},
		{30, 2},
		{31, 0},
		{32, 0},
		{0, 4294967294},
	}
	for _, tc := range cases {
		got, err := HostCapacity(tc.prefix)
		if err != nil {
			t.Fatalf("HostCapacity(%d): %v", tc.prefix, err)
		}
		if got != tc.want {
			t.Fatalf("HostCapacity(%d) = %d, expected %d", tc.prefix, got, tc.want)
		}
	}
}

func TestHostCapacityAzure(t *testing.T) {
	cases := []struct {
		prefix int
		want   uint32
	}{
		{24, 251},
		{28, 11},
		{29, 3},
		{30, 0},
		{31, 0},
		{32, 0},
	}
	for _, tc := range cases {
		got, err := HostCapacityAzure(tc.prefix)
		if err != nil {
			t.Fatalf("HostCapacityAzure(%d): %v", tc.prefix, err)
		}
		if got != tc.want {
			t.Fatalf("HostCapacityAzure(%d) = %d, expected %d", tc.prefix, got, tc.want)
		}
	}
}

func TestUsableRange(t *testing.T) {
	network := uint32(167772160) // 10.0.0.0

	r, ok, err := UsableRange(network, 24)
	if err != nil {
		t.Fatalf("UsableRange: %v", err)
	}
	if !ok {
		t.Fatal("expected a usable range for /24")
	}
	if FormatAddress(r.First) != "10.0.0.1" || FormatAddress(r.Last) != "10.0.0.254" {
		t.Fatalf("UsableRange = %s - %s, expected 10.0.0.1 - 10.0.0.254", FormatAddress(r.First), FormatAddress(r.Last))
	}

	_, ok, err = UsableRange(network, 31)
	if err != nil {
		t.Fatalf("UsableRange: %v", err)
	}
	if ok {
		t.Fatal("expected no usable range for /31")
	}
}

func TestUsableRangeAzure(t *testing.T) {
	network := uint32(167772160) // 10.0.0.0

	r, ok, err := UsableRangeAzure(network, 24)
	if err != nil {
		t.Fatalf("UsableRangeAzure: %v", err)
	}
	if !ok {
		t.Fatal("expected a usable range for /24")
	}
	if FormatAddress(r.First) != "10.0.0.4" || FormatAddress(r.Last) != "10.0.0.254" {
		t.Fatalf("UsableRangeAzure = %s - %s, expected 10.0.0.4 - 10.0.0.254", FormatAddress(r.First), FormatAddress(r.Last))
	}

	_, ok, err = UsableRangeAzure(network, 30)
	if err != nil {
		t.Fatalf("UsableRangeAzure: %v", err)
	}
	if ok {
		t.Fatal("expected no usable range for /30")
	}
}

func TestFormatAddress(t *testing.T) {
	cases := []struct {
		addr uint32
		want string
	}{
		{167772160, "10.0.0.0"},
		{0, "0.0.0.0"},
		{0xFFFFFFFF, "255.255.255.255"},
		{3232235777, "192.168.1.1"},
	}
	for _, tc := range cases {
		if got := FormatAddress(tc.addr); got != tc.want {
			t.Fatalf("FormatAddress(%d) = %q, expected %q", tc.addr, got, tc.want)
		}
	}
}

func TestAddrRoundTrip(t *testing.T) {
	addr := netip.MustParseAddr("10.1.2.3")

	n, err := FromAddr(addr)
	if err != nil {
		t.Fatalf("FromAddr: %v", err)
	}
	if ToAddr(n) != addr {
		t.Fatalf("round trip returned %s, expected %s", ToAddr(n), addr)
	}

	if _, err := FromAddr(netip.MustParseAddr("2001:db8::1")); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for ipv6, got %v", err)
	}

	// 4-in-6 addresses unmap to their IPv4 value.
	mapped, err := FromAddr(netip.MustParseAddr("::ffff:10.1.2.3"))
	if err != nil {
		t.Fatalf("FromAddr mapped: %v", err)
	}
	if mapped != n {
		t.Fatalf("mapped address converted to %d, expected %d", mapped, n)
	}
}
