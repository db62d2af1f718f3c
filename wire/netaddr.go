package wire

import (
	"encoding/base32"
	"fmt"
	"net"
	"strings"
)

// AddressType tags one of the four network address forms a node can
// advertise.
type AddressType uint8

const (
	AddrIPv4 AddressType = 1
	AddrIPv6 AddressType = 2
	AddrTor2 AddressType = 3
	AddrTor3 AddressType = 4
)

// NetAddress is one advertised endpoint. The port always trails the
// address payload, big-endian.
type NetAddress interface {
	AddrType() AddressType
	encode(w *writer)
}

// IPv4Addr is a raw IPv4 address and port.
type IPv4Addr struct {
	Addr [4]byte
	Port uint16
}

func (a IPv4Addr) AddrType() AddressType { return AddrIPv4 }

func (a IPv4Addr) encode(w *writer) {
	w.u8(byte(AddrIPv4))
	w.bytes(a.Addr[:])
	w.u16(a.Port)
}

func (a IPv4Addr) String() string {
	return fmt.Sprintf("%s:%d", net.IP(a.Addr[:]), a.Port)
}

// IPv6Addr is a raw IPv6 address and port. The 16 address bytes are
// carried verbatim: IPv4-mapped addresses are never normalized.
type IPv6Addr struct {
	Addr [16]byte
	Port uint16
}

func (a IPv6Addr) AddrType() AddressType { return AddrIPv6 }

func (a IPv6Addr) encode(w *writer) {
	w.u8(byte(AddrIPv6))
	w.bytes(a.Addr[:])
	w.u16(a.Port)
}

func (a IPv6Addr) String() string {
	return fmt.Sprintf("[%x]:%d", a.Addr[:], a.Port)
}

// Tor2Addr is a version 2 onion service identifier and port.
type Tor2Addr struct {
	Onion [10]byte
	Port  uint16
}

func (a Tor2Addr) AddrType() AddressType { return AddrTor2 }

func (a Tor2Addr) encode(w *writer) {
	w.u8(byte(AddrTor2))
	w.bytes(a.Onion[:])
	w.u16(a.Port)
}

func (a Tor2Addr) String() string {
	return onionString(a.Onion[:], a.Port)
}

// Tor3Addr is a version 3 onion service identifier and port.
type Tor3Addr struct {
	Onion [35]byte
	Port  uint16
}

func (a Tor3Addr) AddrType() AddressType { return AddrTor3 }

func (a Tor3Addr) encode(w *writer) {
	w.u8(byte(AddrTor3))
	w.bytes(a.Onion[:])
	w.u16(a.Port)
}

func (a Tor3Addr) String() string {
	return onionString(a.Onion[:], a.Port)
}

func onionString(id []byte, port uint16) string {
	host := strings.ToLower(base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(id))
	return fmt.Sprintf("%s.onion:%d", host, port)
}

// decodeNetAddress reads one tagged address. Unknown tags fail; there is
// no fallback variant.
func decodeNetAddress(r *reader) (NetAddress, error) {
	tag, err := r.u8()
	if err != nil {
		return nil, err
	}
	switch AddressType(tag) {
	case AddrIPv4:
		var a IPv4Addr
		b, err := r.bytes(4)
		if err != nil {
			return nil, err
		}
		copy(a.Addr[:], b)
		if a.Port, err = r.u16(); err != nil {
			return nil, err
		}
		return a, nil
	case AddrIPv6:
		var a IPv6Addr
		b, err := r.bytes(16)
		if err != nil {
			return nil, err
		}
		copy(a.Addr[:], b)
		if a.Port, err = r.u16(); err != nil {
			return nil, err
		}
		return a, nil
	case AddrTor2:
		var a Tor2Addr
		b, err := r.bytes(10)
		if err != nil {
			return nil, err
		}
		copy(a.Onion[:], b)
		if a.Port, err = r.u16(); err != nil {
			return nil, err
		}
		return a, nil
	case AddrTor3:
		var a Tor3Addr
		b, err := r.bytes(35)
		if err != nil {
			return nil, err
		}
		copy(a.Onion[:], b)
		if a.Port, err = r.u16(); err != nil {
			return nil, err
		}
		return a, nil
	default:
		return nil, fmt.Errorf("%w: tag %d", ErrUnknownAddressType, tag)
	}
}

// decodeAddressList greedily decodes addresses until region is exhausted.
func decodeAddressList(region []byte) ([]NetAddress, error) {
	var addrs []NetAddress
	r := newReader(region)
	for r.remaining() > 0 {
		a, err := decodeNetAddress(r)
		if err != nil {
			return nil, err
		}
		addrs = append(addrs, a)
	}
	return addrs, nil
}

func encodeAddressList(addrs []NetAddress) []byte {
	w := newWriter()
	for _, a := range addrs {
		a.encode(w)
	}
	return w.finish()
}
