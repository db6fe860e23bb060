package cond

import (
	"encoding/binary"
	"net/netip"
	"regexp"
	"strconv"

	"github.com/roach88/sqlcond/internal/ir"
)

// Prefix lengths a bare address is expanded to, besides /32. Fixed policy,
// not derived from the input.
const (
	minContainingPrefix = 24
	maxContainingPrefix = 30
)

var (
	addressShape = regexp.MustCompile(`^\d+\.\d+\.\d+\.\d+$`)
	networkShape = regexp.MustCompile(`^((\d+\.\d+\.\d+)\.\d+)/(\d+)$`)
)

// FindIP matches the forms an IPv4 address or network may have been stored
// in. It returns the zero Condition when value is not a dotted-quad string,
// so callers can pick their own fallback.
//
// A bare address A.B.C.D matches itself, A.B.C.D/32 and each containing
// network from /24 to /30:
//
//	FindIP("ip", "192.0.2.123")
//	// ip IN (?,?,?,?,?,?,?,?,?) [192.0.2.123 192.0.2.123/32 192.0.2.0/24 ... 192.0.2.120/30]
//
// A network matches by prefix length:
//
//	/24     LIKE on the first three octets: "192.0.2.%"
//	/25-/31 the literal plus every host address in the block
//	/32     the literal plus the bare address
//
// Other prefix lengths have no expansion and give the zero Condition.
func FindIP(column string, value any) Condition {
	s, ok := ir.Of(value).(ir.String)
	if !ok {
		return Condition{}
	}
	str := string(s)

	if addressShape.MatchString(str) {
		return findAddress(column, str)
	}
	if m := networkShape.FindStringSubmatch(str); m != nil {
		return findNetwork(column, str, m[1], m[2], m[3])
	}
	return Condition{}
}

func findAddress(column, literal string) Condition {
	addr, err := netip.ParseAddr(literal)
	if err != nil || !addr.Is4() {
		return Condition{}
	}

	args := make([]any, 0, 2+maxContainingPrefix-minContainingPrefix+1)
	args = append(args, literal, literal+"/32")
	for bits := minContainingPrefix; bits <= maxContainingPrefix; bits++ {
		args = append(args, netip.PrefixFrom(addr, bits).Masked().String())
	}
	return inList(column, args)
}

func findNetwork(column, literal, address, firstThree, bitsText string) Condition {
	// The length is read as a decimal number, so "/029" is /29.
	bits, err := strconv.Atoi(bitsText)
	if err != nil || bits > 32 {
		return Condition{}
	}
	addr, err := netip.ParseAddr(address)
	if err != nil || !addr.Is4() {
		return Condition{}
	}
	prefix := netip.PrefixFrom(addr, bits)

	switch {
	case bits == 24:
		return Condition{Template: column + " LIKE ?", Args: []any{firstThree + ".%"}}
	case bits >= 25 && bits <= 31:
		args := []any{literal}
		for _, host := range hosts(prefix) {
			args = append(args, host.String())
		}
		return inList(column, args)
	case bits == 32:
		return inList(column, []any{literal, address})
	}
	return Condition{}
}

// hosts lists every address in prefix, network address first.
func hosts(prefix netip.Prefix) []netip.Addr {
	base4 := prefix.Masked().Addr().As4()
	base := uint64(binary.BigEndian.Uint32(base4[:]))
	size := uint64(1) << (32 - prefix.Bits())

	out := make([]netip.Addr, 0, size)
	for n := base; n < base+size; n++ {
		var a [4]byte
		binary.BigEndian.PutUint32(a[:], uint32(n))
		out = append(out, netip.AddrFrom4(a))
	}
	return out
}
