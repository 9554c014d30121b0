package address

import "strings"

const ipv6Tag = "IPv6:"

// isIPLiteral reports whether domain should be handled as an address
// literal. Either bracket is enough so a missing partner can be reported as
// such rather than as an invalid domain character.
func isIPLiteral(domain View) bool {
	return !domain.Empty() && (domain.First() == '[' || domain.Last() == ']')
}

// validateIPLiteral checks a domain literal, brackets included.
func validateIPLiteral(literal View) *Diagnostic {
	n := literal.Len()

	if n < 2 || literal.First() != '[' {
		return diagnose(KindNoPairedBracket, literal.Offset())
	} else if literal.Last() != ']' {
		return diagnose(KindNoPairedBracket, literal.Offset()+n-1)
	}

	inner := literal.Slice(1, n-1)
	for i := 0; i != inner.Len(); i++ {
		if c := inner.At(i); c == '[' || c == ']' {
			return diagnose(KindNoPairedBracket, inner.Offset()+i)
		}
	}

	if !validIPAddr(inner.Bytes()) {
		return diagnose(KindInvalidIPAddr, inner.Offset())
	}
	return nil
}

// validIPAddr accepts an IPv4 dotted quad, an untagged IPv6 address, or an
// IPv6 address carrying the RFC 5321 "IPv6:" tag.
func validIPAddr(addr []byte) bool {
	if len(addr) >= len(ipv6Tag) &&
		strings.EqualFold(string(addr[:len(ipv6Tag)]), ipv6Tag) {
		return parseIPv6(addr[len(ipv6Tag):])
	}
	for _, c := range addr {
		if c == ':' {
			return parseIPv6(addr)
		}
	}
	return parseIPv4(addr)
}

func parseIPv4(addr []byte) bool {
	octets := 0

	for i := 0; i < len(addr); {
		if octets == 4 {
			return false
		} else if octets != 0 {
			if addr[i] != '.' {
				return false
			}
			i++
		}

		begin, value := i, 0
		for ; i < len(addr) && isDigit(addr[i]); i++ {
			if value = value*10 + int(addr[i]-'0'); value > 255 {
				return false
			}
		}

		digits := i - begin
		if digits == 0 || (digits > 1 && addr[begin] == '0') {
			return false
		}
		octets++
	}
	return octets == 4
}

func parseIPv6(addr []byte) bool {
	if len(addr) == 0 {
		return false
	}

	groups := 0
	compressed := false
	i := 0

	if addr[0] == ':' {
		if len(addr) < 2 || addr[1] != ':' {
			return false
		}
		compressed = true
		i = 2
	}

	for i < len(addr) {
		begin := i
		for i < len(addr) && isHexDigit(addr[i]) && i-begin < 4 {
			i++
		}

		if i < len(addr) && addr[i] == '.' {
			// An embedded IPv4 address occupies the final two groups.
			if !parseIPv4(addr[begin:]) {
				return false
			}
			groups += 2
			i = len(addr)
			break
		} else if i == begin {
			return false
		}
		groups++

		if i == len(addr) {
			break
		} else if addr[i] != ':' {
			return false
		}

		i++
		if i < len(addr) && addr[i] == ':' {
			if compressed {
				return false
			}
			compressed = true
			i++
		} else if i == len(addr) {
			return false
		}
	}

	if compressed {
		return groups <= 7
	}
	return groups == 8
}
