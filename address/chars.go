package address

// Single-byte predicates shared by every grammar. Each RFC composes a subset
// of these into a charClasses table, so the differences between grammars can
// be read off the tables below rather than out of the scanning code.

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// isAtext reports whether c belongs to the RFC 5322 atext production. The
// RFC 822 atom is the same set: every printable ASCII character that isn't
// a special or SPACE.
func isAtext(c byte) bool {
	if isAlpha(c) || isDigit(c) {
		return true
	}
	switch c {
	case '!', '#', '$', '%', '&', '\'', '*', '+', '-', '/', '=', '?', '^',
		'_', '`', '{', '|', '}', '~':
		return true
	}
	return false
}

// isSpecial reports whether c is one of the RFC 5322 specials.
func isSpecial(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', ':', ';', '@', '\\', ',', '.', '"':
		return true
	}
	return false
}

func isCtrl(c byte) bool {
	return c < 0x20 || c == 0x7f
}

func isWSP(c byte) bool {
	return c == ' ' || c == '\t'
}

func isVchar(c byte) bool {
	return c > 0x20 && c < 0x7f
}

func isLetDigHyp(c byte) bool {
	return isAlpha(c) || isDigit(c) || c == '-'
}

// fwsPolicy describes where folding whitespace and comments may appear
// outside of quoted strings.
type fwsPolicy int

const (
	fwsNever fwsPolicy = iota
	fwsEdges
	fwsAnywhere
)

type charClasses struct {
	qtext      func(c byte) bool
	quotedPair func(c byte) bool
	fws        fwsPolicy
	utf8       bool
}

// RFC 822: qtext is any CHAR except `"`, `\`, and CR. A quoted-pair may
// quote any CHAR. LWSP and comments may separate any two tokens.
var rfc822Classes = charClasses{
	qtext: func(c byte) bool {
		return c < 0x80 && c != '"' && c != '\\' && c != '\r'
	},
	quotedPair: func(c byte) bool { return c < 0x80 },
	fws:        fwsAnywhere,
}

// RFC 5321: qtextSMTP is %d32-33 / %d35-91 / %d93-126 and quoted-pairSMTP
// is `\` followed by %d32-126. No whitespace or comments outside quotes.
var rfc5321Classes = charClasses{
	qtext: func(c byte) bool {
		return c >= 0x20 && c < 0x7f && c != '"' && c != '\\'
	},
	quotedPair: func(c byte) bool { return c >= 0x20 && c < 0x7f },
	fws:        fwsNever,
}

// RFC 5322: qtext is %d33 / %d35-91 / %d93-126, with FWS permitted inside
// the quoted string. CFWS may only surround the local-part as a whole.
var rfc5322Classes = charClasses{
	qtext: func(c byte) bool {
		return (isVchar(c) && c != '"' && c != '\\') || isWSP(c)
	},
	quotedPair: func(c byte) bool { return isVchar(c) || isWSP(c) },
	fws:        fwsEdges,
}

// RFC 6531 extends the RFC 5322 atext, qtext, and quoted-pair productions
// with UTF8-non-ascii.
var rfc6531Classes = charClasses{
	qtext:      rfc5322Classes.qtext,
	quotedPair: rfc5322Classes.quotedPair,
	fws:        fwsEdges,
	utf8:       true,
}

// Control characters rejected before the address is split. RFC 822 leaves
// most controls legal inside quoted strings and comments.
func rfc822ForbidsCtrl(c byte) bool {
	return c == 0 || c == '\r' || c == '\n'
}

func rfc5321ForbidsCtrl(c byte) bool {
	return isCtrl(c)
}

func rfc5322ForbidsCtrl(c byte) bool {
	return isCtrl(c) && c != '\t'
}
