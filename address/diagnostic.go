package address

import (
	"errors"
	"fmt"
)

// Kind identifies the first rule an address violated.
//
//go:generate go run golang.org/x/tools/cmd/stringer -type=Kind -trimprefix=Kind
type Kind int

const (
	KindNone Kind = iota

	// Setup failures. Validate must not be called after any of these.
	KindIDNInitFail
	KindIDNConfFail
	KindInvalidRFC

	// Structural failures, detected before or independent of the grammar.
	KindEmpty
	KindIDNError
	KindNotASCII
	KindSpecial
	KindCtrlChar

	KindLocalMisplacedQuote
	KindLocalSpecial
	KindLocalUnquoted
	KindLocalTooManyDots
	KindLocalUnquotedFWS
	KindLocalInvalidUTF8

	KindDomainLabelTooLong
	KindDomainMisplacedDelimiter
	KindDomainMisplacedHyphen
	KindDomainInvalidChar
	KindDomainTooLong
	KindDomainNumeric
	KindDomainNotFQDN
	KindEmailNoDomain
	KindLocalTooLong
	KindInvalidIPAddr
	KindNoPairedBracket
	KindTLDNotAllowed
)

var kindText = [...]string{
	KindNone:                     "no error",
	KindIDNInitFail:              "failed to initialize the IDN context",
	KindIDNConfFail:              "failed to configure the IDN context",
	KindInvalidRFC:               "unknown RFC selection",
	KindEmpty:                    "empty email address",
	KindIDNError:                 "invalid internationalized domain",
	KindNotASCII:                 "non-ASCII character without UTF-8 support",
	KindSpecial:                  "unbalanced comment parenthesis",
	KindCtrlChar:                 "forbidden control character",
	KindLocalMisplacedQuote:      "misplaced or unterminated quote in local-part",
	KindLocalSpecial:             "special character must be quoted in local-part",
	KindLocalUnquoted:            "escape outside a quoted string in local-part",
	KindLocalTooManyDots:         "leading, trailing, or consecutive dots in local-part",
	KindLocalUnquotedFWS:         "unquoted whitespace in local-part",
	KindLocalInvalidUTF8:         "invalid UTF-8 sequence in local-part",
	KindDomainLabelTooLong:       "domain label exceeds 63 octets",
	KindDomainMisplacedDelimiter: "leading, trailing, or consecutive dots in domain",
	KindDomainMisplacedHyphen:    "domain label begins or ends with a hyphen",
	KindDomainInvalidChar:        "invalid character in domain",
	KindDomainTooLong:            "domain exceeds 253 octets",
	KindDomainNumeric:            "top-level domain is all-numeric",
	KindDomainNotFQDN:            "domain is not fully qualified",
	KindEmailNoDomain:            "email address has no domain",
	KindLocalTooLong:             "local-part exceeds 64 octets",
	KindInvalidIPAddr:            "invalid IP address literal",
	KindNoPairedBracket:          "IP address literal is missing a bracket",
	KindTLDNotAllowed:            "top-level domain is not registered or not allowed",
}

// Text returns the human readable description of the Kind.
func (k Kind) Text() string {
	if k < 0 || int(k) >= len(kindText) {
		return k.String()
	}
	return kindText[k]
}

// Diagnostic describes the first violation found while validating an
// address. Pos is the byte offset of the violation within the input passed
// to Validate, or -1 if the violation isn't tied to a position.
type Diagnostic struct {
	Kind Kind
	Pos  int
}

func (d *Diagnostic) Error() string {
	if d.Pos < 0 {
		return d.Kind.Text()
	}
	return fmt.Sprintf("%s (at offset %d)", d.Kind.Text(), d.Pos)
}

// Is matches any Diagnostic of the same Kind, so the exported sentinels
// work with errors.Is regardless of position.
func (d *Diagnostic) Is(target error) bool {
	t, ok := target.(*Diagnostic)
	return ok && t.Kind == d.Kind
}

func diagnose(kind Kind, pos int) *Diagnostic {
	return &Diagnostic{kind, pos}
}

func sentinel(kind Kind) *Diagnostic {
	return &Diagnostic{kind, -1}
}

// Sentinel diagnostics for use with errors.Is.
var (
	ErrIDNInitFail              = sentinel(KindIDNInitFail)
	ErrIDNConfFail              = sentinel(KindIDNConfFail)
	ErrInvalidRFC               = sentinel(KindInvalidRFC)
	ErrEmpty                    = sentinel(KindEmpty)
	ErrIDNError                 = sentinel(KindIDNError)
	ErrNotASCII                 = sentinel(KindNotASCII)
	ErrSpecial                  = sentinel(KindSpecial)
	ErrCtrlChar                 = sentinel(KindCtrlChar)
	ErrLocalMisplacedQuote      = sentinel(KindLocalMisplacedQuote)
	ErrLocalSpecial             = sentinel(KindLocalSpecial)
	ErrLocalUnquoted            = sentinel(KindLocalUnquoted)
	ErrLocalTooManyDots         = sentinel(KindLocalTooManyDots)
	ErrLocalUnquotedFWS         = sentinel(KindLocalUnquotedFWS)
	ErrLocalInvalidUTF8         = sentinel(KindLocalInvalidUTF8)
	ErrDomainLabelTooLong       = sentinel(KindDomainLabelTooLong)
	ErrDomainMisplacedDelimiter = sentinel(KindDomainMisplacedDelimiter)
	ErrDomainMisplacedHyphen    = sentinel(KindDomainMisplacedHyphen)
	ErrDomainInvalidChar        = sentinel(KindDomainInvalidChar)
	ErrDomainTooLong            = sentinel(KindDomainTooLong)
	ErrDomainNumeric            = sentinel(KindDomainNumeric)
	ErrDomainNotFQDN            = sentinel(KindDomainNotFQDN)
	ErrEmailNoDomain            = sentinel(KindEmailNoDomain)
	ErrLocalTooLong             = sentinel(KindLocalTooLong)
	ErrInvalidIPAddr            = sentinel(KindInvalidIPAddr)
	ErrNoPairedBracket          = sentinel(KindNoPairedBracket)
	ErrTLDNotAllowed            = sentinel(KindTLDNotAllowed)
)

// KindOf extracts the Kind from an error returned by this package. It
// returns KindNone for nil and for errors that aren't Diagnostics.
func KindOf(err error) Kind {
	var d *Diagnostic
	var se *SetupError

	if errors.As(err, &d) {
		return d.Kind
	} else if errors.As(err, &se) {
		return se.Kind
	}
	return KindNone
}
