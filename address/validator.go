package address

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/mbland/eav/idn"
	"github.com/mbland/eav/tld"
)

// IDNBridge converts and checks internationalized domain labels. The
// Validator only distinguishes success from failure.
type IDNBridge interface {
	ValidateLabel(label []byte) (string, error)
	ValidateDomain(domain []byte) (string, error)
	Close() error
}

// IDNFactory creates the IDNBridge a Validator owns while UTF-8 is enabled.
type IDNFactory func(actions idn.Actions) (IDNBridge, error)

func newIDNContext(actions idn.Actions) (IDNBridge, error) {
	ctx, err := idn.New(actions)
	if err != nil {
		return nil, err
	}
	return ctx, nil
}

type Config struct {
	RFC      RFC
	AllowTLD tld.Category
	UTF8     bool
	TLDCheck bool

	IDNActions idn.Actions

	// NewIDN defaults to creating an *idn.Context.
	NewIDN IDNFactory
}

// DefaultAllowTLD accepts every registered top-level domain outside of the
// reserved test names.
const DefaultAllowTLD = tld.CountryCode |
	tld.Generic |
	tld.GenericRestricted |
	tld.Infrastructure |
	tld.Sponsored

func DefaultConfig() Config {
	return Config{
		RFC:        RFC6531,
		AllowTLD:   DefaultAllowTLD,
		UTF8:       true,
		TLDCheck:   true,
		IDNActions: idn.DefaultActions,
	}
}

// SetupError reports why Setup failed. It matches the sentinel Diagnostic
// of the same Kind under errors.Is.
type SetupError struct {
	Kind Kind
	Err  error
}

func (e *SetupError) Error() string {
	return e.Kind.Text() + ": " + e.Err.Error()
}

func (e *SetupError) Unwrap() error {
	return e.Err
}

func (e *SetupError) Is(target error) bool {
	t, ok := target.(*Diagnostic)
	return ok && t.Kind == e.Kind
}

type validatorState int

const (
	stateNew validatorState = iota
	stateReady
	stateClosed
)

// Validator checks addresses against the grammar selected by its Config.
//
// After Setup succeeds, Validate may be called from multiple goroutines. The
// IDN bridge is released exactly once by Close.
type Validator struct {
	cfg       Config
	state     validatorState
	local     localPartGrammar
	domain    domainGrammar
	idn       IDNBridge
	last      atomic.Pointer[Diagnostic]
	closeOnce sync.Once
	closeErr  error
}

func New(cfg Config) *Validator {
	return &Validator{cfg: cfg}
}

// Open creates a Validator and calls Setup on it.
func Open(cfg Config) (*Validator, error) {
	v := New(cfg)
	if err := v.Setup(); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *Validator) Config() Config {
	return v.cfg
}

// Setup selects the grammars and acquires the IDN bridge if UTF-8 is
// enabled. Calling it again after success is a no-op.
func (v *Validator) Setup() error {
	switch v.state {
	case stateReady:
		return nil
	case stateClosed:
		panic("address: Setup called on a closed Validator")
	}

	local, ok := localGrammarFor(v.cfg.RFC, v.cfg.UTF8)
	if !ok {
		err := fmt.Errorf("RFC selection %s is not supported", v.cfg.RFC)
		return &SetupError{KindInvalidRFC, err}
	}

	var policy *tldPolicy
	if v.cfg.TLDCheck {
		policy = &tldPolicy{v.cfg.AllowTLD}
	}

	if !v.cfg.UTF8 {
		v.local, v.domain = local, asciiDomain{policy}
		v.state = stateReady
		return nil
	}

	newIDN := v.cfg.NewIDN
	if newIDN == nil {
		newIDN = newIDNContext
	}

	bridge, err := newIDN(v.cfg.IDNActions)
	if err != nil {
		kind := KindIDNInitFail
		if errors.Is(err, idn.ErrConfig) {
			kind = KindIDNConfFail
		}
		return &SetupError{kind, err}
	}

	v.local, v.domain, v.idn = local, utf8Domain{bridge, policy}, bridge
	v.state = stateReady
	return nil
}

// Validate returns nil if email conforms to the configured grammar, or the
// *Diagnostic describing the first violation. It panics if Setup hasn't
// succeeded or the Validator has been closed.
func (v *Validator) Validate(email []byte) error {
	switch v.state {
	case stateNew:
		panic("address: Validate called before Setup")
	case stateClosed:
		panic("address: Validate called on a closed Validator")
	}

	d := v.validate(newView(email))
	v.last.Store(d)
	return asError(d)
}

func (v *Validator) ValidateString(email string) error {
	return v.Validate([]byte(email))
}

// LastError returns the text of the diagnostic from the most recent call to
// Validate, or "" if that call succeeded or Validate hasn't been called.
func (v *Validator) LastError() string {
	if d := v.last.Load(); d != nil {
		return d.Error()
	}
	return ""
}

// Close releases the IDN bridge, if any. Subsequent calls return the result
// of the first.
func (v *Validator) Close() error {
	v.closeOnce.Do(func() {
		if v.idn != nil {
			v.closeErr = v.idn.Close()
			v.idn = nil
		}
		v.state = stateClosed
	})
	return v.closeErr
}

func (v *Validator) validate(email View) *Diagnostic {
	if email.Empty() {
		return diagnose(KindEmpty, 0)
	} else if d := v.prescan(email); d != nil {
		return d
	}

	local, domain, d := v.split(email)
	if d != nil {
		return d
	} else if d = v.local.validateLocal(local); d != nil {
		return d
	}
	return v.domain.validateDomain(domain)
}

func (v *Validator) prescan(email View) *Diagnostic {
	for i := 0; i != email.Len(); i++ {
		c := email.At(i)

		if v.local.forbidsCtrl(c) {
			return diagnose(KindCtrlChar, i)
		} else if c >= 0x80 && !v.cfg.UTF8 {
			return diagnose(KindNotASCII, i)
		}
	}
	return nil
}

// split divides email at the rightmost '@' that isn't inside a quoted string
// or, for grammars that allow them, a comment. A quote or comment left open
// after that '@' belongs to the domain, which rejects it.
func (v *Validator) split(email View) (local, domain View, d *Diagnostic) {
	comments := v.local.allowsComments()
	n := email.Len()
	at, quoteAt, commentAt, depth := -1, -1, -1, 0

	for i := 0; i < n; i++ {
		c := email.At(i)

		switch {
		case quoteAt >= 0:
			if c == '\\' {
				i++
			} else if c == '"' {
				quoteAt = -1
			}
		case depth != 0:
			if c == '\\' {
				i++
			} else if c == '(' {
				depth++
			} else if c == ')' {
				depth--
			}
		case c == '"':
			quoteAt = i
		case c == '(' && comments:
			commentAt, depth = i, 1
		case c == '@':
			at = i
		}
	}

	if quoteAt >= 0 && at < 0 {
		d = diagnose(KindLocalMisplacedQuote, quoteAt)
	} else if depth != 0 && at < 0 {
		d = diagnose(KindSpecial, commentAt)
	} else if at < 0 || at == n-1 {
		d = diagnose(KindEmailNoDomain, n)
	} else {
		local, domain = email.Slice(0, at), email.Slice(at+1, n)
	}
	return
}

func asError(d *Diagnostic) error {
	if d == nil {
		return nil
	}
	return d
}

// IsLocalPart checks localPart alone against the grammar for rfc.
func IsLocalPart(rfc RFC, utf8 bool, localPart string) error {
	grammar, ok := localGrammarFor(rfc, utf8)
	if !ok {
		return &SetupError{
			KindInvalidRFC, fmt.Errorf("RFC selection %s is not supported", rfc),
		}
	}

	local := newView([]byte(localPart))
	for i := 0; i != local.Len(); i++ {
		if grammar.forbidsCtrl(local.At(i)) {
			return diagnose(KindCtrlChar, i)
		}
	}
	return asError(grammar.validateLocal(local))
}

// IsIPAddr checks a bracketed domain literal such as "[192.168.0.1]" or
// "[IPv6:2001:db8::1]".
func IsIPAddr(literal string) error {
	return asError(validateIPLiteral(newView([]byte(literal))))
}

func IsIPv4(addr string) bool {
	return parseIPv4([]byte(addr))
}

func IsIPv6(addr string) bool {
	return parseIPv6([]byte(addr))
}

// IsASCIIDomain applies the domain rules without IDN support or TLD checks.
func IsASCIIDomain(domain string) error {
	return asError(checkDomain(newView([]byte(domain)), nil, nil))
}
