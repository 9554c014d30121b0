// Package idn validates internationalized domain labels and converts them to
// their ASCII-compatible (A-label) form.
package idn

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mbland/eav/ops"
	"golang.org/x/net/idna"
	"golang.org/x/text/unicode/norm"
)

const (
	ErrConfig        = ops.SentinelError("unsupported IDN actions")
	ErrClosed        = ops.SentinelError("IDN context is closed")
	ErrInvalidUTF8   = ops.SentinelError("invalid UTF-8")
	ErrNotNormalized = ops.SentinelError("not in Unicode normalization form C")
	ErrLabelSplit    = ops.SentinelError("label contains a label separator")
)

// Actions selects the checks and mappings a Context applies.
type Actions uint

const (
	// ActionMapUTS46 applies the UTS #46 lookup mapping (case folding, width
	// mapping) before validation.
	ActionMapUTS46 Actions = 1 << iota

	// ActionNFC rejects input that isn't already in normalization form C.
	ActionNFC

	ActionBidi
	ActionContextJ
	ActionCheckHyphens
	ActionValidateLabels
	ActionStrictLDH
	ActionTransitional

	actionsEnd
)

const allActions = actionsEnd - 1

// DefaultActions rejects anything that would need mapping to be valid.
const DefaultActions = ActionNFC |
	ActionBidi |
	ActionContextJ |
	ActionCheckHyphens |
	ActionValidateLabels |
	ActionStrictLDH

// Context wraps an idna.Profile built from a set of Actions.
type Context struct {
	actions Actions
	profile *idna.Profile
	closed  bool
}

func New(actions Actions) (*Context, error) {
	if unknown := actions &^ allActions; unknown != 0 {
		return nil, fmt.Errorf("%w: %#x", ErrConfig, uint(unknown))
	} else if actions&ActionTransitional != 0 && actions&ActionMapUTS46 == 0 {
		return nil, fmt.Errorf(
			"%w: transitional processing requires UTS #46 mapping", ErrConfig,
		)
	}
	return &Context{actions, idna.New(actions.options()...), false}, nil
}

func (a Actions) options() []idna.Option {
	opts := []idna.Option{idna.VerifyDNSLength(true)}

	if a&ActionMapUTS46 != 0 {
		opts = append(opts, idna.MapForLookup())
	}
	if a&ActionTransitional != 0 {
		opts = append(opts, idna.Transitional(true))
	}
	if a&ActionBidi != 0 {
		opts = append(opts, idna.BidiRule())
	}
	if a&ActionValidateLabels != 0 {
		opts = append(opts, idna.ValidateLabels(true))
	}
	if a&ActionCheckHyphens != 0 {
		opts = append(opts, idna.CheckHyphens(true))
	}
	if a&ActionContextJ != 0 {
		opts = append(opts, idna.CheckJoiners(true))
	}
	if a&ActionStrictLDH != 0 {
		opts = append(opts, idna.StrictDomainName(true))
	}
	return opts
}

func (c *Context) Actions() Actions {
	return c.actions
}

// ValidateLabel checks a single label, which may be a U-label or an A-label,
// and returns its A-label form.
func (c *Context) ValidateLabel(label []byte) (string, error) {
	s, err := c.prepare(label)
	if err != nil {
		return "", err
	} else if strings.IndexByte(s, '.') >= 0 {
		return "", fmt.Errorf("%w: %q", ErrLabelSplit, s)
	}

	aLabel, err := c.profile.ToASCII(s)
	if err != nil {
		return "", err
	} else if strings.IndexByte(aLabel, '.') >= 0 {
		// UTS #46 mapping turns ideographic full stops into dots.
		return "", fmt.Errorf("%w: %q", ErrLabelSplit, s)
	}
	return aLabel, nil
}

// ValidateDomain checks a complete domain, applying the rules that span
// labels, and returns its A-label form.
func (c *Context) ValidateDomain(domain []byte) (string, error) {
	s, err := c.prepare(domain)
	if err != nil {
		return "", err
	}
	return c.profile.ToASCII(s)
}

// ToUnicode returns the U-label form of an A-label domain.
func (c *Context) ToUnicode(domain string) (string, error) {
	if c.closed {
		return "", ErrClosed
	}
	return c.profile.ToUnicode(domain)
}

func (c *Context) prepare(input []byte) (string, error) {
	if c.closed {
		return "", ErrClosed
	} else if !utf8.Valid(input) {
		return "", fmt.Errorf("%w: %q", ErrInvalidUTF8, input)
	} else if c.actions&ActionNFC != 0 && !norm.NFC.IsNormal(input) {
		return "", fmt.Errorf("%w: %q", ErrNotNormalized, input)
	}
	return string(input), nil
}

// Close releases the Context. Every method except Close returns ErrClosed
// afterwards.
func (c *Context) Close() error {
	if c.closed {
		return ErrClosed
	}
	c.closed = true
	return nil
}
