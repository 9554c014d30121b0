// Package tld classifies top-level domain labels by IANA category.
package tld

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mbland/eav/ops"
)

const ErrUnknownCategory = ops.SentinelError("unknown TLD category")

// Category is a set of TLD classifications. A label may belong to more than
// one category; a Category used as an allow-mask accepts a label if the two
// sets intersect.
type Category uint

const (
	Invalid Category = 1 << (iota + 1)
	NotAssigned
	CountryCode
	Generic
	GenericRestricted
	Infrastructure
	Sponsored
	Test
)

// All contains every defined category.
const All = Invalid |
	NotAssigned |
	CountryCode |
	Generic |
	GenericRestricted |
	Infrastructure |
	Sponsored |
	Test

var categoryNames = []struct {
	cat  Category
	name string
}{
	{Invalid, "invalid"},
	{NotAssigned, "not-assigned"},
	{CountryCode, "country-code"},
	{Generic, "generic"},
	{GenericRestricted, "generic-restricted"},
	{Infrastructure, "infrastructure"},
	{Sponsored, "sponsored"},
	{Test, "test"},
}

// Allows reports whether c and mask share at least one category.
func (c Category) Allows(mask Category) bool {
	return c&mask != 0
}

func (c Category) String() string {
	if c == 0 {
		return "none"
	}

	names := make([]string, 0, len(categoryNames))
	for _, cn := range categoryNames {
		if c&cn.cat != 0 {
			names = append(names, cn.name)
		}
	}
	if unknown := c &^ All; unknown != 0 {
		names = append(names, fmt.Sprintf("Category(%#x)", uint(unknown)))
	}
	return strings.Join(names, "|")
}

// ParseCategory returns the Category for a single name as produced by
// String. Matching ignores case and surrounding space.
func ParseCategory(name string) (Category, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	for _, cn := range categoryNames {
		if name == cn.name {
			return cn.cat, nil
		}
	}
	if name == "all" {
		return All, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
}

// ParseMask parses a list of category names separated by commas or '|'.
func ParseMask(names string) (Category, error) {
	var mask Category
	var errs []error

	fields := strings.FieldsFunc(names, func(r rune) bool {
		return r == ',' || r == '|'
	})
	for _, name := range fields {
		if cat, err := ParseCategory(name); err != nil {
			errs = append(errs, err)
		} else {
			mask |= cat
		}
	}

	if len(errs) != 0 {
		return 0, fmt.Errorf(
			"invalid TLD category mask %q: %w", names, errors.Join(errs...),
		)
	} else if mask == 0 {
		return 0, fmt.Errorf("%w: empty mask %q", ErrUnknownCategory, names)
	}
	return mask, nil
}
