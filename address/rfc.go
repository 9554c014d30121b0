package address

import (
	"fmt"
	"strconv"
	"strings"
)

// RFC selects the grammar used for the local-part and the strictness of the
// control character checks.
type RFC int

const (
	RFC822 RFC = iota
	RFC5321
	RFC5322
	RFC6531
)

var rfcNumbers = map[RFC]int{
	RFC822:  822,
	RFC5321: 5321,
	RFC5322: 5322,
	RFC6531: 6531,
}

func (r RFC) Valid() bool {
	_, ok := rfcNumbers[r]
	return ok
}

func (r RFC) String() string {
	if n, ok := rfcNumbers[r]; ok {
		return "RFC" + strconv.Itoa(n)
	}
	return "RFC(" + strconv.Itoa(int(r)) + ")"
}

// ParseRFC accepts "5322", "rfc5322", or "RFC 5322" and the like.
func ParseRFC(s string) (RFC, error) {
	number := strings.TrimSpace(strings.ToLower(s))
	number = strings.TrimSpace(strings.TrimPrefix(number, "rfc"))

	if n, err := strconv.Atoi(number); err == nil {
		for rfc, rfcNumber := range rfcNumbers {
			if n == rfcNumber {
				return rfc, nil
			}
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrInvalidRFC, s)
}
