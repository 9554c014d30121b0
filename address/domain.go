package address

import (
	"bytes"

	"github.com/mbland/eav/tld"
)

const (
	maxDomainLen = 253
	maxLabelLen  = 63
	acePrefix    = "xn--"
)

// domainGrammar validates everything after the '@'. The ASCII and IDN
// variants differ only in how they treat non-ASCII and "xn--" labels.
type domainGrammar interface {
	validateDomain(domain View) *Diagnostic
}

type asciiDomain struct {
	tld *tldPolicy
}

func (g asciiDomain) validateDomain(domain View) *Diagnostic {
	return checkDomain(domain, nil, g.tld)
}

type utf8Domain struct {
	idn IDNBridge
	tld *tldPolicy
}

func (g utf8Domain) validateDomain(domain View) *Diagnostic {
	return checkDomain(domain, g.idn, g.tld)
}

// tldPolicy holds the FQDN and top-level domain requirements applied when
// TLD checking is enabled.
type tldPolicy struct {
	allow tld.Category
}

// check applies the policy to the final label. lastIDN holds its A-label if
// it went through the IDN bridge, or is empty if last is already ASCII.
func (p *tldPolicy) check(labels int, last View, lastIDN string) *Diagnostic {
	aLabel := last.Bytes()
	if lastIDN != "" {
		aLabel = []byte(lastIDN)
	}

	if labels < 2 {
		return diagnose(KindDomainNotFQDN, last.Offset())
	} else if allDigits(last) {
		return diagnose(KindDomainNumeric, last.Offset())
	} else if !tld.Lookup(aLabel).Allows(p.allow) {
		return diagnose(KindTLDNotAllowed, last.Offset())
	}
	return nil
}

func checkDomain(domain View, idn IDNBridge, policy *tldPolicy) *Diagnostic {
	if domain.Empty() {
		return diagnose(KindEmailNoDomain, domain.Offset())
	} else if isIPLiteral(domain) {
		return validateIPLiteral(domain)
	}

	ascii := domain.IsASCII()
	if ascii && domain.Len() > maxDomainLen {
		return diagnose(KindDomainTooLong, domain.Offset()+maxDomainLen)
	}

	var d *Diagnostic
	var last View
	var lastIDN string
	labels, total, internationalized := 0, 0, false

	domain.Labels(func(label View) bool {
		aLabel := ""

		if label.Empty() {
			d = diagnose(KindDomainMisplacedDelimiter, label.Offset())
		} else if idn != nil && needsIDN(label) {
			aLabel, d = checkIDNLabel(label, idn)
			internationalized = true
		} else {
			d = checkLDHLabel(label)
		}

		if d != nil {
			return false
		} else if aLabel != "" {
			total += len(aLabel)
		} else {
			total += label.Len()
		}
		labels++
		last, lastIDN = label, aLabel
		return true
	})

	if d != nil {
		return d
	} else if total += labels - 1; total > maxDomainLen {
		return diagnose(KindDomainTooLong, domain.Offset())
	} else if internationalized {
		if _, err := idn.ValidateDomain(domain.Bytes()); err != nil {
			return diagnose(KindIDNError, domain.Offset())
		}
	}

	if policy != nil {
		return policy.check(labels, last, lastIDN)
	}
	return nil
}

func needsIDN(label View) bool {
	if !label.IsASCII() {
		return true
	} else if label.Len() < len(acePrefix) {
		return false
	}
	prefix := label.Slice(0, len(acePrefix)).Bytes()
	return bytes.EqualFold(prefix, []byte(acePrefix))
}

// checkLDHLabel applies the letter-digit-hyphen rule to an ASCII label.
func checkLDHLabel(label View) *Diagnostic {
	n := label.Len()

	if n > maxLabelLen {
		return diagnose(KindDomainLabelTooLong, label.Offset()+maxLabelLen)
	}
	for i := 0; i != n; i++ {
		if c := label.At(i); c >= 0x80 {
			return diagnose(KindNotASCII, label.Offset()+i)
		} else if !isLetDigHyp(c) {
			return diagnose(KindDomainInvalidChar, label.Offset()+i)
		}
	}
	if label.First() == '-' {
		return diagnose(KindDomainMisplacedHyphen, label.Offset())
	} else if label.Last() == '-' {
		return diagnose(KindDomainMisplacedHyphen, label.Offset()+n-1)
	}
	return nil
}

// checkIDNLabel converts label to its A-label through the bridge, then holds
// the A-label to the same length and hyphen limits as any ASCII label.
func checkIDNLabel(label View, idn IDNBridge) (string, *Diagnostic) {
	aLabel, err := idn.ValidateLabel(label.Bytes())

	if err != nil ||
		len(aLabel) == 0 ||
		len(aLabel) > maxLabelLen ||
		aLabel[0] == '-' ||
		aLabel[len(aLabel)-1] == '-' {
		return "", diagnose(KindIDNError, label.Offset())
	}
	return aLabel, nil
}

func allDigits(label View) bool {
	for i := 0; i != label.Len(); i++ {
		if !isDigit(label.At(i)) {
			return false
		}
	}
	return !label.Empty()
}
