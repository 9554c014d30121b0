package tld

import (
	"strings"

	"golang.org/x/net/publicsuffix"
)

const maxLabelLen = 63

// Top-level domains by category, per the IANA root zone database. Generic
// TLDs not listed here are recognized through the public suffix list.
const (
	infrastructureTLDs = `arpa`

	genericRestrictedTLDs = `biz name pro`

	sponsoredTLDs = `aero asia cat coop edu gov int jobs mil mobi museum post
		tel travel xxx`

	genericTLDs = `com info net org app blog cloud club dev email live online
		page shop site space store tech top website xyz`

	testTLDs = `test example invalid localhost
		xn--kgbechtv xn--hgbk6aj7f53bba xn--0zwm56d xn--g6w251d
		xn--80akhbyknj4f xn--11b5bs3a9aj6g xn--jxalpdlp xn--9t4b11yi5a
		xn--deba0ad xn--zckzah xn--hlcj6aya9esc7a`

	countryCodeTLDs = `ac ad ae af ag ai al am ao aq ar as at au aw ax az
		ba bb bd be bf bg bh bi bj bm bn bo bq br bs bt bv bw by bz
		ca cc cd cf cg ch ci ck cl cm cn co cr cu cv cw cx cy cz
		de dj dk dm do dz ec ee eg er es et eu fi fj fk fm fo fr
		ga gb gd ge gf gg gh gi gl gm gn gp gq gr gs gt gu gw gy
		hk hm hn hr ht hu id ie il im in io iq ir is it je jm jo jp
		ke kg kh ki km kn kp kr kw ky kz la lb lc li lk lr ls lt lu lv ly
		ma mc md me mg mh mk ml mm mn mo mp mq mr ms mt mu mv mw mx my mz
		na nc ne nf ng ni nl no np nr nu nz om
		pa pe pf pg ph pk pl pm pn pr ps pt pw py qa re ro rs ru rw
		sa sb sc sd se sg sh si sj sk sl sm sn so sr ss st su sv sx sy sz
		tc td tf tg th tj tk tl tm tn to tr tt tv tw tz
		ua ug uk us uy uz va vc ve vg vi vn vu wf ws ye yt za zm zw
		xn--p1ai xn--j1amh xn--90ais xn--fiqs8s xn--fiqz9s xn--j6w193g
		xn--kprw13d xn--kpry57d xn--wgbh1c xn--mgbaam7a8h xn--mgberp4a5d4ar
		xn--3e0b707e xn--o3cw4h xn--h2brj9c xn--d1alf xn--e1a4c xn--node
		xn--qxam xn--y9a3aq xn--90a3ac xn--80ao21a xn--mgbtx2b xn--ygbi2ammx
		xn--wgbl6a xn--mgbc0a9azcg xn--lgbbat1ad8j xn--pgbs0dh xn--mgba3a4f16a
		xn--yfro4i67o xn--clchc0ea0b2g2a9gcd xn--fzc2c9e2c xn--xkc2al3hye2a
		xn--45brj9c xn--54b7fta0cc xn--mgbx4cd0ab xn--l1acc xn--mgbayh7gpa
		xn--mgbpl2fh xn--ogbpf8fl xn--mgb9awbf xn--mgbai9azgqp6j xn--4dbrk0ce`
)

var table = buildTable(map[Category]string{
	Infrastructure:    infrastructureTLDs,
	GenericRestricted: genericRestrictedTLDs,
	Sponsored:         sponsoredTLDs,
	Generic:           genericTLDs,
	Test:              testTLDs,
	CountryCode:       countryCodeTLDs,
})

func buildTable(lists map[Category]string) map[string]Category {
	t := map[string]Category{}

	for cat, list := range lists {
		for _, label := range strings.Fields(list) {
			t[label] |= cat
		}
	}
	return t
}

// Lookup returns the categories of a top-level domain label in A-label
// form. Case is ignored. Labels that aren't letter-digit-hyphen strings are
// Invalid; labels that aren't delegated in the root zone are NotAssigned.
func Lookup(label []byte) Category {
	var buf [maxLabelLen]byte

	if len(label) == 0 || len(label) > maxLabelLen {
		return Invalid
	}
	for i, c := range label {
		switch {
		case c >= 'A' && c <= 'Z':
			buf[i] = c + ('a' - 'A')
		case (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '-':
			buf[i] = c
		default:
			return Invalid
		}
	}

	lower := buf[:len(label)]
	if cat, ok := table[string(lower)]; ok {
		return cat
	}
	return lookupPublicSuffix(string(lower))
}

func LookupString(label string) Category {
	return Lookup([]byte(label))
}

// lookupPublicSuffix treats a label as a generic TLD if the ICANN section
// of the public suffix list names it as a suffix in its own right.
func lookupPublicSuffix(label string) Category {
	if suffix, icann := publicsuffix.PublicSuffix(label); icann && suffix == label {
		return Generic
	}
	return NotAssigned
}
