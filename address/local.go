package address

import "unicode/utf8"

const maxLocalPartLen = 64

// localPartGrammar is implemented by one type per supported RFC. Setup picks
// the implementation once; Validate never branches on the RFC number.
type localPartGrammar interface {
	forbidsCtrl(c byte) bool
	allowsComments() bool
	validateLocal(local View) *Diagnostic
}

type rfc822Local struct{}

func (rfc822Local) forbidsCtrl(c byte) bool { return rfc822ForbidsCtrl(c) }
func (rfc822Local) allowsComments() bool    { return true }

func (rfc822Local) validateLocal(local View) *Diagnostic {
	return scanLocalPart(local, &rfc822Classes)
}

type rfc5321Local struct{}

func (rfc5321Local) forbidsCtrl(c byte) bool { return rfc5321ForbidsCtrl(c) }
func (rfc5321Local) allowsComments() bool    { return false }

func (rfc5321Local) validateLocal(local View) *Diagnostic {
	return scanLocalPart(local, &rfc5321Classes)
}

type rfc5322Local struct{}

func (rfc5322Local) forbidsCtrl(c byte) bool { return rfc5322ForbidsCtrl(c) }
func (rfc5322Local) allowsComments() bool    { return true }

func (rfc5322Local) validateLocal(local View) *Diagnostic {
	return scanLocalPart(local, &rfc5322Classes)
}

// rfc6531Local behaves exactly like rfc5322Local unless utf8 is set.
type rfc6531Local struct {
	utf8 bool
}

func (rfc6531Local) forbidsCtrl(c byte) bool { return rfc5322ForbidsCtrl(c) }
func (rfc6531Local) allowsComments() bool    { return true }

func (g rfc6531Local) validateLocal(local View) *Diagnostic {
	if g.utf8 {
		return scanLocalPart(local, &rfc6531Classes)
	}
	return scanLocalPart(local, &rfc5322Classes)
}

func localGrammarFor(rfc RFC, utf8 bool) (localPartGrammar, bool) {
	switch rfc {
	case RFC822:
		return rfc822Local{}, true
	case RFC5321:
		return rfc5321Local{}, true
	case RFC5322:
		return rfc5322Local{}, true
	case RFC6531:
		return rfc6531Local{utf8}, true
	}
	return nil, false
}

// scanLocalPart validates a local-part as a sequence of dot-separated words,
// each an atom or a quoted string, applying the character classes and
// whitespace policy in cc.
func scanLocalPart(local View, cc *charClasses) *Diagnostic {
	n := local.Len()
	if n == 0 {
		return diagnose(KindEmpty, local.Offset())
	} else if n > maxLocalPartLen {
		return diagnose(KindLocalTooLong, local.Offset()+maxLocalPartLen)
	} else if d := checkLocalASCII(local, cc); d != nil {
		return d
	}

	s := localScanner{local: local, cc: cc, trailingAt: -1}
	for s.i < n {
		if d := s.step(); d != nil {
			return d
		}
	}
	return s.finish()
}

func checkLocalASCII(local View, cc *charClasses) *Diagnostic {
	if cc.utf8 {
		return nil
	}
	for i := 0; i != local.Len(); i++ {
		if local.At(i) >= utf8.RuneSelf {
			return diagnose(KindNotASCII, local.Offset()+i)
		}
	}
	return nil
}

type localScanner struct {
	local View
	cc    *charClasses
	i     int
	words int

	// needDot is set after a word; only a dot, whitespace (where permitted),
	// or the end of the local-part may follow.
	needDot bool
	afterDot bool

	// separated is set when whitespace or a comment follows the last word.
	separated bool

	// trailingAt is the position of whitespace or a comment after the last
	// word under fwsEdges; anything but more CFWS after it is an error.
	trailingAt int
}

func (s *localScanner) pos(i int) int {
	return s.local.Offset() + i
}

func (s *localScanner) step() *Diagnostic {
	c := s.local.At(s.i)

	if isWSP(c) || c == '(' {
		return s.cfws(c)
	} else if c == ')' {
		return diagnose(KindSpecial, s.pos(s.i))
	} else if s.trailingAt >= 0 {
		return diagnose(KindLocalUnquotedFWS, s.pos(s.trailingAt))
	}

	switch {
	case c == '.':
		if !s.needDot {
			return diagnose(KindLocalTooManyDots, s.pos(s.i))
		}
		s.needDot, s.afterDot, s.separated = false, true, false
		s.i++
		return nil
	case c == '"':
		if !s.mayStartWord() {
			return diagnose(KindLocalMisplacedQuote, s.pos(s.i))
		}
		return s.word(s.quoted)
	case c == '\\':
		return diagnose(KindLocalUnquoted, s.pos(s.i))
	case isAtext(c) || (c >= utf8.RuneSelf && s.cc.utf8):
		if !s.mayStartWord() {
			return diagnose(KindLocalMisplacedQuote, s.pos(s.i-1))
		}
		return s.word(s.atom)
	case isCtrl(c):
		return diagnose(KindCtrlChar, s.pos(s.i))
	}
	return diagnose(KindLocalSpecial, s.pos(s.i))
}

// mayStartWord reports whether a new word may begin at the current
// position. Only RFC 822 lets whitespace or a comment stand in for the dot.
func (s *localScanner) mayStartWord() bool {
	return !s.needDot || (s.cc.fws == fwsAnywhere && s.separated)
}

func (s *localScanner) word(scan func() *Diagnostic) *Diagnostic {
	if d := scan(); d != nil {
		return d
	}
	s.words++
	s.needDot, s.afterDot, s.separated = true, false, false
	return nil
}

func (s *localScanner) cfws(c byte) *Diagnostic {
	start := s.i

	switch s.cc.fws {
	case fwsNever:
		if c == '(' {
			return diagnose(KindLocalSpecial, s.pos(start))
		}
		return diagnose(KindLocalUnquotedFWS, s.pos(start))
	case fwsEdges:
		if s.afterDot {
			return diagnose(KindLocalUnquotedFWS, s.pos(start))
		} else if s.words != 0 && s.trailingAt < 0 {
			s.trailingAt = start
		}
	}

	for s.i < s.local.Len() {
		if c = s.local.At(s.i); isWSP(c) {
			s.i++
		} else if c == '(' {
			if d := s.comment(); d != nil {
				return d
			}
		} else {
			break
		}
	}
	s.separated = s.words != 0
	return nil
}

// comment skips a possibly nested comment starting at the current '('.
func (s *localScanner) comment() *Diagnostic {
	start := s.i
	depth := 0

	for s.i < s.local.Len() {
		switch c := s.local.At(s.i); {
		case c == '(':
			depth++
		case c == ')':
			if depth--; depth == 0 {
				s.i++
				return nil
			}
		case c == '\\':
			s.i++
		case c >= utf8.RuneSelf:
			if d := s.utf8Sequence(); d != nil {
				return d
			}
			continue
		}
		s.i++
	}
	return diagnose(KindSpecial, s.pos(start))
}

func (s *localScanner) atom() *Diagnostic {
	for s.i < s.local.Len() {
		c := s.local.At(s.i)

		if isAtext(c) {
			s.i++
		} else if c >= utf8.RuneSelf && s.cc.utf8 {
			if d := s.utf8Sequence(); d != nil {
				return d
			}
		} else {
			break
		}
	}
	return nil
}

func (s *localScanner) quoted() *Diagnostic {
	start := s.i
	n := s.local.Len()

	for s.i++; s.i < n; {
		c := s.local.At(s.i)

		switch {
		case c == '"':
			s.i++
			return nil
		case c == '\\':
			if s.i+1 == n {
				return diagnose(KindLocalMisplacedQuote, s.pos(start))
			}
			s.i++
			if d := s.quotedChar(s.cc.quotedPair); d != nil {
				return d
			}
		default:
			if d := s.quotedChar(s.cc.qtext); d != nil {
				return d
			}
		}
	}
	return diagnose(KindLocalMisplacedQuote, s.pos(start))
}

func (s *localScanner) quotedChar(allowed func(byte) bool) *Diagnostic {
	c := s.local.At(s.i)

	if c >= utf8.RuneSelf {
		if !s.cc.utf8 {
			return diagnose(KindNotASCII, s.pos(s.i))
		}
		return s.utf8Sequence()
	} else if !allowed(c) {
		return diagnose(KindCtrlChar, s.pos(s.i))
	}
	s.i++
	return nil
}

// utf8Sequence consumes one complete UTF-8 encoded code point.
func (s *localScanner) utf8Sequence() *Diagnostic {
	r, size := utf8.DecodeRune(s.local.Bytes()[s.i:])

	if r == utf8.RuneError && size <= 1 {
		return diagnose(KindLocalInvalidUTF8, s.pos(s.i))
	}
	s.i += size
	return nil
}

func (s *localScanner) finish() *Diagnostic {
	if s.afterDot {
		return diagnose(KindLocalTooManyDots, s.pos(s.local.Len()-1))
	} else if s.words == 0 {
		return diagnose(KindEmpty, s.local.Offset())
	}
	return nil
}
