//go:build small_tests || all_tests

package address

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/mbland/eav/idn"
	"github.com/mbland/eav/testutils"
	"github.com/mbland/eav/tld"
	"gotest.tools/assert"
)

func newTestValidator(t *testing.T, cfg Config) *Validator {
	t.Helper()

	v := New(cfg)
	assert.NilError(t, v.Setup())
	t.Cleanup(func() { v.Close() })
	return v
}

func asciiConfig(rfc RFC) Config {
	cfg := DefaultConfig()
	cfg.RFC = rfc
	cfg.UTF8 = false
	return cfg
}

type addressCase struct {
	address string
	kind    Kind
	pos     int
}

func checkAddresses(t *testing.T, v *Validator, cases []addressCase) {
	t.Helper()

	for _, tc := range cases {
		err := v.ValidateString(tc.address)

		if tc.kind == KindNone {
			assert.NilError(t, err, tc.address)
		} else {
			assert.DeepEqual(t, &Diagnostic{tc.kind, tc.pos}, err)
		}
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, RFC6531, cfg.RFC)
	assert.Assert(t, cfg.UTF8)
	assert.Assert(t, cfg.TLDCheck)
	assert.Equal(t, idn.DefaultActions, cfg.IDNActions)
	assert.Assert(t, cfg.AllowTLD.Allows(tld.Generic))
	assert.Assert(t, cfg.AllowTLD.Allows(tld.CountryCode))
	assert.Assert(t, !cfg.AllowTLD.Allows(tld.Test|tld.NotAssigned|tld.Invalid))
}

func TestValidateWithDefaultConfig(t *testing.T) {
	v := newTestValidator(t, DefaultConfig())
	longLabel := strings.Repeat("a", 63)

	checkAddresses(t, v, []addressCase{
		{"user@example.com", KindNone, 0},
		{"first.last@example.co.uk", KindNone, 0},
		{"user@example.de", KindNone, 0},
		{"üser@example.com", KindNone, 0},
		{"user@münchen.de", KindNone, 0},
		{"user@xn--mnchen-3ya.de", KindNone, 0},
		{"пользователь@пример.рф", KindNone, 0},
		{`"a@b"@example.com`, KindNone, 0},
		{`"a b"@example.com`, KindNone, 0},
		{"user@[192.168.0.1]", KindNone, 0},
		{"user@[IPv6:2001:db8::1]", KindNone, 0},
		{"user@" + longLabel + ".com", KindNone, 0},

		{"", KindEmpty, 0},
		{"@example.com", KindEmpty, 0},
		{"user", KindEmailNoDomain, 4},
		{"user@", KindEmailNoDomain, 5},
		{"a@b@example.com", KindLocalSpecial, 1},
		{`"a@b@example.com`, KindLocalMisplacedQuote, 0},
		{"us\x00er@example.com", KindCtrlChar, 2},
		{"us\ner@example.com", KindCtrlChar, 2},
		{"a b@example.com", KindLocalUnquotedFWS, 1},
		{strings.Repeat("a", 65) + "@example.com", KindLocalTooLong, 64},
		{"user@localhost", KindDomainNotFQDN, 5},
		{"user@example.test", KindTLDNotAllowed, 13},
		{"user@example.zzzz", KindTLDNotAllowed, 13},
		{"user@123.456", KindDomainNumeric, 9},
		{"user@192.168.0.1", KindDomainNumeric, 15},
		{"user@exa_mple.com", KindDomainInvalidChar, 8},
		{`a@b"c.com`, KindDomainInvalidChar, 3},
		{"a@exa(mple.com", KindDomainInvalidChar, 5},
		{"user@-example.com", KindDomainMisplacedHyphen, 5},
		{"user@example-.com", KindDomainMisplacedHyphen, 12},
		{"user@example..com", KindDomainMisplacedDelimiter, 13},
		{"user@.example.com", KindDomainMisplacedDelimiter, 5},
		{"user@example.com.", KindDomainMisplacedDelimiter, 17},
		{"user@" + longLabel + "a.com", KindDomainLabelTooLong, 68},
		{"user@" + strings.Repeat(longLabel+".", 3) + longLabel,
			KindDomainTooLong, 258},
		{"user@[999.1.1.1]", KindInvalidIPAddr, 6},
		{"user@[192.168.0.1", KindNoPairedBracket, 16},
		{"user@192.168.0.1]", KindNoPairedBracket, 5},
		{"user@mu\u0308nchen.de", KindIDNError, 5},
	})
}

func TestValidateLocalPartLengthForEveryRFC(t *testing.T) {
	address := strings.Repeat("a", 65) + "@example.com"

	for _, rfc := range allRFCs {
		v := newTestValidator(t, asciiConfig(rfc))

		err := v.ValidateString(address)

		assert.DeepEqual(t, &Diagnostic{KindLocalTooLong, 64}, err)
	}
}

func TestValidateQuotesAndCommentsInDomainForEveryRFC(t *testing.T) {
	for _, rfc := range allRFCs {
		t.Run(rfc.String(), func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.RFC = rfc

			checkAddresses(t, newTestValidator(t, cfg), []addressCase{
				{`a@b"c.com`, KindDomainInvalidChar, 3},
				{`a@"`, KindDomainInvalidChar, 2},
				{`a@b"c@d.com`, KindDomainInvalidChar, 3},
				{"a@exa(mple.com", KindDomainInvalidChar, 5},
				{"a@example.com(", KindDomainInvalidChar, 13},
				{`"a@b@example.com`, KindLocalMisplacedQuote, 0},
			})
		})
	}
}

func TestValidateWhitespaceByRFC(t *testing.T) {
	for _, tc := range []struct {
		rfc      RFC
		unquoted Kind
	}{
		{RFC822, KindNone},
		{RFC5321, KindLocalUnquotedFWS},
		{RFC5322, KindLocalUnquotedFWS},
		{RFC6531, KindLocalUnquotedFWS},
	} {
		v := newTestValidator(t, asciiConfig(tc.rfc))

		assert.NilError(t, v.ValidateString(`"john doe"@example.com`))
		assert.Equal(
			t, tc.unquoted, KindOf(v.ValidateString("john doe@example.com")),
			tc.rfc.String(),
		)
	}
}

func TestValidateComments(t *testing.T) {
	t.Run("RFC822", func(t *testing.T) {
		checkAddresses(t, newTestValidator(t, asciiConfig(RFC822)),
			[]addressCase{
				{"user(comment)@example.com", KindNone, 0},
				{"user(at @ sign)@example.com", KindNone, 0},
				{"first.(comment)last@example.com", KindNone, 0},
				{"user(unterminated@example.com", KindSpecial, 4},
			})
	})

	t.Run("RFC5321", func(t *testing.T) {
		checkAddresses(t, newTestValidator(t, asciiConfig(RFC5321)),
			[]addressCase{
				{"user(comment)@example.com", KindLocalSpecial, 4},
				{"user(at @ sign)@example.com", KindLocalSpecial, 4},
				{"us\ter@example.com", KindCtrlChar, 2},
			})
	})

	t.Run("RFC5322", func(t *testing.T) {
		checkAddresses(t, newTestValidator(t, asciiConfig(RFC5322)),
			[]addressCase{
				{"user(comment)@example.com", KindNone, 0},
				{"(comment)user@example.com", KindNone, 0},
				{"first.(comment)last@example.com", KindLocalUnquotedFWS, 6},
				{"user)@example.com", KindSpecial, 4},
			})
	})
}

func TestValidateWithoutUTF8(t *testing.T) {
	v := newTestValidator(t, asciiConfig(RFC6531))

	checkAddresses(t, v, []addressCase{
		{"user@example.com", KindNone, 0},
		{"üser@example.com", KindNotASCII, 0},
		{"user@münchen.de", KindNotASCII, 6},
	})
}

func TestValidateWithoutTLDCheck(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TLDCheck = false
	v := newTestValidator(t, cfg)

	checkAddresses(t, v, []addressCase{
		{"user@localhost", KindNone, 0},
		{"user@123.456", KindNone, 0},
		{"user@example.zzzz", KindNone, 0},
		{"user@exa_mple", KindDomainInvalidChar, 8},
	})
}

func TestValidateWithAllowMask(t *testing.T) {
	t.Run("CountryCodeOnly", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.AllowTLD = tld.CountryCode
		v := newTestValidator(t, cfg)

		checkAddresses(t, v, []addressCase{
			{"user@example.de", KindNone, 0},
			{"user@example.com", KindTLDNotAllowed, 13},
		})
	})

	t.Run("TestDomains", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.AllowTLD = tld.Test
		v := newTestValidator(t, cfg)

		checkAddresses(t, v, []addressCase{
			{"user@example.test", KindNone, 0},
			{"user@example.com", KindTLDNotAllowed, 13},
		})
	})
}

func TestValidateUsesConfiguredIDNBridge(t *testing.T) {
	bridge := newTestIDN()
	cfg := DefaultConfig()
	cfg.NewIDN = func(actions idn.Actions) (IDNBridge, error) {
		assert.Equal(t, idn.DefaultActions, actions)
		return bridge, nil
	}
	v := newTestValidator(t, cfg)

	assert.NilError(t, v.ValidateString("user@münchen.de"))
	assert.DeepEqual(t, []string{"münchen"}, bridge.labels)

	bridge.labelErr = errors.New("invalid label")
	err := v.ValidateString("user@münchen.de")

	assert.DeepEqual(t, &Diagnostic{KindIDNError, 5}, err)
}

func TestValidateIsDeterministic(t *testing.T) {
	v := newTestValidator(t, DefaultConfig())

	for _, address := range []string{
		"user@example.com", "a..b@example.com", "user@[1.2.3]",
	} {
		first := v.ValidateString(address)
		second := v.ValidateString(address)

		assert.DeepEqual(t, first, second)
	}
}

func TestValidateConcurrently(t *testing.T) {
	v := newTestValidator(t, DefaultConfig())
	addresses := map[string]Kind{
		"user@example.com":   KindNone,
		"user@münchen.de":    KindNone,
		"a..b@example.com":   KindLocalTooManyDots,
		"user@example.test":  KindTLDNotAllowed,
		"user@[999.1.1.1]":   KindInvalidIPAddr,
		"user@exa_mple.com":  KindDomainInvalidChar,
		"\"a b\"@example.de": KindNone,
	}

	var wg sync.WaitGroup
	errs := make(chan error, 8*len(addresses))

	for i := 0; i != 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for address, kind := range addresses {
				if got := KindOf(v.ValidateString(address)); got != kind {
					errs <- fmt.Errorf("%q: expected %s, got %s", address, kind, got)
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

func TestLastError(t *testing.T) {
	v := newTestValidator(t, DefaultConfig())

	assert.Equal(t, "", v.LastError())

	err := v.ValidateString("user@localhost")
	assert.Equal(t, err.Error(), v.LastError())
	assert.Equal(t, "domain is not fully qualified (at offset 5)", v.LastError())

	assert.NilError(t, v.ValidateString("user@example.com"))
	assert.Equal(t, "", v.LastError())
}

func TestSetup(t *testing.T) {
	t.Run("RejectsUnknownRFC", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.RFC = RFC(27)
		v := New(cfg)

		err := v.Setup()

		assert.Assert(t, testutils.ErrorIs(err, ErrInvalidRFC))
		assert.Equal(t, KindInvalidRFC, KindOf(err))
		assert.ErrorContains(t, err, "RFC(27)")
	})

	t.Run("ReportsIDNConfigurationFailure", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.IDNActions = idn.Actions(1 << 30)
		v := New(cfg)

		err := v.Setup()

		assert.Assert(t, testutils.ErrorIs(err, ErrIDNConfFail))
		assert.Assert(t, testutils.ErrorIs(err, idn.ErrConfig))
	})

	t.Run("ReportsIDNInitializationFailure", func(t *testing.T) {
		initErr := errors.New("out of resources")
		cfg := DefaultConfig()
		cfg.NewIDN = func(idn.Actions) (IDNBridge, error) {
			return nil, initErr
		}
		v := New(cfg)

		err := v.Setup()

		assert.Assert(t, testutils.ErrorIs(err, ErrIDNInitFail))
		assert.Assert(t, testutils.ErrorIs(err, initErr))
	})

	t.Run("DoesNotCreateBridgeWithoutUTF8", func(t *testing.T) {
		cfg := asciiConfig(RFC6531)
		cfg.NewIDN = func(idn.Actions) (IDNBridge, error) {
			t.Fatal("should not create an IDN bridge")
			return nil, nil
		}

		newTestValidator(t, cfg)
	})

	t.Run("IsANoOpOnceReady", func(t *testing.T) {
		created := 0
		cfg := DefaultConfig()
		cfg.NewIDN = func(idn.Actions) (IDNBridge, error) {
			created++
			return newTestIDN(), nil
		}
		v := newTestValidator(t, cfg)

		assert.NilError(t, v.Setup())
		assert.Equal(t, 1, created)
	})
}

func TestValidatorLifecycle(t *testing.T) {
	t.Run("ValidatePanicsBeforeSetup", func(t *testing.T) {
		v := New(DefaultConfig())
		defer testutils.ExpectPanic(t, "Validate called before Setup")

		v.ValidateString("user@example.com")
	})

	t.Run("ValidatePanicsAfterFailedSetup", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.RFC = RFC(27)
		v := New(cfg)
		assert.Assert(t, v.Setup() != nil)
		defer testutils.ExpectPanic(t, "Validate called before Setup")

		v.ValidateString("user@example.com")
	})

	t.Run("ValidatePanicsAfterClose", func(t *testing.T) {
		v := New(DefaultConfig())
		assert.NilError(t, v.Setup())
		assert.NilError(t, v.Close())
		defer testutils.ExpectPanic(t, "Validate called on a closed Validator")

		v.ValidateString("user@example.com")
	})

	t.Run("SetupPanicsAfterClose", func(t *testing.T) {
		v := New(DefaultConfig())
		assert.NilError(t, v.Close())
		defer testutils.ExpectPanic(t, "Setup called on a closed Validator")

		v.Setup()
	})

	t.Run("CloseReleasesBridgeExactlyOnce", func(t *testing.T) {
		bridge := newTestIDN()
		bridge.closeErr = errors.New("close failed")
		cfg := DefaultConfig()
		cfg.NewIDN = func(idn.Actions) (IDNBridge, error) {
			return bridge, nil
		}
		v := New(cfg)
		assert.NilError(t, v.Setup())

		assert.Error(t, v.Close(), "close failed")
		assert.Error(t, v.Close(), "close failed")
		assert.Equal(t, 1, bridge.closed)
	})

	t.Run("ReusableAcrossManyCalls", func(t *testing.T) {
		v := New(DefaultConfig())
		assert.NilError(t, v.Setup())
		defer v.Close()

		for i := 0; i != 100; i++ {
			assert.NilError(t, v.ValidateString(fmt.Sprintf("user%d@example.com", i)))
		}
	})
}

func TestOpen(t *testing.T) {
	t.Run("ReturnsReadyValidator", func(t *testing.T) {
		v, err := Open(DefaultConfig())

		assert.NilError(t, err)
		defer v.Close()
		assert.NilError(t, v.ValidateString("user@example.com"))
	})

	t.Run("ReturnsSetupError", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.RFC = RFC(27)

		v, err := Open(cfg)

		assert.Assert(t, v == nil)
		assert.Equal(t, KindInvalidRFC, KindOf(err))
	})
}
