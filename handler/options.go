package handler

import (
	"strconv"
	"strings"

	"github.com/mbland/eav/address"
	"github.com/mbland/eav/tld"
)

// Options holds the default validator configuration for every request the
// Lambda function handles.
type Options struct {
	Validator address.Config
}

// settingNames maps each configurable validator setting to the name of the
// environment variable or query parameter that overrides it.
type settingNames struct {
	rfc      string
	utf8     string
	tldCheck string
	allowTLD string
}

var envSettings = settingNames{
	rfc:      "EAV_RFC",
	utf8:     "EAV_UTF8",
	tldCheck: "EAV_TLD_CHECK",
	allowTLD: "EAV_ALLOW_TLD",
}

var querySettings = settingNames{
	rfc:      "rfc",
	utf8:     "utf8",
	tldCheck: "tld_check",
	allowTLD: "allow_tld",
}

type InvalidEnvVarsError struct {
	InvalidVars []string
}

func (e *InvalidEnvVarsError) Error() string {
	return "invalid environment variables:\n  " +
		strings.Join(e.InvalidVars, "\n  ")
}

// GetOptions starts from address.DefaultConfig and applies every EAV_*
// variable that getenv returns. Unset variables keep their defaults.
func GetOptions(getenv func(string) string) (*Options, error) {
	cfg, _, invalid := parseConfig(address.DefaultConfig(), envSettings, getenv)

	if len(invalid) != 0 {
		return nil, &InvalidEnvVarsError{invalid}
	}
	return &Options{Validator: cfg}, nil
}

type configParser struct {
	lookup   func(string) string
	cfg      address.Config
	assigned int
	invalid  []string
}

func parseConfig(
	base address.Config, names settingNames, lookup func(string) string,
) (cfg address.Config, assigned int, invalid []string) {
	p := &configParser{lookup: lookup, cfg: base}

	p.assign(names.rfc, func(value string) (err error) {
		var rfc address.RFC
		if rfc, err = address.ParseRFC(value); err == nil {
			p.cfg.RFC = rfc
		}
		return
	})
	p.assign(names.utf8, parseBool(&p.cfg.UTF8))
	p.assign(names.tldCheck, parseBool(&p.cfg.TLDCheck))
	p.assign(names.allowTLD, func(value string) (err error) {
		var mask tld.Category
		if mask, err = tld.ParseMask(value); err == nil {
			p.cfg.AllowTLD = mask
		}
		return
	})
	return p.cfg, p.assigned, p.invalid
}

func (p *configParser) assign(name string, parse func(string) error) {
	value := strings.TrimSpace(p.lookup(name))

	if value == "" {
		return
	} else if err := parse(value); err != nil {
		p.invalid = append(p.invalid, name+": "+err.Error())
	} else {
		p.assigned++
	}
}

func parseBool(opt *bool) func(string) error {
	return func(value string) (err error) {
		var b bool
		if b, err = strconv.ParseBool(value); err == nil {
			*opt = b
		}
		return
	}
}
