package cmd

import (
	"fmt"

	"github.com/mbland/eav/address"
	"github.com/mbland/eav/tld"
	"github.com/spf13/cobra"
)

const (
	FlagStackName = "stack-name"
	FlagRFC       = "rfc"
	FlagUTF8      = "utf8"
	FlagTLDCheck  = "tld-check"
	FlagAllowTLD  = "allow-tld"
)

func registerStackName(cmd *cobra.Command) {
	cmd.Flags().StringP(
		FlagStackName, "s", "",
		"name of the target eav CloudFormation stack",
	)
}

func getStackName(cmd *cobra.Command) string {
	return getStringFlag(cmd, FlagStackName)
}

func getStringFlag(cmd *cobra.Command, flagName string) (value string) {
	if f := cmd.Flag(flagName); f != nil {
		value = f.Value.String()
	}
	return
}

func registerValidatorFlags(cmd *cobra.Command) {
	defaults := address.DefaultConfig()
	flags := cmd.Flags()

	flags.StringP(
		FlagRFC, "r", defaults.RFC.String(),
		"local-part grammar: 822, 5321, 5322, or 6531",
	)
	flags.BoolP(
		FlagUTF8, "u", defaults.UTF8,
		"accept UTF-8 local-parts and internationalized domain names",
	)
	flags.BoolP(
		FlagTLDCheck, "t", defaults.TLDCheck,
		"require a fully qualified domain with an allowed top-level domain",
	)
	flags.StringP(
		FlagAllowTLD, "a", defaults.AllowTLD.String(),
		"top-level domain categories to accept, separated by ',' or '|'",
	)
}

func getValidatorConfig(cmd *cobra.Command) (cfg address.Config, err error) {
	cfg = address.DefaultConfig()
	flags := cmd.Flags()

	if cfg.RFC, err = address.ParseRFC(getStringFlag(cmd, FlagRFC)); err != nil {
		err = fmt.Errorf("invalid --%s: %w", FlagRFC, err)
	} else if cfg.UTF8, err = flags.GetBool(FlagUTF8); err != nil {
		err = fmt.Errorf("invalid --%s: %w", FlagUTF8, err)
	} else if cfg.TLDCheck, err = flags.GetBool(FlagTLDCheck); err != nil {
		err = fmt.Errorf("invalid --%s: %w", FlagTLDCheck, err)
	} else if cfg.AllowTLD, err = parseAllowTLD(cmd); err != nil {
		err = fmt.Errorf("invalid --%s: %w", FlagAllowTLD, err)
	}
	return
}

func parseAllowTLD(cmd *cobra.Command) (tld.Category, error) {
	return tld.ParseMask(getStringFlag(cmd, FlagAllowTLD))
}
