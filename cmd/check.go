// Copyright © 2023 Mike Bland <mbland@acm.org>
// See LICENSE.txt for details.

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mbland/eav/address"
	"github.com/spf13/cobra"
)

const checkDescription = `` +
	`Validates email addresses locally

Validates each address given as an argument. With no arguments, reads the
addresses from standard input, one address per line, skipping empty lines.

Prints "valid: <address>" or "invalid: <address>: <reason>" for each one, and
exits with an error if any address is invalid.
`

func init() {
	rootCmd.AddCommand(newCheckCmd())
}

func newCheckCmd() (cmd *cobra.Command) {
	cmd = &cobra.Command{
		Use:   "check [address...]",
		Short: "Validate email addresses locally",
		Long:  checkDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			return checkAddresses(cmd, args)
		},
	}
	registerValidatorFlags(cmd)
	return
}

func checkAddresses(cmd *cobra.Command, args []string) (err error) {
	var cfg address.Config
	if cfg, err = getValidatorConfig(cmd); err != nil {
		return
	}
	cmd.SilenceUsage = true

	addresses := args
	if len(addresses) == 0 {
		if addresses, err = readLines(cmd.InOrStdin()); err != nil {
			return fmt.Errorf("failed to read email addresses from stdin: %w", err)
		}
	}

	v, err := address.Open(cfg)
	if err != nil {
		return fmt.Errorf("failed to set up validator: %w", err)
	}
	defer v.Close()

	out := cmd.OutOrStdout()
	failures := make([]string, 0, len(addresses))

	for _, email := range addresses {
		if err := v.ValidateString(email); err != nil {
			fmt.Fprintf(out, "invalid: %s: %s\n", email, err)
			failures = append(failures, email+": "+err.Error())
		} else {
			fmt.Fprintf(out, "valid: %s\n", email)
		}
	}
	return errorIfInvalid(failures)
}

func readLines(stdin io.Reader) (lines []string, err error) {
	lines = make([]string, 0, 100)
	scanner := bufio.NewScanner(stdin)

	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			lines = append(lines, line)
		}
	}
	err = scanner.Err()
	return
}

func validSummaryMessage(numValid, total int) string {
	if total == 1 && numValid == 1 {
		return "The address is valid.\n"
	}
	const msgFmt = "%d of %d addresses are valid.\n"
	return fmt.Sprintf(msgFmt, numValid, total)
}

func errorIfInvalid(failures []string) error {
	if len(failures) == 0 {
		return nil
	} else if len(failures) == 1 {
		return fmt.Errorf("invalid address: %s", failures[0])
	}
	const errFmt = "the following %d addresses are invalid:\n  %s"
	return fmt.Errorf(errFmt, len(failures), strings.Join(failures, "\n  "))
}
