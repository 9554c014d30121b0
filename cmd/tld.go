package cmd

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mbland/eav/idn"
	"github.com/mbland/eav/tld"
	"github.com/spf13/cobra"
)

const tldDescription = `` +
	`Prints the IANA categories of top-level domain labels

Classifies each label given as an argument. With no arguments, reads the labels
from standard input, one label per line. A leading '.' is ignored.

Internationalized labels are converted to their ASCII form first. ASCII
labels starting with "xn--" are shown with their Unicode form, e.g.:

  $ eav tld com .de рф xn--p1ai
  com: generic
  de: country-code
  рф (xn--p1ai): country-code
  xn--p1ai (рф): country-code
`

func init() {
	rootCmd.AddCommand(newTldCmd())
}

func newTldCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tld [label...]",
		Short: "Print the categories of top-level domain labels",
		Long:  tldDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			return classifyLabels(cmd, args)
		},
	}
}

func classifyLabels(cmd *cobra.Command, args []string) (err error) {
	cmd.SilenceUsage = true
	labels := args

	if len(labels) == 0 {
		if labels, err = readLines(cmd.InOrStdin()); err != nil {
			return fmt.Errorf("failed to read labels from stdin: %w", err)
		}
	}

	idnCtx, err := idn.New(idn.DefaultActions)
	if err != nil {
		return
	}
	defer idnCtx.Close()

	out := cmd.OutOrStdout()
	for _, label := range labels {
		label = strings.TrimPrefix(strings.TrimSpace(label), ".")
		fmt.Fprintln(out, describeLabel(idnCtx, label))
	}
	return
}

func describeLabel(idnCtx *idn.Context, label string) string {
	if utf8.ValidString(label) && !isASCII(label) {
		aLabel, err := idnCtx.ValidateLabel([]byte(label))
		if err != nil {
			return fmt.Sprintf("%s: %s: %s", label, tld.Invalid, err)
		}
		return fmt.Sprintf("%s (%s): %s", label, aLabel, tld.LookupString(aLabel))
	} else if isALabel(label) {
		uLabel, err := idnCtx.ToUnicode(label)
		if err != nil {
			return fmt.Sprintf("%s: %s: %s", label, tld.Invalid, err)
		}
		return fmt.Sprintf("%s (%s): %s", label, uLabel, tld.LookupString(label))
	}
	return fmt.Sprintf("%s: %s", label, tld.LookupString(label))
}

func isALabel(label string) bool {
	const prefix = "xn--"
	return len(label) > len(prefix) &&
		strings.EqualFold(label[:len(prefix)], prefix)
}

func isASCII(s string) bool {
	for i := 0; i != len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
