// Copyright © 2023 Mike Bland <mbland@acm.org>.
// See LICENSE.txt for details.

package cmd

import (
	"github.com/spf13/cobra"
)

const eavDesc = "Email address validator supporting RFC 822, 5321, 5322, " +
	"and 6531 grammars"
const eavDescLong = eavDesc + "\n\n" +
	`See the https://github.com/mbland/eav README for details.

To validate addresses locally:
  eav check user@example.com 'first.last@münchen.de'
  generate-addresses | eav check --rfc 5322 --utf8=false

To see how a top-level domain is classified:
  eav tld com de рф

To validate addresses using the deployed Lambda function, given the name of
its CloudFormation stack:
  generate-addresses | eav remote-check -s <STACK_NAME>
`

var rootCmd = &cobra.Command{
	Use:     "eav",
	Version: "v0.1.0",
	Short:   eavDesc,
	Long:    eavDescLong,
}

func Execute() error {
	return rootCmd.Execute()
}
