// Copyright © 2023 Mike Bland <mbland@acm.org>
// See LICENSE.txt for details.

package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mbland/eav/events"
	"github.com/spf13/cobra"
)

const remoteCheckDescription = `` +
	`Validates email addresses using the deployed eav Lambda function

Reads the list of addresses from standard input, one address per line, and
sends them to the Lambda function as a single batch. The function validates
them using the configuration from its EAV_* environment variables.

Prints a summary, and exits with an error listing every invalid address.
`

func init() {
	rootCmd.AddCommand(newRemoteCheckCmd(NewEavLambda))
}

func newRemoteCheckCmd(newFunc EavFactoryFunc) (cmd *cobra.Command) {
	cmd = &cobra.Command{
		Use:   "remote-check",
		Short: "Validate email addresses using the deployed Lambda function",
		Long:  remoteCheckDescription,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return remoteCheck(cmd, newFunc, getStackName(cmd))
		},
	}
	registerStackName(cmd)
	cmd.MarkFlagRequired(FlagStackName)
	return
}

func remoteCheck(
	cmd *cobra.Command, newFunc EavFactoryFunc, stackName string,
) (err error) {
	cmd.SilenceUsage = true
	var addresses []string
	var eavFunc EavFunc

	if addresses, err = readLines(cmd.InOrStdin()); err != nil {
		err = fmt.Errorf("failed to read email addresses from stdin: %w", err)
		return
	} else if eavFunc, err = newFunc(stackName); err != nil {
		return
	}

	ctx := context.Background()
	evt := &events.CommandLineEvent{
		EavCommand: events.CommandLineValidateEvent,
		Validate: &events.ValidateEvent{
			BatchId: uuid.New(), Addresses: addresses,
		},
	}
	var response *events.ValidateResponse

	if err = eavFunc.Invoke(ctx, evt, &response); err != nil {
		return fmt.Errorf("remote check failed: %w", err)
	} else if response == nil {
		return errors.New("remote check failed: empty response")
	}

	summary := validSummaryMessage(response.NumValid, len(addresses))
	fmt.Fprint(cmd.OutOrStdout(), summary)
	return errorIfInvalid(failureDescriptions(response.Failures))
}

func failureDescriptions(failures []events.Failure) []string {
	descriptions := make([]string, len(failures))
	for i, f := range failures {
		descriptions[i] = f.Address + ": " + f.Message
	}
	return descriptions
}
