//go:build small_tests || all_tests

package cmd

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"gotest.tools/assert"
	is "gotest.tools/assert/cmp"
)

func SetupCommandForTesting(
	command *cobra.Command,
) (cmd *cobra.Command, stdout, stderr *strings.Builder) {
	cmd = command
	stdout = &strings.Builder{}
	stderr = &strings.Builder{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs([]string{})
	return
}

type CommandTestFixture struct {
	Cmd    *cobra.Command
	Stdout *strings.Builder
	Stderr *strings.Builder
}

func NewCommandTestFixture(command *cobra.Command) *CommandTestFixture {
	cmd, stdout, stderr := SetupCommandForTesting(command)
	return &CommandTestFixture{cmd, stdout, stderr}
}

func (f *CommandTestFixture) ExecuteAndAssertStdoutContains(
	t *testing.T, expected string,
) {
	t.Helper()

	err := f.Cmd.Execute()

	assert.NilError(t, err)
	assert.Assert(t, is.Contains(f.Stdout.String(), expected))
}

func (f *CommandTestFixture) ExecuteAndAssertErrorContains(
	t *testing.T, expected string,
) error {
	t.Helper()

	err := f.Cmd.Execute()

	assert.ErrorContains(t, err, expected)
	return err
}
