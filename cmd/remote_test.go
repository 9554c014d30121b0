//go:build small_tests || all_tests

package cmd

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/mbland/eav/events"
	"github.com/mbland/eav/ops"
	"github.com/mbland/eav/testutils"
	"gotest.tools/assert"
)

func TestFailureDescriptions(t *testing.T) {
	descriptions := failureDescriptions([]events.Failure{
		{Address: "foo@test", Kind: "DomainNotFQDN", Message: "not an FQDN"},
		{Address: "bar", Kind: "EmailNoDomain", Message: "no domain"},
	})

	assert.DeepEqual(
		t, []string{"foo@test: not an FQDN", "bar: no domain"}, descriptions,
	)
}

func TestRemoteCheck(t *testing.T) {
	addrs := []string{"foo@test.com", "bar@test.com", "baz@test.com"}

	setup := func() (f *CommandTestFixture, lambda *TestEavFunc) {
		lambda = NewTestEavFunc()
		f = NewCommandTestFixture(newRemoteCheckCmd(lambda.GetFactoryFunc()))
		f.Cmd.SetIn(strings.NewReader(strings.Join(addrs, "\n")))
		f.Cmd.SetArgs([]string{"-s", TestStackName})
		return
	}

	t.Run("Succeeds", func(t *testing.T) {
		f, lambda := setup()
		lambda.InvokeResJson = []byte(`{"numValid": 3}`)

		f.ExecuteAndAssertStdoutContains(t, "3 of 3 addresses are valid.\n")

		assert.Assert(t, f.Cmd.SilenceUsage == true)
		assert.Equal(t, TestStackName, lambda.StackName)
		req, isCliEvent := lambda.InvokeReq.(*events.CommandLineEvent)
		assert.Assert(t, isCliEvent == true)
		assert.Equal(t, events.CommandLineValidateEvent, req.EavCommand)
		assert.Assert(t, req.Validate.BatchId != uuid.Nil)
		assert.DeepEqual(t, addrs, req.Validate.Addresses)
	})

	t.Run("FailsIfStackNameNotSpecified", func(t *testing.T) {
		f, _ := setup()
		f.Cmd.SetArgs([]string{})

		err := f.Cmd.Execute()

		const expectedErr = "required flag(s) \"" + FlagStackName + "\" not set"
		assert.ErrorContains(t, err, expectedErr)
	})

	t.Run("FailsIfCannotReadInput", func(t *testing.T) {
		f, _ := setup()
		f.Cmd.SetIn(&errReader{})

		const expectedErr = "failed to read email addresses from stdin: " +
			"test read error"
		f.ExecuteAndAssertErrorContains(t, expectedErr)
	})

	t.Run("FailsIfCreatingLambdaFails", func(t *testing.T) {
		f, lambda := setup()
		const errFmt = "%w: creating lambda failed"
		lambda.CreateFuncError = fmt.Errorf(errFmt, ops.ErrExternal)

		err := f.ExecuteAndAssertErrorContains(t, "creating lambda failed")

		assert.Assert(t, testutils.ErrorIs(err, ops.ErrExternal))
	})

	t.Run("FailsIfInvokingLambdaFails", func(t *testing.T) {
		f, lambda := setup()
		lambda.InvokeError = fmt.Errorf("%w: invoke failed", ops.ErrExternal)

		err := f.ExecuteAndAssertErrorContains(t, "remote check failed: ")

		assert.ErrorContains(t, err, "invoke failed")
		assert.Assert(t, testutils.ErrorIs(err, ops.ErrExternal))
	})

	t.Run("FailsIfResponseIsNull", func(t *testing.T) {
		f, lambda := setup()
		lambda.InvokeResJson = []byte("null")

		f.ExecuteAndAssertErrorContains(t, "remote check failed: empty response")
	})

	t.Run("FailsIfAnyAddressIsInvalid", func(t *testing.T) {
		f, lambda := setup()
		lambda.InvokeResJson = []byte(`{
			"numValid": 1,
			"failures": [
				{"address": "foo@test.com", "kind": "A", "message": "first error"},
				{"address": "baz@test.com", "kind": "B", "message": "second error"}
			]
		}`)

		err := f.Cmd.Execute()

		const expectedStdout = "1 of 3 addresses are valid.\n"
		const expectedErr = "the following 2 addresses are invalid:\n" +
			"  foo@test.com: first error\n" +
			"  baz@test.com: second error"
		assert.Equal(t, expectedStdout, f.Stdout.String())
		assert.ErrorContains(t, err, expectedErr)
	})
}
