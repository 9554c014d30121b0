package testutils

import (
	"errors"
	"fmt"
	"testing"

	"gotest.tools/assert"
	"gotest.tools/assert/cmp"
)

// ErrorIs passes if expectedErr appears anywhere in err's tree.
func ErrorIs(err, expectedErr error) cmp.Comparison {
	return func() cmp.Result {
		if errors.Is(err, expectedErr) {
			return cmp.ResultSuccess
		}
		const errFmt = "expected \"%+v\" (%T) in error tree,\ngot: \"%+v\" (%T)"
		errMsg := fmt.Sprintf(errFmt, expectedErr, expectedErr, err, err)
		return cmp.ResultFailure(errMsg)
	}
}

// ExpectPanic must be deferred directly by the test function. The panic
// value may be a string or an error.
func ExpectPanic(t *testing.T, expectedMsg string) {
	t.Helper()

	if r := recover(); r != nil {
		assert.Assert(t, cmp.Contains(fmt.Sprint(r), expectedMsg))
	} else {
		t.Fatal("expected panic, but didn't")
	}
}
