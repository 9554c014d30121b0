//go:build small_tests || all_tests

package testutils

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"gotest.tools/assert"
)

func TestLogs(t *testing.T) {
	logs, logger := NewLogs()

	logger.Info("validate", zap.String("batchId", "b"), zap.Int("numValid", 2))
	logger.Warn("api request", zap.Int("status", 400))

	assert.Equal(
		t,
		"validate batchId=b numValid=2\napi request status=400\n",
		logs.Logs(),
	)
	logs.AssertContains(t, "numValid=2")
	assert.DeepEqual(
		t, map[string]any{"status": int64(400)}, logs.Fields("api request"),
	)
	assert.Assert(t, logs.Fields("nonexistent") == nil)

	logs.Reset()

	assert.Equal(t, "", logs.Logs())
	assert.Equal(t, 0, len(logs.Entries()))
}

func TestExpectPanic(t *testing.T) {
	t.Run("AcceptsErrorValues", func(t *testing.T) {
		defer ExpectPanic(t, "closed")

		panic(errors.New("validator closed"))
	})
}
