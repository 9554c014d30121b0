//go:build small_tests || all_tests

package events

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"gotest.tools/assert"
)

func TestCommandLineEventJson(t *testing.T) {
	batchId := uuid.MustParse("00000000-1111-2222-3333-444444444444")
	evt := &CommandLineEvent{
		EavCommand: CommandLineValidateEvent,
		Validate: &ValidateEvent{
			BatchId:   batchId,
			Addresses: []string{"user@example.com"},
		},
	}

	payload, err := json.Marshal(evt)

	assert.NilError(t, err)
	assert.Equal(
		t,
		`{"eavCommand":"validate","validate":{`+
			`"batchId":"00000000-1111-2222-3333-444444444444",`+
			`"addresses":["user@example.com"]}}`,
		string(payload),
	)
}

func TestValidateResponseOmitsEmptyFailures(t *testing.T) {
	res := &ValidateResponse{NumValid: 2}

	payload, err := json.Marshal(res)

	assert.NilError(t, err)
	assert.Equal(
		t,
		`{"batchId":"00000000-0000-0000-0000-000000000000","numValid":2}`,
		string(payload),
	)
}
