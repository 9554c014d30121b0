package testutils

import (
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gotest.tools/assert"
	is "gotest.tools/assert/cmp"
)

// Logs captures everything written to the *zap.Logger returned by NewLogs.
type Logs struct {
	observed *observer.ObservedLogs
}

func NewLogs() (*Logs, *zap.Logger) {
	core, observed := observer.New(zapcore.DebugLevel)
	return &Logs{observed}, zap.New(core)
}

// Logs renders each entry as its message followed by its fields, one entry
// per line, e.g.: `validate: batchId=... numValid=2`.
func (tl *Logs) Logs() string {
	sb := &strings.Builder{}

	for _, entry := range tl.observed.All() {
		sb.WriteString(entry.Message)
		enc := zapcore.NewMapObjectEncoder()
		for _, f := range entry.Context {
			f.AddTo(enc)
		}
		for _, f := range entry.Context {
			if f.Type == zapcore.SkipType {
				continue
			}
			sb.WriteString(" " + f.Key + "=")
			sb.WriteString(fmt.Sprint(enc.Fields[f.Key]))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (tl *Logs) Entries() []observer.LoggedEntry {
	return tl.observed.All()
}

// Fields returns the fields of the first entry with the given message, or
// nil if there isn't one.
func (tl *Logs) Fields(message string) map[string]any {
	entries := tl.observed.FilterMessage(message).All()
	if len(entries) == 0 {
		return nil
	}
	return entries[0].ContextMap()
}

func (tl *Logs) AssertContains(t *testing.T, message string) {
	t.Helper()
	assert.Assert(t, is.Contains(tl.Logs(), message))
}

func (tl *Logs) Reset() {
	tl.observed.TakeAll()
}
