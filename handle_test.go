package logtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerEmitShapes(t *testing.T) {
	sink := NewRecordingSink()
	lg := newLogger("svc/a", TraceLevel, sink)

	tests := []struct {
		name        string
		logFunc     func()
		wantSev     Severity
		wantMsg     string
		wantPayload map[string]any
		wantArgs    int
	}{
		{
			name:    "message only",
			logFunc: func() { lg.Info("started") },
			wantSev: InfoLevel,
			wantMsg: "started",
		},
		{
			name:     "message with args",
			logFunc:  func() { lg.Warn("retry %d of %d", 2, 5) },
			wantSev:  WarnLevel,
			wantMsg:  "retry %d of %d",
			wantArgs: 2,
		},
		{
			name:        "payload only",
			logFunc:     func() { lg.Debug(map[string]any{"queue": "q1"}) },
			wantSev:     DebugLevel,
			wantPayload: map[string]any{"queue": "q1"},
		},
		{
			name:        "payload then message",
			logFunc:     func() { lg.Error(map[string]any{"attempt": 3}, "giving up") },
			wantSev:     ErrorLevel,
			wantMsg:     "giving up",
			wantPayload: map[string]any{"attempt": 3},
		},
		{
			name:    "trace",
			logFunc: func() { lg.Trace("wire bytes") },
			wantSev: TraceLevel,
			wantMsg: "wire bytes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink.Reset()
			tt.logFunc()

			recs := sink.Records()
			require.Len(t, recs, 1)
			assert.Equal(t, tt.wantSev, recs[0].Severity)
			assert.Equal(t, tt.wantMsg, recs[0].Message)
			assert.Equal(t, tt.wantPayload, recs[0].Payload)
			assert.Len(t, recs[0].Args, tt.wantArgs)
		})
	}
}

func TestLoggerBelowThresholdIsNoOp(t *testing.T) {
	sink := NewRecordingSink()
	lg := newLogger("svc/a", WarnLevel, sink)

	lg.Trace("t")
	lg.Debug("d")
	lg.Info(map[string]any{"k": "v"}, "i")

	assert.Empty(t, sink.Records(), "filtered emits must produce no records")

	lg.Warn("w")
	lg.Error("e")
	assert.Len(t, sink.Records(), 2)
}

func TestLoggerLevelMutationTakesEffectImmediately(t *testing.T) {
	sink := NewRecordingSink()
	lg := newLogger("svc/a", InfoLevel, sink)

	lg.Debug("before")
	require.Empty(t, sink.Records())

	lg.setLevel(DebugLevel)
	assert.Equal(t, DebugLevel, lg.Level())
	assert.True(t, lg.Enabled(DebugLevel))

	lg.Debug("after")
	assert.Len(t, sink.Records(), 1)
}

func TestLoggerFlush(t *testing.T) {
	sink := NewRecordingSink()
	lg := newLogger("svc/a", InfoLevel, sink)

	require.NoError(t, lg.Flush())
	assert.Equal(t, 1, sink.Flushes())
}

func TestLoggerName(t *testing.T) {
	lg := newLogger("svc/a", InfoLevel, NewRecordingSink())
	assert.Equal(t, "svc/a", lg.Name())
}
