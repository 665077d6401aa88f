package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestDebugOnlyWhenEnabled(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	defer SetupZapLogger(false)

	SetupZapLogger(false)
	Debugz("hidden")
	assert.Equal(t, 0, logs.Len())

	SetupZapLogger(true)
	Debugz("shown", zap.Int("line", 3))
	if assert.Equal(t, 1, logs.Len()) {
		assert.Equal(t, int64(3), logs.All()[0].ContextMap()["line"])
	}
}

func TestWarnAlwaysLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	SetupZapLogger(false)

	Warnz("warn", zap.String("reason", "x"))

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
		assert.Equal(t, "x", entries[0].ContextMap()["reason"])
	}
}

func TestConsoleFormat(t *testing.T) {
	bb := &bytes.Buffer{}
	SetLogger(newConsoleLogger(zapcore.AddSync(bb)))
	defer SetLogger(newConsoleLogger(zapcore.AddSync(&bytes.Buffer{})))

	Warnz("skip line", zap.Int("line", 7))
	assert.Contains(t, bb.String(), "warn skip line")
	assert.Contains(t, bb.String(), `{"line": 7}`)
}
