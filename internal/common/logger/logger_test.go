package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapAdapter_FieldsAndLevels(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := ForService(NewZapAdapter(zap.New(core)), "docushield-workers", "1.2.0")

	log.WithFields(map[string]interface{}{"taskType": "run-document-audit"}).
		Info("processing job", map[string]interface{}{"jobKey": int64(42)})
	log.Warn("schema mismatch", nil)

	entries := logs.All()
	assert.Len(t, entries, 2)

	first := entries[0].ContextMap()
	assert.Equal(t, "docushield-workers", first["service"])
	assert.Equal(t, "1.2.0", first["version"])
	assert.Equal(t, "run-document-audit", first["taskType"])
	assert.Equal(t, int64(42), first["jobKey"])

	assert.Equal(t, zap.WarnLevel, entries[1].Level)
	_, hasTask := entries[1].ContextMap()["taskType"]
	assert.False(t, hasTask)
}

func TestZapAdapter_LevelFiltering(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	log := NewZapAdapter(zap.New(core))

	log.Error("audit failed", map[string]interface{}{"error": assert.AnError.Error()})
	log.Debug("dropped", nil)

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, assert.AnError.Error(), entries[0].ContextMap()["error"])
}

func TestNewWithOutput_LevelParsing(t *testing.T) {
	l := NewWithOutput("warn", "console", "stderr")
	assert.False(t, l.Core().Enabled(zap.InfoLevel))
	assert.True(t, l.Core().Enabled(zap.WarnLevel))

	l = New("debug", "json")
	assert.True(t, l.Core().Enabled(zap.DebugLevel))
}

func TestNewWithOutput_UnknownLevelFallsBackToInfo(t *testing.T) {
	l := NewWithOutput("verbose", "console", "stderr")
	assert.False(t, l.Core().Enabled(zap.DebugLevel))
	assert.True(t, l.Core().Enabled(zap.InfoLevel))
}

func TestZapAdapter_ErrorValues(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	log := NewZapAdapter(zap.New(core))

	log.Error("engine call failed", map[string]interface{}{"error": assert.AnError, "attempt": 2})

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, assert.AnError.Error(), entries[0].ContextMap()["error"])
	assert.Equal(t, int64(2), entries[0].ContextMap()["attempt"])
}
