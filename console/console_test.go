package console

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewWithSinks_SplitsByLevel(t *testing.T) {
	// Arrange
	var info, errs bytes.Buffer
	log := NewWithSinks(zapcore.InfoLevel, zapcore.AddSync(&info), zapcore.AddSync(&errs))

	// Act
	log.Debug("hidden")
	log.Info("clicked", zap.Int("value", 1))
	log.Error("missing element", zap.String("id", "counter"))

	// Assert
	assert.NotContains(t, info.String(), "hidden")
	assert.Contains(t, info.String(), "clicked")
	assert.Contains(t, info.String(), `"value": 1`)
	assert.NotContains(t, info.String(), "missing element")
	assert.Contains(t, errs.String(), "missing element")
	assert.NotContains(t, errs.String(), "clicked")
}

func TestNew_DebugLevel(t *testing.T) {
	assert.True(t, New(true).Core().Enabled(zapcore.DebugLevel))
	assert.False(t, New(false).Core().Enabled(zapcore.DebugLevel))
}
