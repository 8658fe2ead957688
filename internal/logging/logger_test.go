package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWithWriterLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, false)
	logger.Debug("hidden")
	logger.Info("shown", "url", "https://voe.sx/e/1")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "url=https://voe.sx/e/1")
}

func TestNewWithWriterDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, true)
	logger.Debug("option discarded", "err", "boom")

	assert.Contains(t, buf.String(), "option discarded")
	assert.Contains(t, buf.String(), "debug logging enabled")
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	logger.Error("nothing")
	assert.NotNil(t, logger)
}
