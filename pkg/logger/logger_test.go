package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter(&buf, "warn")
	require.NoError(t, err)

	log.Info("quote computed: cabin=%s", "c-1")
	log.Warn("rule skipped: id=%d", 7)
	log.Error("repository failed: %v", "boom")

	out := buf.String()
	assert.NotContains(t, out, "quote computed")
	assert.Contains(t, out, "rule skipped: id=7")
	assert.Contains(t, out, "repository failed: boom")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("", "verbose")
	assert.Error(t, err)
}

func TestNew_StdoutOnly(t *testing.T) {
	log, err := New("", "")
	require.NoError(t, err)
	assert.NoError(t, log.Close())
}
