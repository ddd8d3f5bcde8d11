package logging_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/aretw0/sceneswap/internal/logging"
	"github.com/stretchr/testify/assert"
)

func TestNewWriter_RenamesErrorKey(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWriter(&buf, slog.LevelInfo)

	logger.Error("Save step failed", "error", errors.New("disk full"))

	assert.Contains(t, buf.String(), `err="disk full"`)
	assert.NotContains(t, buf.String(), "error=")
}

func TestLevelFor(t *testing.T) {
	var buf bytes.Buffer
	quiet := logging.NewWriter(&buf, logging.LevelFor(false))
	quiet.Debug("trace")
	quiet.Warn("warning")
	assert.NotContains(t, buf.String(), "trace")
	assert.Contains(t, buf.String(), "warning")

	buf.Reset()
	verbose := logging.NewWriter(&buf, logging.LevelFor(true))
	verbose.Debug("trace")
	assert.Contains(t, buf.String(), "trace")
}
