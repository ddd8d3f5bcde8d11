package cli

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateLogger_QuietKeepsErrors(t *testing.T) {
	ctx := context.Background()

	quiet := createLogger(true, true)
	assert.True(t, quiet.Enabled(ctx, slog.LevelError))
	assert.False(t, quiet.Enabled(ctx, slog.LevelWarn))
	assert.False(t, quiet.Enabled(ctx, slog.LevelDebug))

	normal := createLogger(false, false)
	assert.True(t, normal.Enabled(ctx, slog.LevelWarn))
	assert.False(t, normal.Enabled(ctx, slog.LevelDebug))

	debug := createLogger(true, false)
	assert.True(t, debug.Enabled(ctx, slog.LevelDebug))
}

func TestSignalContext_CancelWithoutSignal(t *testing.T) {
	sc := NewSignalContext(context.Background())
	sc.Cancel()

	<-sc.Done()
	assert.Nil(t, sc.Signal())
}
