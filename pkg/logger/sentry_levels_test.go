package logger

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelsFrom(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []slog.Level{slog.LevelError}, levelsFrom(slog.LevelError))
	assert.Equal(t, []slog.Level{slog.LevelWarn, slog.LevelError}, levelsFrom(slog.LevelWarn))
	assert.Len(t, levelsFrom(slog.LevelDebug), 4)
}
