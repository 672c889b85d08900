package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		for _, encoding := range []string{"json", "console"} {
			logger, err := New(level, encoding)
			require.NoError(t, err, level, encoding)
			want, _ := zapcore.ParseLevel(level)
			assert.True(t, logger.Core().Enabled(want))
			assert.False(t, logger.Core().Enabled(want-1))
		}
	}
}

func TestNew_Errors(t *testing.T) {
	_, err := New("verbose", "json")
	assert.ErrorContains(t, err, "invalid log level")

	_, err = New("info", "xml")
	assert.Error(t, err)
}
