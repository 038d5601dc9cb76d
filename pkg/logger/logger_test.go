package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imgurgrab/pkg/config"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zerolog.Level
		wantErr  bool
	}{
		{input: "debug", expected: zerolog.DebugLevel},
		{input: "info", expected: zerolog.InfoLevel},
		{input: "warn", expected: zerolog.WarnLevel},
		{input: "warning", expected: zerolog.WarnLevel},
		{input: "error", expected: zerolog.ErrorLevel},
		{input: "WARN", expected: zerolog.WarnLevel},
		{input: "chatty", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := parseLogLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, level)
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		log, err := New(&config.LoggingConfig{Level: "info"})
		require.NoError(t, err)
		assert.NotNil(t, log)
		assert.NotNil(t, log.GetZerolog())
	})

	t.Run("invalid level", func(t *testing.T) {
		log, err := New(&config.LoggingConfig{Level: "nope"})
		assert.Error(t, err)
		assert.Nil(t, log)
	})
}

func TestInitialize(t *testing.T) {
	require.NoError(t, Initialize(&config.LoggingConfig{Level: "debug"}))
	assert.Error(t, Initialize(&config.LoggingConfig{Level: "nope"}))
}

func TestWithFieldsDoesNotMutateParent(t *testing.T) {
	log, err := New(&config.LoggingConfig{Level: "info"})
	require.NoError(t, err)

	child := log.WithField("album_id", "abc123")
	assert.NotSame(t, log, child)

	grandchild := child.WithFields(map[string]interface{}{"image_id": "img1"})
	assert.NotSame(t, child, grandchild)
}

func TestTestLoggerCapture(t *testing.T) {
	log := NewTestLogger()

	log.Info("starting")
	log.ErrorWithFields("failed", map[string]interface{}{"album_id": "abc123"})
	log.WithField("image_id", "img1").Warn("slow download")

	assert.True(t, log.HasMessage("starting"))
	assert.True(t, log.HasError())

	errs := log.GetMessagesByLevel("ERROR")
	require.Len(t, errs, 1)
	assert.Equal(t, "abc123", errs[0].Fields["album_id"])

	warns := log.GetMessagesByLevel("WARN")
	require.Len(t, warns, 1)
	assert.Equal(t, "img1", warns[0].Fields["image_id"])

	log.Clear()
	assert.Empty(t, log.GetMessages())
}
