package adapter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mateusmacedo/train-booking/pkg/application"
)

func TestZapAppLoggerAttachesRequestIDAndFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := NewZapAppLoggerFrom(zap.New(core))

	ctx := application.WithRequestID(context.Background(), "req-1")
	logger.Info(ctx, "booking created", map[string]interface{}{"booking_id": "b1"})
	logger.Trace(ctx, "trace entry", nil)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "booking created", entries[0].Message)
	assert.Equal(t, "req-1", entries[0].ContextMap()["requestID"])
	assert.Equal(t, "b1", entries[0].ContextMap()["booking_id"])
	assert.Equal(t, zapcore.DebugLevel, entries[1].Level)
}

func TestNewZapAppLoggerRejectsUnknownLevel(t *testing.T) {
	_, err := NewZapAppLogger("train-booking", "loud")
	assert.Error(t, err)
}
