package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromContext(t *testing.T) {
	t.Run("nop without logger", func(t *testing.T) {
		assert.NotNil(t, FromContext(context.Background()))
	})

	t.Run("returns attached logger with request id", func(t *testing.T) {
		core, recorded := observer.New(zapcore.InfoLevel)
		ctx, _ := WithRequestID(context.Background(), zap.New(core), "req-42")

		FromContext(ctx).Info("hello")
		assert.Equal(t, "req-42", GetRequestID(ctx))
		entries := recorded.All()
		if assert.Len(t, entries, 1) {
			assert.Equal(t, "req-42", entries[0].ContextMap()["request_id"])
		}
	})

	t.Run("adds trace ids from the active span", func(t *testing.T) {
		core, recorded := observer.New(zapcore.InfoLevel)
		spanCtx := trace.NewSpanContext(trace.SpanContextConfig{
			TraceID:    trace.TraceID{1, 2, 3},
			SpanID:     trace.SpanID{4, 5, 6},
			TraceFlags: trace.FlagsSampled,
		})
		ctx := trace.ContextWithSpanContext(WithContext(context.Background(), zap.New(core)), spanCtx)

		FromContext(ctx).Info("traced")
		fields := recorded.All()[0].ContextMap()
		assert.Equal(t, spanCtx.TraceID().String(), fields["trace_id"])
		assert.Equal(t, spanCtx.SpanID().String(), fields["span_id"])
	})
}

func TestWithTenantAndUserID(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	ctx, log := WithTenantID(context.Background(), zap.New(core), "tenant-1")
	ctx, _ = WithUserID(ctx, log, "user-9")

	FromContext(ctx).Info("scoped")
	assert.Equal(t, "tenant-1", GetTenantID(ctx))
	assert.Equal(t, "user-9", GetUserID(ctx))
	fields := recorded.All()[0].ContextMap()
	assert.Equal(t, "tenant-1", fields["tenant_id"])
	assert.Equal(t, "user-9", fields["user_id"])
}
