package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func sqlFn() (string, int64) { return "SELECT 1", 1 }

func TestGormLogger_Trace(t *testing.T) {
	tests := []struct {
		name    string
		level   gormlogger.LogLevel
		begin   time.Time
		err     error
		message string
	}{
		{"error is logged", gormlogger.Warn, time.Now(), errors.New("syntax error"), "SQL Error"},
		{"slow query is warned", gormlogger.Warn, time.Now().Add(-time.Second), nil, "Slow SQL"},
		{"record not found is ignored", gormlogger.Warn, time.Now(), gormlogger.ErrRecordNotFound, ""},
		{"silent logs nothing", gormlogger.Silent, time.Now(), errors.New("boom"), ""},
		{"info logs normal queries", gormlogger.Info, time.Now(), nil, "SQL Query"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, recorded := observer.New(zapcore.DebugLevel)
			l := NewGormLogger(zap.New(core), tt.level, 100*time.Millisecond)

			l.Trace(context.Background(), tt.begin, sqlFn, tt.err)

			if tt.message == "" {
				assert.Zero(t, recorded.Len())
				return
			}
			assert.Equal(t, 1, recorded.FilterMessage(tt.message).Len())
		})
	}
}

func TestGormLogger_LogMode(t *testing.T) {
	l := NewGormLogger(zap.NewNop(), gormlogger.Warn, 0)
	silent := l.LogMode(gormlogger.Silent)

	assert.NotSame(t, l, silent)
	assert.Equal(t, gormlogger.Warn, l.level)
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("info"))
	assert.Equal(t, gormlogger.Error, MapGormLogLevel("error"))
	assert.Equal(t, gormlogger.Silent, MapGormLogLevel("silent"))
}
