package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

func TestForEnv(t *testing.T) {
	assert.Equal(t, Config{Level: "info", Format: "json", Output: "stdout"}, ForEnv("production", "", ""))
	assert.Equal(t, Config{Level: "debug", Format: "console", Output: "stdout"}, ForEnv("development", "debug", ""))
	assert.Equal(t, "json", ForEnv("development", "", "json").Format)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("bogus"))
}

func TestGormLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Info, GormLevel("debug"))
	assert.Equal(t, gormlogger.Error, GormLevel("error"))
	assert.Equal(t, gormlogger.Warn, GormLevel("info"))
}

func TestNew(t *testing.T) {
	l := New(Config{Level: "debug", Format: "json", Output: "stderr"})
	assert.NotNil(t, l)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
}
