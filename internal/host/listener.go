package host

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// BuildListener is the build log of the host CI system.
type BuildListener interface {
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
}

type zapListener struct {
	logger *zap.Logger
}

// NewBuildListener writes console formatted build log lines to w.
func NewBuildListener(w io.Writer) BuildListener {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.CallerKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), zapcore.InfoLevel)
	return &zapListener{logger: zap.New(core)}
}

// NewBuildListenerFromLogger adapts an existing zap logger.
func NewBuildListenerFromLogger(logger *zap.Logger) BuildListener {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &zapListener{logger: logger}
}

func (l *zapListener) Info(msg string, fields ...zap.Field) {
	l.logger.Info(msg, fields...)
}

func (l *zapListener) Warn(msg string, fields ...zap.Field) {
	l.logger.Warn(msg, fields...)
}

func (l *zapListener) Error(msg string, fields ...zap.Field) {
	l.logger.Error(msg, fields...)
}
