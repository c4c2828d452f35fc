package ijslog

/*
Bridge into go.uber.org/zap for projects that already ship their logs
through a zap pipeline. The bridge forwards the formatted message with the
channel attached as a structured field.
*/

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapSink forwards entries to a *zap.Logger.
type ZapSink struct {
	zl *zap.Logger
}

// NewZapSink wraps a zap logger as a sink. A nil logger degrades to a nop
// zap logger rather than failing emission.
func NewZapSink(zl *zap.Logger) *ZapSink {
	if zl == nil {
		zl = zap.NewNop()
	}
	return &ZapSink{zl: zl}
}

// Write implements Sink.
func (s *ZapSink) Write(e Entry) {
	fields := []zap.Field{zap.String("channel", e.Channel.Name())}
	if e.Level == LVL_FATAL {
		fields = append(fields, zap.Bool("fatal", true))
	}
	s.zl.Log(zapLevel(e.Level), e.Message, fields...)
}

// zapLevel maps levels onto zapcore. FATAL maps to zap's Error: zap's own
// Fatal level exits the process, and a sink must never do that to the
// caller (the "fatal" field preserves the original severity).
func zapLevel(l LogLevel) zapcore.Level {
	switch normLevel(l) {
	case LVL_WARN:
		return zapcore.WarnLevel
	case LVL_ERROR, LVL_FATAL:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
