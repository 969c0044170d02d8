package logtree

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Encodings supported by the sink.
const (
	EncodingJSON    = "json"
	EncodingConsole = "console"
	EncodingGCloud  = "gcloud"
)

func newEncoder(encoding string, tty bool) (zapcore.Encoder, error) {
	switch encoding {
	case "", EncodingJSON:
		cfg := zap.NewProductionEncoderConfig()
		cfg.TimeKey = "ts"
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.EncodeLevel = lowercaseLevelEncoder
		return zapcore.NewJSONEncoder(cfg), nil
	case EncodingConsole:
		cfg := zap.NewDevelopmentEncoderConfig()
		if tty {
			cfg.EncodeLevel = capitalColorLevelEncoder
		} else {
			cfg.EncodeLevel = capitalLevelEncoder
		}
		return zapcore.NewConsoleEncoder(cfg), nil
	case EncodingGCloud:
		return zapcore.NewJSONEncoder(gcloudEncoderConfig()), nil
	}
	return nil, fmt.Errorf("%w: encoding must be json, console or gcloud, got %q",
		ErrConfiguration, encoding)
}

// gcloudEncoderConfig follows Cloud Logging structured-payload conventions:
// severity key with upper-case names, RFC3339 timestamp, message key.
func gcloudEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	cfg.MessageKey = "message"
	cfg.LevelKey = "severity"
	cfg.EncodeLevel = gcloudSeverityEncoder
	return cfg
}

func gcloudSeverityEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	switch {
	case l <= zapcore.DebugLevel:
		enc.AppendString("DEBUG")
	case l == zapcore.InfoLevel:
		enc.AppendString("INFO")
	case l == zapcore.WarnLevel:
		enc.AppendString("WARNING")
	case l == zapcore.ErrorLevel:
		enc.AppendString("ERROR")
	default:
		enc.AppendString("CRITICAL")
	}
}

// Level encoders that know about the custom trace level.

func lowercaseLevelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	if l == TraceLevel {
		enc.AppendString("trace")
		return
	}
	zapcore.LowercaseLevelEncoder(l, enc)
}

func capitalLevelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	if l == TraceLevel {
		enc.AppendString("TRACE")
		return
	}
	zapcore.CapitalLevelEncoder(l, enc)
}

func capitalColorLevelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	if l == TraceLevel {
		enc.AppendString("TRACE")
		return
	}
	zapcore.CapitalColorLevelEncoder(l, enc)
}
