// README: Structured logger (logrus) with optional rotating file output (lumberjack).
package log

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"trippo/internal/config"
)

// Logger wraps logrus.Logger with domain helpers.
type Logger struct {
	*logrus.Logger
}

// Fields represents a map of fields for structured logging
type Fields map[string]interface{}

// New creates a logger from cfg.
func New(cfg config.LoggingConfig) (*Logger, error) {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	logger.SetLevel(level)

	if cfg.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	}

	var output io.Writer = os.Stdout
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			return nil, err
		}
		output = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		}
	}
	logger.SetOutput(output)

	return &Logger{Logger: logger}, nil
}

// Discard returns a logger that writes nowhere; used by tests and tools.
func Discard() *Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return &Logger{Logger: logger}
}

// WithFields adds fields to log entry
func (l *Logger) WithFields(fields Fields) *logrus.Entry {
	return l.Logger.WithFields(logrus.Fields(fields))
}

func (l *Logger) LogRequest(method, path, clientIP string, statusCode int, durationMs int64) {
	entry := l.WithFields(Fields{
		"method":      method,
		"path":        path,
		"client_ip":   clientIP,
		"status_code": statusCode,
		"duration_ms": durationMs,
		"type":        "request",
	})
	if statusCode >= 500 {
		entry.Error("HTTP request")
		return
	}
	entry.Info("HTTP request")
}

// LogGeneration records one itinerary generation attempt. kind is empty on success.
func (l *Logger) LogGeneration(uid, destination string, days, attempt int, kind string, durationMs int64) {
	entry := l.WithFields(Fields{
		"uid":         uid,
		"destination": destination,
		"days":        days,
		"attempt":     attempt,
		"duration_ms": durationMs,
		"type":        "generation",
	})
	if kind != "" {
		entry.WithField("error_kind", kind).Warn("Itinerary generation failed")
		return
	}
	entry.Info("Itinerary generated")
}

func (l *Logger) LogSystem(component, action string, success bool, details Fields) {
	fields := Fields{
		"component": component,
		"action":    action,
		"success":   success,
		"type":      "system",
	}
	for k, v := range details {
		fields[k] = v
	}

	entry := l.WithFields(fields)
	if success {
		entry.Info("System event")
	} else {
		entry.Error("System event failed")
	}
}
