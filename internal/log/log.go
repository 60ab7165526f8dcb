package log

import (
	"os"

	"github.com/sirupsen/logrus"
	"mealmaster.app/planner/internal/config"
)

// Logger wraps logrus.Logger with the request and auth helpers used across
// the handlers.
type Logger struct {
	*logrus.Logger
}

type Fields map[string]interface{}

func New(cfg config.LoggingConfig) (*Logger, error) {
	logger := logrus.New()
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	logger.SetLevel(level)
	switch cfg.Format {
	case "text":
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	default:
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z",
		})
	}
	logger.SetOutput(os.Stdout)
	return &Logger{Logger: logger}, nil
}

func (l *Logger) WithFields(fields Fields) *logrus.Entry {
	return l.Logger.WithFields(logrus.Fields(fields))
}

func (l *Logger) LogRequest(method, path, requestId string, statusCode int, duration int64) {
	entry := l.WithFields(Fields{
		"method":      method,
		"path":        path,
		"request_id":  requestId,
		"status_code": statusCode,
		"duration_ms": duration,
		"type":        "request",
	})
	if statusCode >= 500 {
		entry.Error("HTTP request")
	} else {
		entry.Info("HTTP request")
	}
}

func (l *Logger) LogAuth(userId string, action string, success bool) {
	entry := l.WithFields(Fields{
		"user_id": userId,
		"action":  action,
		"success": success,
		"type":    "auth",
	})
	if success {
		entry.Info("Authentication event")
	} else {
		entry.Warn("Authentication failed")
	}
}

var defaultLogger *Logger

func Init(cfg config.LoggingConfig) error {
	logger, err := New(cfg)
	if err != nil {
		return err
	}
	defaultLogger = logger
	return nil
}

// Default falls back to a json logger at info level when Init was never called.
func Default() *Logger {
	if defaultLogger == nil {
		logger, _ := New(config.LoggingConfig{Level: "info", Format: "json"})
		defaultLogger = logger
	}
	return defaultLogger
}

func WithFields(fields Fields) *logrus.Entry {
	return Default().WithFields(fields)
}

func WithError(err error) *logrus.Entry {
	return Default().WithError(err)
}
