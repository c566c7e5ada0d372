package internal

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
)

// ServiceName tags every log line written by the storefront.
const ServiceName = "gymsup-storefront"

// redactedKeys never reach the log output with their values.
var redactedKeys = map[string]bool{
	"token":         true,
	"password":      true,
	"authorization": true,
	"client_secret": true,
}

// ParseLevel maps a LOG_LEVEL value to a slog level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}

// NewLogger writes JSON in production and text elsewhere. Every record
// carries the service name and environment.
func NewLogger(w io.Writer, env string, level string) *slog.Logger {
	lvl, levelErr := ParseLevel(level)

	opts := &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if redactedKeys[strings.ToLower(a.Key)] {
				return slog.String(a.Key, "[redacted]")
			}
			return a
		},
	}

	var h slog.Handler
	switch env {
	case "prod", "production":
		redact := opts.ReplaceAttr
		opts.ReplaceAttr = func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.String(slog.TimeKey, a.Value.Time().UTC().Format(time.RFC3339Nano))
			}
			return redact(groups, a)
		}
		h = slog.NewJSONHandler(w, opts)
	default:
		h = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(h).With(
		slog.String("service", ServiceName),
		slog.String("env", env),
	)
	if levelErr != nil {
		logger.Warn("invalid log level, using info", "error", levelErr)
	}
	return logger
}
