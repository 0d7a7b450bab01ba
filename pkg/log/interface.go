// Package log provides the structured logging interface used by the
// cross-validation and hyperparameter search layers.
//
// The Logger interface is slog-compatible so that backends can be swapped:
// a zerolog implementation is the default, a log/slog implementation with
// cockroachdb stack trace extraction is available through NewSlogLogger,
// and TestLogger captures JSON lines for assertions.
//
// Example usage:
//
//	logger := log.GetLogger().With(
//	    log.ModelNameKey, "logreg",
//	    log.ComponentKey, "models",
//	)
//	logger.Info("fold finished",
//	    log.FoldKey, 1,
//	    log.AccuracyKey, 0.79,
//	)
package log

import (
	"context"
	"strings"

	"github.com/MalayAgr/Kaggle-Space-Titanic/pkg/errors"
)

// Logger defines a structured logging interface compatible with Go's log/slog.
//
// Fields are alternating key/value pairs. The With method returns a logger
// with fields pre-populated for every subsequent record.
type Logger interface {
	// Debug logs a debug-level message with optional structured fields.
	Debug(msg string, fields ...any)

	// Info logs an info-level message with optional structured fields.
	//
	// Example:
	//   logger.Info("Overall accuracy",
	//       log.AccuracyKey, 0.8012,
	//   )
	Info(msg string, fields ...any)

	// Warn logs a warning-level message with optional structured fields.
	Warn(msg string, fields ...any)

	// Error logs an error-level message with optional structured fields.
	// If the first field is an error, it is attached as the record's error
	// and the remaining fields are treated as key/value pairs.
	//
	// Example:
	//   logger.Error("fold training failed",
	//       err,
	//       log.FoldKey, 3,
	//   )
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits log records at the given level.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, compatible with slog.Level.
type Level int

// Standard logging levels, values are compatible with slog.Level.
const (
	LevelDebug Level = -4 // Detailed diagnostic information
	LevelInfo  Level = 0  // General operational information
	LevelWarn  Level = 4  // Warning conditions
	LevelError Level = 8  // Error conditions
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts "debug", "info", "warn" or "error" (any case) to a Level.
func ParseLevel(level string) (Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, errors.NewValidationError("log_level", "must be one of debug, info, warn, error", level)
	}
}

// splitError separates a leading error value from the key/value fields.
func splitError(fields []any) (error, []any) {
	if len(fields)%2 == 1 {
		if err, ok := fields[0].(error); ok {
			return err, fields[1:]
		}
	}
	return nil, fields
}
