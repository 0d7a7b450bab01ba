package log

import (
	"context"
	"io"

	"github.com/MalayAgr/Kaggle-Space-Titanic/pkg/errors"
	"github.com/rs/zerolog"
)

// ZerologLogger is the default Logger backend.
type ZerologLogger struct {
	logger zerolog.Logger
}

// NewZerologLogger writes JSON lines to w, dropping records below level.
func NewZerologLogger(w io.Writer, level Level) *ZerologLogger {
	return &ZerologLogger{
		logger: zerolog.New(w).Level(toZerologLevel(level)).With().Timestamp().Logger(),
	}
}

// NewConsoleLogger is a human-readable variant used by the example programs.
func NewConsoleLogger(w io.Writer, level Level) *ZerologLogger {
	return NewZerologLogger(zerolog.ConsoleWriter{Out: w, NoColor: true}, level)
}

func toZerologLevel(level Level) zerolog.Level {
	switch {
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

func (z *ZerologLogger) Debug(msg string, fields ...any) {
	z.logger.Debug().Fields(fields).Msg(msg)
}

func (z *ZerologLogger) Info(msg string, fields ...any) {
	z.logger.Info().Fields(fields).Msg(msg)
}

func (z *ZerologLogger) Warn(msg string, fields ...any) {
	z.logger.Warn().Fields(fields).Msg(msg)
}

func (z *ZerologLogger) Error(msg string, fields ...any) {
	err, rest := splitError(fields)
	ev := z.logger.Error()
	if err != nil {
		ev = ev.Err(err)
		var m zerolog.LogObjectMarshaler
		if errors.As(err, &m) {
			ev = ev.EmbedObject(m)
		}
	}
	ev.Fields(rest).Msg(msg)
}

func (z *ZerologLogger) With(fields ...any) Logger {
	return &ZerologLogger{logger: z.logger.With().Fields(fields).Logger()}
}

func (z *ZerologLogger) Enabled(_ context.Context, level Level) bool {
	return toZerologLevel(level) >= z.logger.GetLevel()
}

// InstallWarningHandler routes pkg/errors warnings through this logger.
// Warnings implementing zerolog.LogObjectMarshaler are logged with their
// structured fields.
func (z *ZerologLogger) InstallWarningHandler() {
	logger := z.logger
	errors.SetZerologWarnFunc(func(w error) {
		ev := logger.Warn()
		var m zerolog.LogObjectMarshaler
		if errors.As(w, &m) {
			ev = ev.EmbedObject(m)
		}
		ev.Msg(w.Error())
	})
}
