package log

import (
	"context"
	"sync/atomic"
)

// Verbosity is a Logger with an adjustable minimum level in front of another
// Logger. Loggers derived through With share the same level, so lowering the
// verbosity of a component silences every child logger it handed out.
type Verbosity struct {
	level *atomic.Int64
	base  Logger
}

// NewVerbosity wraps base with an initial minimum level.
func NewVerbosity(base Logger, level Level) *Verbosity {
	v := &Verbosity{level: new(atomic.Int64), base: base}
	v.level.Store(int64(level))
	return v
}

// Level returns the current minimum level.
func (v *Verbosity) Level() Level {
	return Level(v.level.Load())
}

// SetLevel changes the minimum level and returns the previous one.
func (v *Verbosity) SetLevel(level Level) Level {
	return Level(v.level.Swap(int64(level)))
}

// Suppress raises the minimum level to level until the returned function is
// called, which restores the level in effect before Suppress. It is meant to
// be deferred so the level is restored on every return path:
//
//	restore := v.Suppress(log.LevelWarn)
//	defer restore()
func (v *Verbosity) Suppress(level Level) (restore func()) {
	prev := v.SetLevel(level)
	var once atomic.Bool
	return func() {
		if once.CompareAndSwap(false, true) {
			v.SetLevel(prev)
		}
	}
}

func (v *Verbosity) allows(level Level) bool {
	return level >= v.Level()
}

func (v *Verbosity) Debug(msg string, fields ...any) {
	if v.allows(LevelDebug) {
		v.base.Debug(msg, fields...)
	}
}

func (v *Verbosity) Info(msg string, fields ...any) {
	if v.allows(LevelInfo) {
		v.base.Info(msg, fields...)
	}
}

func (v *Verbosity) Warn(msg string, fields ...any) {
	if v.allows(LevelWarn) {
		v.base.Warn(msg, fields...)
	}
}

func (v *Verbosity) Error(msg string, fields ...any) {
	if v.allows(LevelError) {
		v.base.Error(msg, fields...)
	}
}

func (v *Verbosity) With(fields ...any) Logger {
	return &Verbosity{level: v.level, base: v.base.With(fields...)}
}

func (v *Verbosity) Enabled(ctx context.Context, level Level) bool {
	return v.allows(level) && v.base.Enabled(ctx, level)
}
