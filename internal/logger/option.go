package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// levelOverride replaces the level check of the wrapped core.
type levelOverride struct {
	zapcore.Core

	level zapcore.Level
}

func (c *levelOverride) Enabled(l zapcore.Level) bool {
	return c.level.Enabled(l)
}

//nolint:gocritic // AddCore requires ent to be passed by value.
func (c *levelOverride) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if !c.Enabled(ent.Level) {
		return ce
	}

	return ce.AddCore(ent, c)
}

//nolint:ireturn,nolintlint // Returning zapcore.Core is intended for zap integration.
func (c *levelOverride) With(fields []zapcore.Field) zapcore.Core {
	return &levelOverride{Core: c.Core.With(fields), level: c.level}
}

// WithLevel pins a logger to lvl regardless of the global level. The
// --quiet flag uses it to keep only warnings and errors.
//
//nolint:ireturn,nolintlint // Returning zap.Option is intended for zap integration.
func WithLevel(lvl zapcore.Level) zap.Option {
	return zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return &levelOverride{Core: core, level: lvl}
	})
}
