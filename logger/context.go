package logger

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// SessionIDKey is the log field naming the storefront session.
const SessionIDKey = "session_id"

type fieldsKey struct{}

// WithFields returns a context whose logger carries fields after any already
// attached ones.
func WithFields(ctx context.Context, fields ...zap.Field) context.Context {
	prev := fieldsFrom(ctx)
	merged := make([]zap.Field, 0, len(prev)+len(fields))
	merged = append(merged, prev...)
	merged = append(merged, fields...)
	return context.WithValue(ctx, fieldsKey{}, merged)
}

func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return WithFields(ctx, zap.String(SessionIDKey, sessionID))
}

// SessionIDFrom returns the most recently attached session id, or "".
func SessionIDFrom(ctx context.Context) string {
	fields := fieldsFrom(ctx)
	for i := len(fields) - 1; i >= 0; i-- {
		if f := fields[i]; f.Key == SessionIDKey && f.Type == zapcore.StringType {
			return f.String
		}
	}
	return ""
}

// FromCtx returns the global logger with the context's fields attached.
func FromCtx(ctx context.Context) *zap.Logger {
	fields := fieldsFrom(ctx)
	if len(fields) == 0 {
		return L()
	}
	return L().With(fields...)
}

func fieldsFrom(ctx context.Context) []zap.Field {
	fields, _ := ctx.Value(fieldsKey{}).([]zap.Field)
	return fields
}
