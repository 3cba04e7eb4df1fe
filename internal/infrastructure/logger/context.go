package logger

import (
	"context"

	"go.uber.org/zap"
)

// contextKey is a type for context keys used by the logger package
type contextKey string

const (
	// LoggerKey is the context key for the logger
	LoggerKey contextKey = "logger"
	// RequestIDKey is the context key for request ID
	RequestIDKey contextKey = "request_id"
	// DraftIDKey is the context key for the listing draft ID
	DraftIDKey contextKey = "draft_id"
)

// WithContext returns a new context with the logger attached.
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// FromContext retrieves the logger from context, returning a no-op logger
// when none was attached.
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(LoggerKey).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}

// WithRequestID stores the request id in the context and returns the
// enriched logger, also attached to the context.
func WithRequestID(ctx context.Context, logger *zap.Logger, requestID string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, RequestIDKey, requestID)
	enriched := logger.With(zap.String("request_id", requestID))
	return WithContext(ctx, enriched), enriched
}

// WithDraftID stores the draft id in the context and returns the enriched
// logger, also attached to the context.
func WithDraftID(ctx context.Context, logger *zap.Logger, draftID string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, DraftIDKey, draftID)
	enriched := logger.With(zap.String("draft_id", draftID))
	return WithContext(ctx, enriched), enriched
}

// GetRequestID retrieves the request id from context.
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// GetDraftID retrieves the draft id from context.
func GetDraftID(ctx context.Context) string {
	if draftID, ok := ctx.Value(DraftIDKey).(string); ok {
		return draftID
	}
	return ""
}
