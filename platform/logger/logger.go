// Package logger provides structured logging infrastructure for the application.
// This is part of the platform layer and contains no business logic.
package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

// Context key types for storing values in context
type contextKey string

const (
	// RequestIDKey is the context key for request ID
	RequestIDKey contextKey = "request_id"
)

// Logger wraps slog.Logger for structured logging
type Logger struct {
	*slog.Logger
}

// New creates a new logger based on environment
func New(env string) *Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	if strings.EqualFold(env, "development") {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithContext returns a logger with context values extracted.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}

	if requestID, ok := ctx.Value(RequestIDKey).(string); ok && requestID != "" {
		return l.WithRequestID(requestID)
	}

	return l
}

// WithRequestID returns a logger with request ID
func (l *Logger) WithRequestID(requestID string) *Logger {
	return &Logger{
		Logger: l.With(slog.String("request_id", requestID)),
	}
}

// HTTPRequest logs an HTTP request
func (l *Logger) HTTPRequest(method, path string, status int, latencyMs float64, clientIP string) {
	l.Info("http_request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Float64("latency_ms", latencyMs),
		slog.String("client_ip", clientIP),
	)
}

// FetchError logs a failed record-set fetch.
func (l *Logger) FetchError(source string, err error) {
	l.Error("record_fetch_error",
		slog.String("source", source),
		slog.String("error", err.Error()),
	)
}

// StripeUnavailable logs a degraded payment-processor fetch. The dashboard
// falls back to internal ledger sums, so this is a warning, not an error.
func (l *Logger) StripeUnavailable(err error) {
	l.Warn("stripe_unavailable",
		slog.String("error", err.Error()),
	)
}

// RefreshCompleted logs a completed snapshot refresh.
func (l *Logger) RefreshCompleted(engagements, jobs, technicians, messages int, alerts int, durationMs float64) {
	l.Info("snapshot_refresh_completed",
		slog.Int("engagements", engagements),
		slog.Int("jobs", jobs),
		slog.Int("technicians", technicians),
		slog.Int("messages", messages),
		slog.Int("attention_items", alerts),
		slog.Float64("duration_ms", durationMs),
	)
}

// DatabaseError logs database errors
func (l *Logger) DatabaseError(operation string, err error) {
	l.Error("database_error",
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	)
}
