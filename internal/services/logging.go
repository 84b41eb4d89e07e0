package services

import (
	"context"
	"log/slog"
	"time"
)

// ServiceLogger provides structured operation logging for the service layer.
// It normalizes the level by outcome: not-found and validation problems are
// expected traffic, not errors.
type ServiceLogger struct {
	logger *slog.Logger
}

func NewServiceLogger(logger *slog.Logger, component string) *ServiceLogger {
	return &ServiceLogger{
		logger: logger.With("service", "exam-service", "component", component),
	}
}

// LogOperation records one service call with its outcome and duration.
func (l *ServiceLogger) LogOperation(ctx context.Context, operation, sessionID string, duration time.Duration, err error) {
	level := slog.LevelInfo
	status := "success"

	if err != nil {
		level = slog.LevelError
		status = "error"

		if IsValidation(err) {
			level = slog.LevelWarn
			status = "validation_error"
		} else if IsNotFound(err) {
			level = slog.LevelInfo
			status = "not_found"
		}
	}

	attrs := []any{
		"operation", operation,
		"session_id", sessionID,
		"status", status,
		"duration", duration,
	}
	if err != nil {
		attrs = append(attrs, "error", err.Error())
	}

	l.logger.Log(ctx, level, "service operation", attrs...)
}
