package common

import (
	"context"

	"github.com/sirupsen/logrus"
)

const loggerKey contextKey = "logger"

// WithLogger stores a request scoped log entry in ctx
func WithLogger(ctx context.Context, entry *logrus.Entry) context.Context {
	return context.WithValue(ctx, loggerKey, entry)
}

// LoggerFromContext returns the request logger, or the standard logger when none was attached.
func LoggerFromContext(ctx context.Context) *logrus.Entry {
	if entry, ok := ctx.Value(loggerKey).(*logrus.Entry); ok {
		return entry
	}
	return logrus.NewEntry(logrus.StandardLogger())
}
