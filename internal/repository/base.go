// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"scribe/internal/observability"

	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, pgUniqueViolation)
}

// instrumented starts a repository span and latency timer. The returned
// func ends both and records err on the span.
func instrumented(ctx context.Context, metrics *observability.DatabaseMetrics, table, method string) (context.Context, func(err error)) {
	ctx, span := observability.StartRepositorySpan(ctx, method, table)
	done := metrics.TrackQuery(method)
	return ctx, func(err error) {
		done()
		endSpan(span, err)
	}
}

func endSpan(span trace.Span, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = nil
	}
	observability.EndSpan(span, err)
}
