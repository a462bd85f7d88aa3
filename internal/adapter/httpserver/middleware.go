package httpserver

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/pscheid92/sortlist/internal/adapter/metrics"
	"github.com/pscheid92/sortlist/internal/platform/correlation"
	apperrors "github.com/pscheid92/sortlist/internal/platform/errors"
)

// correlationMiddleware reuses a sane X-Request-ID from the client or mints one,
// echoes it back and stores it in the request context for log correlation.
func correlationMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := correlation.FromHeader(c.Request().Header.Get(correlation.Header))
		c.Response().Header().Set(correlation.Header, id)

		ctx := correlation.WithID(c.Request().Context(), id)
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

// ErrorHandlingMiddleware renders handler errors as structured JSON. Echo's own
// HTTP errors (404, 405, bind failures raised by echo) pass through untouched.
// m may be nil.
func ErrorHandlingMiddleware(m *metrics.HTTPMetrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			var structuredErr *apperrors.Error
			if !errors.As(err, &structuredErr) {
				var httpErr *echo.HTTPError
				if errors.As(err, &httpErr) {
					return err
				}
				structuredErr = apperrors.AsStructuredError(err)
			}

			logError(c, structuredErr)
			if m != nil {
				m.ErrorsTotal.WithLabelValues(string(structuredErr.Type)).Inc()
			}

			if err := c.JSON(structuredErr.HTTPStatus(), structuredErr.ToResponse()); err != nil {
				return fmt.Errorf("failed to write error response: %w", err)
			}
			return nil
		}
	}
}

func logError(c echo.Context, err *apperrors.Error) {
	ctx := c.Request().Context()
	attrs := []any{
		"error_type", err.Type,
		"message", err.Message,
		"path", c.Request().URL.Path,
		"method", c.Request().Method,
		"status", err.HTTPStatus(),
	}

	for k, v := range err.Context {
		attrs = append(attrs, k, v)
	}

	switch err.Type {
	case apperrors.TypeValidation:
		if err.Cause != nil {
			attrs = append(attrs, "cause", err.Cause)
		}
		slog.InfoContext(ctx, "Validation error", attrs...)
	case apperrors.TypeInternal:
		if err.Cause != nil {
			attrs = append(attrs, "cause", err.Cause)
		}
		slog.ErrorContext(ctx, "Internal error", attrs...)
	default:
		slog.ErrorContext(ctx, "Unknown error type", attrs...)
	}
}
