package middleware

import (
	"time"

	"recruitcrm/internal/common"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// RequestLogger attaches a request scoped logrus entry to the context and logs one line per request.
// It must run after echo's RequestID middleware.
func RequestLogger(logger *logrus.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()
			entry := logger.WithFields(logrus.Fields{
				"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
				"method":     req.Method,
				"path":       req.URL.Path,
			})
			c.SetRequest(req.WithContext(common.WithLogger(req.Context(), entry)))

			if err := next(c); err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			fields := logrus.Fields{
				"status":     status,
				"latency_ms": time.Since(start).Milliseconds(),
				"bytes_out":  c.Response().Size,
			}
			done := common.LoggerFromContext(c.Request().Context()).WithFields(fields)
			switch {
			case status >= 500:
				done.Error("request failed")
			case status >= 400:
				done.Warn("request rejected")
			default:
				done.Info("request handled")
			}
			return nil
		}
	}
}
