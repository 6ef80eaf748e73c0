package middleware

import (
	"recruitcrm/internal/auth"
	"recruitcrm/internal/common"

	"github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const identityContextKey = "identity"

var authFailures = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "recruitcrm",
	Subsystem: "auth",
	Name:      "failures_total",
	Help:      "Total number of requests rejected for a missing or invalid bearer token.",
})

// Authenticate exchanges the bearer token for a verified tenant id. Every failure gets the
// same 401 body before any handler runs.
func Authenticate(verifier auth.Verifier) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: identityContextKey,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return verifier.Verify(c.Request().Context(), token)
		},
		SuccessHandler: func(c echo.Context) {
			identity, ok := c.Get(identityContextKey).(*auth.Identity)
			if !ok {
				return
			}
			ctx := common.WithTenantID(c.Request().Context(), identity.TenantID)
			ctx = common.WithLogger(ctx, common.LoggerFromContext(ctx).WithField("tenant_id", identity.TenantID))
			c.SetRequest(c.Request().WithContext(ctx))
		},
		ErrorHandler: func(c echo.Context, err error) error {
			authFailures.Inc()
			common.LoggerFromContext(c.Request().Context()).WithError(err).Debug("authentication failed")
			return common.SendUnauthorizedError(c)
		},
	})
}
