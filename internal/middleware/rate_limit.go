package middleware

import (
	"encoding/json"
	"net/http"

	"recruitcrm/internal/common"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/ulule/limiter/v3"
	limiterhttp "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RateLimit limits requests per client IP. rate uses the limiter format, e.g. "300-M".
// An empty rate disables limiting.
func RateLimit(rate string, trustForwardHeader bool) (echo.MiddlewareFunc, error) {
	if rate == "" {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }, nil
	}
	parsed, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, errors.Wrapf(err, "parse rate limit %q", rate)
	}
	instance := limiter.New(memory.NewStore(), parsed, limiter.WithTrustForwardHeader(trustForwardHeader))
	mw := limiterhttp.NewMiddleware(instance, limiterhttp.WithLimitReachedHandler(limitReached))
	return echo.WrapMiddleware(mw.Handler), nil
}

func limitReached(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	w.WriteHeader(http.StatusTooManyRequests)
	_ = json.NewEncoder(w).Encode(common.CreateErrorResponse(common.CodeRateLimited, "Too many requests", nil))
}
