package middleware

import (
	"net/http"
	"notesapi/cmd/internal/utils/apierror"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"golang.org/x/time/rate"
)

const rateLimiterExpiry = 3 * time.Minute

// NewRequestID tags every request (and its response) with an X-Request-Id,
// keeping the one sent by the client if present.
func NewRequestID() echo.MiddlewareFunc {
	return echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: uuid.NewString,
	})
}

// NewRequestLogger logs one line per request once the response is written.
func NewRequestLogger() echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			if v.Error != nil {
				log.Errorf("%s %s -> %d (%v) [%s]: %v", v.Method, v.URI, v.Status, v.Latency, v.RequestID, v.Error)
				return nil
			}
			log.Infof("%s %s -> %d (%v) [%s]", v.Method, v.URI, v.Status, v.Latency, v.RequestID)
			return nil
		},
	})
}

// NewRateLimiter limits every client IP to rps requests per second, allowing
// bursts of up to burst requests.
func NewRateLimiter(rps, burst int) echo.MiddlewareFunc {
	store := echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(rps),
		Burst:     burst,
		ExpiresIn: rateLimiterExpiry,
	})

	return echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			log.Warnf("rate limiter could not identify %s: %v", c.Request().RemoteAddr, err)
			return c.JSON(http.StatusForbidden, apierror.ForbiddenError)
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			log.Debugf("rate limit exceeded for %s", identifier)
			return c.JSON(http.StatusTooManyRequests, apierror.TooManyRequestsError)
		},
	})
}
