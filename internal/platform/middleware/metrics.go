package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nursesim/prontuario/internal/platform/rest"
	"github.com/nursesim/prontuario/internal/platform/telemetry"
)

const unmatchedRoute = "unmatched"

// Metrics records request count, latency and in-flight requests. Requests
// are labelled by route template so ids never reach label values.
func Metrics(collector *telemetry.Collector) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if collector == nil {
				return next(c)
			}

			start := time.Now()
			collector.InFlightGauge.Inc()
			defer collector.InFlightGauge.Dec()

			err := next(c)

			status := c.Response().Status
			if err != nil {
				status = rest.StatusCode(err)
			}
			route := c.Path()
			if route == "" {
				route = unmatchedRoute
			}
			method := c.Request().Method
			code := strconv.Itoa(status)

			collector.RequestsTotal.WithLabelValues(method, route, code).Inc()
			collector.RequestDuration.WithLabelValues(method, route, code).Observe(time.Since(start).Seconds())
			return err
		}
	}
}
