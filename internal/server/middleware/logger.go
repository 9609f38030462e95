package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/logger"
)

// Logger logs each request with its status, duration and request id.
func Logger(log logger.Logger) echo.MiddlewareFunc {
	log = log.WithPrefix("[http]")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			log.Infof("%s %s %d %s reqid=%s",
				req.Method, req.RequestURI, res.Status,
				time.Since(start).Round(time.Microsecond),
				res.Header().Get(HeaderRequestID),
			)
			return err
		}
	}
}
