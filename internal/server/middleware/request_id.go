package middleware

import (
	"github.com/gofrs/uuid"
	"github.com/labstack/echo/v4"
)

// HeaderRequestID carries the request identifier. Clients usually generate
// it; the proxy fills the gap and always echoes it back.
const HeaderRequestID = "X-oio-req-id"

// RequestID ensures every request carries a request identifier.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(HeaderRequestID)
			if id == "" {
				id = uuid.Must(uuid.NewV4()).String()
				c.Request().Header.Set(HeaderRequestID, id)
			}
			c.Response().Header().Set(HeaderRequestID, id)

			return next(c)
		}
	}
}
