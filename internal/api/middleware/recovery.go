package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"

	domain "github.com/donaldgifford/travel-search/pkg/types"
)

// Recovery recovers handler panics. The panic and its stack are logged and,
// unless the handler already started writing, the client gets a failed
// ServiceResponse with status 500. http.ErrAbortHandler is re-raised so the
// server can abort the connection.
func Recovery(log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				if e, ok := r.(error); ok && errors.Is(e, http.ErrAbortHandler) {
					panic(r)
				}

				req := c.Request()
				log.Error("panic recovered",
					"error", fmt.Sprint(r),
					"method", req.Method,
					"path", req.URL.Path,
					"request_id", c.Get(requestIDKey),
					"committed", c.Response().Committed,
					"stack", string(debug.Stack()),
				)

				if c.Response().Committed {
					err = nil
					return
				}
				err = c.JSON(http.StatusInternalServerError, domain.ServiceResponse[any]{
					Success: false,
					Error:   "internal server error",
				})
			}()
			return next(c)
		}
	}
}
