package echomw

import (
	"github.com/labstack/echo/v4"

	"github.com/reoring/blockkit/codec"
	"github.com/reoring/blockkit/middleware"
	"github.com/reoring/blockkit/surface"
)

// ValidateSurface decodes the request body as a Block Kit surface, stores it
// in the request context on success, or responds with middleware.ErrorPayload.
func ValidateSurface(opt codec.DecodeOpt) echo.MiddlewareFunc {
	opt = middleware.OrDefault(opt)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s, err := middleware.Decode(c.Request(), opt)
			if err != nil {
				status, body := middleware.ErrorPayload(err)
				return c.JSON(status, body)
			}
			c.SetRequest(c.Request().WithContext(middleware.ContextWithSurface(c.Request().Context(), s)))
			return next(c)
		}
	}
}

// GetSurface fetches the decoded surface from echo.Context.
func GetSurface(c echo.Context) (surface.Surface, bool) {
	return middleware.SurfaceFromContext(c.Request().Context())
}
