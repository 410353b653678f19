package ginmw

import (
	"github.com/gin-gonic/gin"

	"github.com/reoring/blockkit/codec"
	"github.com/reoring/blockkit/middleware"
	"github.com/reoring/blockkit/surface"
)

// ValidateSurface decodes the request body as a Block Kit surface with opt
// (or middleware.DefaultDecodeOpt when zero), stores it in the request context
// and aborts with middleware.ErrorPayload when decoding or validation fails.
func ValidateSurface(opt codec.DecodeOpt) gin.HandlerFunc {
	opt = middleware.OrDefault(opt)
	return func(c *gin.Context) {
		s, err := middleware.Decode(c.Request, opt)
		if err != nil {
			status, body := middleware.ErrorPayload(err)
			c.AbortWithStatusJSON(status, body)
			return
		}
		c.Request = c.Request.WithContext(middleware.ContextWithSurface(c.Request.Context(), s))
		c.Next()
	}
}

// GetSurface fetches the decoded surface from gin.Context.
func GetSurface(c *gin.Context) (surface.Surface, bool) {
	return middleware.SurfaceFromContext(c.Request.Context())
}
