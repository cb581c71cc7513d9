package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
	"github.com/mintleaf-xyz/venue/base/log"
)

type GoMiddleware struct{}

func InitMiddleware() *GoMiddleware {
	return &GoMiddleware{}
}

func (m *GoMiddleware) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	})
}

// AddContext seeds every request with a bCtx.Ctx carrying the request
// scoped logger. Handlers fetch it with c.Get("ctx").
func (m *GoMiddleware) AddContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := bCtx.Ctx{Context: c.Request().Context(), Logger: log.Log()}
			ctx = bCtx.WithValues(ctx, log.Fields{
				"method": c.Request().Method,
				"path":   c.Path(),
			})
			c.Set("ctx", ctx)
			return next(c)
		}
	}
}

func (m *GoMiddleware) ResponseLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			ctx := c.Get("ctx").(bCtx.Ctx)
			fields := log.Fields{"status": c.Response().Status}
			if err != nil {
				fields["err"] = err
			}
			ctx.WithFields(fields).Info("request done")
			return err
		}
	}
}
