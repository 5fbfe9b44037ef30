package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/user_service/internal/middleware"
)

type Deps struct {
	AuthHandler *AuthHTTP
	UserHandler *UserHTTP
	AuthMW      *middleware.Auth
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.POST("/register", d.AuthHandler.Register)
	e.POST("/login", d.AuthHandler.Login)
	e.POST("/refresh", d.AuthHandler.Refresh)
	e.POST("/change-password", d.AuthHandler.ChangePassword)

	private := e.Group("")
	private.Use(d.AuthMW.RequireAuth)

	private.GET("/me", d.UserHandler.Me)
	private.GET("/search", d.UserHandler.Search)
	private.GET("/", d.UserHandler.List)
	private.POST("/", d.UserHandler.Add)
	private.GET("/:id", d.UserHandler.GetByID)
	private.PUT("/:id", d.UserHandler.Update)
	private.DELETE("/:id", d.UserHandler.Delete)
}
