package server

import (
	"github.com/labstack/echo/v4"

	"authapp/internal/handler"
)

func RegisterRoutes(e *echo.Echo, authH *handler.AuthHandler, userH *handler.UserHandler) {
	e.POST("/auth/login", authH.Login)
	e.POST("/auth/refresh", authH.Refresh)
	e.POST("/auth/logout", authH.Logout)

	e.POST("/user/signup", userH.Signup)
	e.GET("/user/users/me", userH.Me)
}
