package server

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"authapp/internal/handler"
)

// Newはechoエンジンを組み立てる。
// 認証ミドルウェアはambientな登録ではなく明示的に渡してもらう。
func New(authMW echo.MiddlewareFunc, authH *handler.AuthHandler, userH *handler.UserHandler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(authMW)

	RegisterRoutes(e, authH, userH)

	return e
}

func Start(e *echo.Echo, addr string) error {
	return e.Start(addr)
}
