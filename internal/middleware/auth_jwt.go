package middleware

import (
	"github.com/labstack/echo/v4"

	"authapp/internal/apperror"
	"authapp/internal/usecase"
)

// handlerがc.Get(CtxUserKey)で取り出す（*model.User）
const CtxUserKey = "current_user"

// 認証ヘッダなしで通すパス。完全一致のみ（パターンマッチはしない）。
// logoutは入っていない：bearer tokenが必要。
var pathsWithoutAuth = map[string]struct{}{
	"/auth/login":   {},
	"/auth/refresh": {},
	"/user/signup":  {},
	"/docs":         {},
	"/openapi.json": {},
}

// AuthJWTは全リクエストの入口でaccess tokenを検証するミドルウェア。
// 検証に通ったユーザーをcontextに載せてからhandlerへ渡す。
func AuthJWT(auth *usecase.AuthUsecase) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := pathsWithoutAuth[c.Request().URL.Path]; ok {
				return next(c)
			}

			user, err := auth.ValidateAccessTokenAndResolveUser(
				c.Request().Context(),
				c.Request().Header.Get("Authorization"),
			)
			if err != nil {
				e := apperror.From(err)
				c.Response().Header().Set("WWW-Authenticate", "Bearer")
				return c.JSON(e.Status, echo.Map{"detail": e.Message})
			}

			c.Set(CtxUserKey, user)
			return next(c)
		}
	}
}
