package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"authapp/internal/apperror"
	"authapp/internal/device"
	"authapp/internal/domain/model"
	"authapp/internal/middleware"
	"authapp/internal/usecase"
)

// refresh tokenを運ぶCookie名
const refreshCookieName = "refresh_token"

// Cookieを有効にするパス。refreshエンドポイント以外には送らせない。
const refreshCookiePath = "/auth/refresh"

// login/refresh/logoutのレスポンス
type TokenOutput struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

type AuthHandler struct {
	auth         *usecase.AuthUsecase
	cookieSecure bool
}

// DIコンストラクタ
func NewAuthHandler(auth *usecase.AuthUsecase, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		auth:         auth,
		cookieSecure: cookieSecure,
	}
}

// LoginはPOST /auth/login。form（username=email, password）で受ける。
func (h *AuthHandler) Login(c echo.Context) error {
	email := c.FormValue("username")
	password := c.FormValue("password")

	dev, err := device.FromEcho(c)
	if err != nil {
		return respondError(c, err)
	}

	user, err := h.auth.Authenticate(c.Request().Context(), email, password)
	if err != nil {
		return respondError(c, err)
	}

	pair, err := h.auth.IssueTokenPair(c.Request().Context(), user.UserID, dev)
	if err != nil {
		return respondError(c, err)
	}

	h.setRefreshCookie(c, pair.RefreshToken, pair.RefreshExpiresAt)

	return c.JSON(http.StatusOK, TokenOutput{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "bearer",
	})
}

// RefreshはPOST /auth/refresh。refresh tokenはCookieから読む。
func (h *AuthHandler) Refresh(c echo.Context) error {
	cookie, err := c.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		return respondError(c, apperror.ErrMissingRefreshToken)
	}

	dev, err := device.FromEcho(c)
	if err != nil {
		return respondError(c, err)
	}

	pair, err := h.auth.RotateTokenPair(c.Request().Context(), cookie.Value, dev)
	if err != nil {
		return respondError(c, err)
	}

	h.setRefreshCookie(c, pair.RefreshToken, pair.RefreshExpiresAt)

	return c.JSON(http.StatusOK, TokenOutput{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "bearer",
	})
}

// LogoutはPOST /auth/logout。ミドルウェアを通ったユーザーの(user, device)を失効する。
func (h *AuthHandler) Logout(c echo.Context) error {
	user, ok := c.Get(middleware.CtxUserKey).(*model.User)
	if !ok {
		return respondError(c, apperror.ErrAuthentication)
	}

	dev, err := device.FromEcho(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.auth.RevokeSessions(c.Request().Context(), user.UserID, dev.DeviceID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"logout": true})
}

// refresh tokenをhttp-onlyのCookieに入れる。期限はtokenの絶対期限と揃える。
func (h *AuthHandler) setRefreshCookie(c echo.Context, plainRefresh string, expiresAt time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    plainRefresh,
		Path:     refreshCookiePath,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  expiresAt,
	})
}

// 型付きエラーをHTTPレスポンスに変換する。401にはWWW-Authenticateを付ける。
func respondError(c echo.Context, err error) error {
	e := apperror.From(err)
	if e.Status == http.StatusUnauthorized {
		c.Response().Header().Set("WWW-Authenticate", "Bearer")
	}
	return c.JSON(e.Status, echo.Map{"detail": e.Message})
}
