package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"authapp/internal/apperror"
	"authapp/internal/domain/model"
	"authapp/internal/middleware"
	"authapp/internal/usecase"
)

type UserHandler struct {
	auth *usecase.AuthUsecase
}

// DIコンストラクタ
func NewUserHandler(auth *usecase.AuthUsecase) *UserHandler {
	return &UserHandler{auth: auth}
}

// SignupはPOST /user/signup
func (h *UserHandler) Signup(c echo.Context) error {
	var in usecase.SignupInput
	if err := c.Bind(&in); err != nil {
		return respondError(c, apperror.ErrValidation)
	}

	user, err := h.auth.Signup(c.Request().Context(), in)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, user)
}

// MeはGET /user/users/me。ミドルウェアが解決したユーザーの公開ビューを返す。
func (h *UserHandler) Me(c echo.Context) error {
	user, ok := c.Get(middleware.CtxUserKey).(*model.User)
	if !ok {
		return respondError(c, apperror.ErrAuthentication)
	}

	dto, err := h.auth.CurrentUser(user)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, dto)
}
