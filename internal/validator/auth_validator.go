package validator

import (
	"context"
	"net/mail"
	"strings"
	"unicode/utf8"

	"authapp/internal/apperror"
	"authapp/internal/usecase"
)

type authValidator struct{}

// Usecaseにはinterfaceで注入する
func NewAuthValidator() usecase.AuthValidator {
	return &authValidator{}
}

// サインアップの入力を検証する。DBには触らない（重複チェックはusecase側）。
func (v *authValidator) ValidateSignup(ctx context.Context, in usecase.SignupInput) error {
	// full_nameは3〜50文字
	name := strings.TrimSpace(in.FullName)
	if n := utf8.RuneCountInString(name); n < 3 || n > 50 {
		return apperror.ErrValidation
	}

	// email形式
	email := strings.TrimSpace(in.Email)
	if email == "" {
		return apperror.ErrValidation
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return apperror.ErrValidation
	}

	// パスワードは8〜30文字
	if n := len(in.Password); n < 8 || n > 30 {
		return apperror.ErrValidation
	}
	if n := len(in.RepeatPassword); n < 8 || n > 30 {
		return apperror.ErrValidation
	}

	// 確認用と一致しなければここで終わり（ストレージには触らせない）
	if in.Password != in.RepeatPassword {
		return apperror.ErrPasswordMismatch
	}

	return nil
}
