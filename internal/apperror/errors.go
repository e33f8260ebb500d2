package apperror

import (
	"errors"
	"net/http"
)

// ErrorはHTTPステータスとメッセージを持つアプリ共通エラー。
// usecaseはこの値をそのまま返し、handlerがステータスに変換する。
type Error struct {
	Status  int    // HTTPステータスコード
	Code    string // ログ・テスト用の識別子
	Message string // クライアントに返すメッセージ
}

func (e *Error) Error() string { return e.Message }

var (
	// 401 email違いかパスワード違いかは漏らさない
	ErrIncorrectCredentials = &Error{Status: http.StatusUnauthorized, Code: "INCORRECT_CREDENTIALS", Message: "Incorrect email or password"}

	// 401 署名不正・壊れたtoken・subなし
	ErrInvalidToken = &Error{Status: http.StatusUnauthorized, Code: "INVALID_TOKEN", Message: "Could not validate credentials"}

	// 401 refresh tokenの意味的検証で落ちた（jtiなし・device違い・行なし・revoked）
	ErrTokenValidation = &Error{Status: http.StatusUnauthorized, Code: "TOKEN_VALIDATION", Message: "Invalid token"}

	// 401 access token経路の失敗はすべてこれ
	ErrAuthentication = &Error{Status: http.StatusUnauthorized, Code: "AUTHENTICATION", Message: "Unauthorized access"}

	// 409 email重複
	ErrUserAlreadyExists = &Error{Status: http.StatusConflict, Code: "USER_ALREADY_EXISTS", Message: "Email already exists"}

	// 403 refresh tokenの期限切れ
	ErrSessionExpired = &Error{Status: http.StatusForbidden, Code: "SESSION_EXPIRED", Message: "Session expired"}

	// 403 無効化されたユーザー
	ErrUserInactive = &Error{Status: http.StatusForbidden, Code: "USER_INACTIVE", Message: "Inactive user"}

	// 403 Cookieにrefresh tokenがない
	ErrMissingRefreshToken = &Error{Status: http.StatusForbidden, Code: "MISSING_REFRESH_TOKEN", Message: "Could not find refresh token in Cookie header"}

	// 400 password != repeat_password
	ErrPasswordMismatch = &Error{Status: http.StatusBadRequest, Code: "PASSWORD_MISMATCH", Message: "Password mismatch"}

	// 400 入力不正
	ErrValidation = &Error{Status: http.StatusBadRequest, Code: "VALIDATION_ERROR", Message: "Validation error"}

	// 400 User-AgentかIPが取れない
	ErrMissingDeviceContext = &Error{Status: http.StatusBadRequest, Code: "MISSING_DEVICE_CONTEXT", Message: "Missing device context"}

	// 500 想定外
	ErrInternal = &Error{Status: http.StatusInternalServerError, Code: "INTERNAL", Message: "Internal server error"}
)

// Fromは任意のerrorを*Errorに変換する。未知のエラーは500扱い。
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return ErrInternal
}
