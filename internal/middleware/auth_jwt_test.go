package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"authapp/internal/domain/model"
	"authapp/internal/middleware"
	"authapp/internal/repository"
	"authapp/internal/token"
	"authapp/internal/usecase"
	"authapp/internal/validator"
)

// ユーザー参照だけできれば十分なfake
type fakeUserRepo struct {
	users map[string]*model.User
}

func (r *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	r.users[user.UserID] = user
	return nil
}

func (r *fakeUserRepo) FindByUserID(ctx context.Context, userID string) (*model.User, error) {
	if u, ok := r.users[userID]; ok {
		return u, nil
	}
	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func newTestMiddleware(t *testing.T) (echo.MiddlewareFunc, *token.Codec) {
	t.Helper()

	codec, err := token.NewCodec("HS256", []byte("middleware-test-secret"), nil)
	require.NoError(t, err)

	users := &fakeUserRepo{users: map[string]*model.User{
		"user-1": {UserID: "user-1", FullName: "Alice", Email: "alice@example.com"},
	}}

	auth := usecase.NewAuthUsecase(
		codec,
		usecase.NewBcryptPasswordHasher(4),
		validator.NewAuthValidator(),
		users, nil, nil,
		15*time.Minute,
		time.Hour,
	)

	return middleware.AuthJWT(auth), codec
}

// ミドルウェアを通過した後のhandler。contextのユーザーを返すだけ。
func echoUser(c echo.Context) error {
	user, _ := c.Get(middleware.CtxUserKey).(*model.User)
	if user == nil {
		return c.JSON(http.StatusOK, echo.Map{"user": nil})
	}
	return c.JSON(http.StatusOK, echo.Map{"user": user.UserID})
}

func doRequest(t *testing.T, mw echo.MiddlewareFunc, path string, header string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	e.Use(mw)
	e.GET(path, echoUser)
	e.POST(path, echoUser)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthJWT_AllowListPathSkipsAuth(t *testing.T) {
	mw, _ := newTestMiddleware(t)

	// ヘッダなしでも通る
	rec := doRequest(t, mw, "/auth/login", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthJWT_ProtectedPathWithoutHeader(t *testing.T) {
	mw, _ := newTestMiddleware(t)

	rec := doRequest(t, mw, "/user/users/me", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Unauthorized access", body["detail"])
}

func TestAuthJWT_ProtectedPathWithBadToken(t *testing.T) {
	mw, _ := newTestMiddleware(t)

	rec := doRequest(t, mw, "/user/users/me", "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
}

func TestAuthJWT_ValidTokenSetsContextUser(t *testing.T) {
	mw, codec := newTestMiddleware(t)

	signed, _, err := codec.Encode(token.Claims{Subject: "user-1"}, time.Minute)
	require.NoError(t, err)

	rec := doRequest(t, mw, "/user/users/me", "Bearer "+signed)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "user-1", body["user"])
}

// logoutは許可リストに入っていない（tokenなしのlogoutはできない）
func TestAuthJWT_LogoutRequiresToken(t *testing.T) {
	mw, _ := newTestMiddleware(t)

	rec := doRequest(t, mw, "/auth/logout", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
