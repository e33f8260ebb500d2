package repository

import (
	"context"
	"errors"

	"authapp/internal/domain/model"
)

// ユーザーが見つからないを統一
var ErrUserNotFound = errors.New("user not found")

// email重複（unique違反）
var ErrDuplicateEmail = errors.New("email already exists")

// ユーザーの保存・取得を約束
type UserRepository interface {
	// 新規ユーザー作成。email重複はErrDuplicateEmail。
	Create(ctx context.Context, user *model.User) error
	// user_id（uuid5）からユーザーを1件取得する。
	FindByUserID(ctx context.Context, userID string) (*model.User, error)
	// emailからユーザーを1件取得する。
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}
