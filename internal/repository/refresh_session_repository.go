package repository

import (
	"context"
	"errors"

	"authapp/internal/domain/model"
)

var ErrSessionNotFound = errors.New("refresh session not found")

// refresh sessionの保存・取得・失効
type RefreshSessionRepository interface {
	// 新しいセッション行を保存する。
	Create(ctx context.Context, sess *model.RefreshSession) error
	// jtiで1件検索する。見つからなければErrSessionNotFound。
	FindByJTI(ctx context.Context, jti string) (*model.RefreshSession, error)
	// (user_id, device_id) の行をまとめてrevokedにする。
	// 対象0件でも成功（冪等）。削除はしない。
	RevokeAllForUserDevice(ctx context.Context, userID string, deviceID string) error
}
