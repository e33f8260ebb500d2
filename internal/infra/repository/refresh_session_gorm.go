package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"authapp/internal/domain/model"
	repo "authapp/internal/repository"
)

type refreshSessionGormRepository struct {
	db *gorm.DB
}

// GORM実装
func NewRefreshSessionGormRepository(db *gorm.DB) repo.RefreshSessionRepository {
	return &refreshSessionGormRepository{db: db}
}

// セッション行を保存
func (r *refreshSessionGormRepository) Create(ctx context.Context, sess *model.RefreshSession) error {
	if err := r.db.WithContext(ctx).Create(sess).Error; err != nil {
		return err
	}
	return nil
}

// jtiで1件検索
func (r *refreshSessionGormRepository) FindByJTI(ctx context.Context, jti string) (*model.RefreshSession, error) {
	var sess model.RefreshSession

	err := r.db.WithContext(ctx).
		Where("jti = ?", jti).
		First(&sess).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repo.ErrSessionNotFound
		}
		return nil, err
	}

	return &sess, nil
}

// (user_id, device_id)の行をまとめてrevokedにする。0件でも成功（冪等）。
func (r *refreshSessionGormRepository) RevokeAllForUserDevice(ctx context.Context, userID string, deviceID string) error {
	return r.db.WithContext(ctx).
		Model(&model.RefreshSession{}).
		Where("user_id = ? AND device_id = ?", userID, deviceID).
		Update("revoked", true).Error
}
