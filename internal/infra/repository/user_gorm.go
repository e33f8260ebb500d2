package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"authapp/internal/domain/model"
	repo "authapp/internal/repository"
)

type userGormRepository struct {
	db *gorm.DB
}

// GORM実装。main.goでnewしてusecaseに注入する。
func NewUserGormRepository(db *gorm.DB) repo.UserRepository {
	return &userGormRepository{db: db}
}

// ユーザーを新規作成。email unique違反はErrDuplicateEmailにする。
func (r *userGormRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repo.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// user_idでユーザーを1件取得
func (r *userGormRepository) FindByUserID(ctx context.Context, userID string) (*model.User, error) {
	var u model.User

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&u).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repo.ErrUserNotFound
		}
		return nil, err
	}

	return &u, nil
}

// emailでユーザーを1件取得
func (r *userGormRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User

	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&u).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repo.ErrUserNotFound
		}
		return nil, err
	}

	return &u, nil
}
