package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"authapp/internal/domain/model"
	repo "authapp/internal/repository"
)

type deviceGormRepository struct {
	db *gorm.DB
}

// GORM実装
func NewDeviceGormRepository(db *gorm.DB) repo.DeviceRepository {
	return &deviceGormRepository{db: db}
}

// device_idで冪等upsert。既存行はIP/User-Agentだけ更新する。
func (r *deviceGormRepository) EnsureExists(ctx context.Context, dev *model.UserDevice) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "device_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"ip_address", "user_agent"}),
		}).
		Create(dev).Error
}

// device_idで1件取得
func (r *deviceGormRepository) FindByDeviceID(ctx context.Context, deviceID string) (*model.UserDevice, error) {
	var d model.UserDevice

	err := r.db.WithContext(ctx).
		Where("device_id = ?", deviceID).
		First(&d).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repo.ErrDeviceNotFound
		}
		return nil, err
	}

	return &d, nil
}
