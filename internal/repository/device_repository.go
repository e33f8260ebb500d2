package repository

import (
	"context"
	"errors"

	"authapp/internal/domain/model"
)

var ErrDeviceNotFound = errors.New("device not found")

// 端末の保存・取得を約束
type DeviceRepository interface {
	// device_idで冪等にupsertする。既存行は最後に見たIP/User-Agentを更新。
	EnsureExists(ctx context.Context, dev *model.UserDevice) error
	// device_id（指紋）で1件取得する。
	FindByDeviceID(ctx context.Context, deviceID string) (*model.UserDevice, error)
}
