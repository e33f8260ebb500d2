package model

import "time"

// 発行済みrefresh tokenのセッション行。jtiが主キー相当。
// 物理削除はしない（revokedを立てるだけ。監査証跡として残す）。
// 不変条件：(user_id, device_id) ごとに revoked=false の行は常に最大1つ。
type RefreshSession struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"-"`
	JTI       string    `gorm:"column:jti;uniqueIndex;not null" json:"jti"`
	UserID    string    `gorm:"not null;index:idx_refresh_sessions_user_device" json:"user_id"`
	DeviceID  string    `gorm:"not null;index:idx_refresh_sessions_user_device" json:"device_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	Revoked   bool      `gorm:"not null;default:false" json:"revoked"`
}
