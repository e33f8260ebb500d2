package model

// ユーザーの端末。DeviceIDはUser-Agent+IPからuuid5で導出した指紋。
// 同じ端末からの再ログインは同じ行を使い回す（無限に増えない）。
// 削除はこのコアではやらない（保持期間は外部のポリシー）。
type UserDevice struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"-"`
	DeviceID  string `gorm:"uniqueIndex;not null" json:"device_id"`
	IPAddress string `gorm:"not null" json:"ip_address"`
	UserAgent string `gorm:"not null" json:"user_agent"`
}
