package model

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// 認証の主体（Principal）。
// UserIDはemailからuuid5で決定的に導出する（同じemailを再登録しても同じIDになる）。
type User struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"-"`
	UserID         string    `gorm:"uniqueIndex;not null" json:"user_id"`
	FullName       string    `gorm:"not null" json:"full_name"`
	Email          string    `gorm:"uniqueIndex;not null" json:"email"`
	HashedPassword string    `gorm:"column:hashed_password;not null" json:"-"`
	Disabled       bool      `gorm:"not null;default:false" json:"-"`
	CreatedAt      time.Time `json:"-"`
	Role           Role      `gorm:"type:varchar(20);not null;default:'user'" json:"-"`
}
