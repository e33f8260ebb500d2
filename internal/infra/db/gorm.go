package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"authapp/internal/config"
)

// ConnectはDBに接続して*gorm.DBを返す。
// TranslateErrorでunique違反をgorm.ErrDuplicatedKeyに正規化する。
func Connect(cfg config.Config) (*gorm.DB, error) {
	// DATABASE_URLがあれば最優先で使う
	dsn := cfg.DatabaseURL
	if dsn == "" {
		dsn = fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresUser,
			cfg.PostgresPassword, cfg.PostgresDB, cfg.PostgresSSLMode,
		)
	}

	return gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
}
