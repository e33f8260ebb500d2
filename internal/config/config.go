package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	DatabaseURL      string // 指定があればPostgres個別設定より優先
	PostgresUser     string // DBユーザー
	PostgresPassword string // DBパスワード
	PostgresDB       string // DB名
	PostgresHost     string // DBホスト（localhost）
	PostgresPort     int    // DBポート（5432）
	PostgresSSLMode  string // sslmode（disable）

	Algorithm     string // 署名アルゴリズム（HS256/HS384/HS512/RS256/RS384/RS512）
	PrivateKeyPEM []byte // 署名鍵。HS*なら共有シークレットそのもの
	PublicKeyPEM  []byte // 検証鍵。HS*では使わない

	AccessTokenExpire  time.Duration // access tokenのTTL
	RefreshTokenExpire time.Duration // refresh tokenのTTL

	CookieSecure bool // refresh cookieのSecure属性
}

// Loadは環境変数から設定を組み立てる。必須が欠けていたらエラー。
func Load() (Config, error) {
	pgPort, err := atoiDefault("POSTGRES_PORT", 5432)
	if err != nil {
		return Config{}, err
	}

	accessMin, err := mustAtoi("ACCESS_TOKEN_EXPIRE_MINUTES")
	if err != nil {
		return Config{}, err
	}
	refreshMin, err := mustAtoi("REFRESH_TOKEN_EXPIRE_MINUTES")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port: os.Getenv("PORT"),

		DatabaseURL:      os.Getenv("DATABASE_URL"),
		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresHost:     getenvDefault("POSTGRES_HOST", "localhost"),
		PostgresPort:     pgPort,
		PostgresSSLMode:  getenvDefault("POSTGRES_SSLMODE", "disable"),

		Algorithm: os.Getenv("AUTH_ALGORITHM"),

		AccessTokenExpire:  time.Duration(accessMin) * time.Minute,
		RefreshTokenExpire: time.Duration(refreshMin) * time.Minute,

		CookieSecure: envBool("COOKIE_SECURE", true),
	}

	// 必須チェック
	if cfg.Port == "" {
		return Config{}, fmt.Errorf("PORT is required")
	}
	if cfg.Algorithm == "" {
		return Config{}, fmt.Errorf("AUTH_ALGORITHM is required")
	}
	if cfg.DatabaseURL == "" {
		if cfg.PostgresUser == "" {
			return Config{}, fmt.Errorf("POSTGRES_USER is required")
		}
		if cfg.PostgresPassword == "" {
			return Config{}, fmt.Errorf("POSTGRES_PASSWORD is required")
		}
		if cfg.PostgresDB == "" {
			return Config{}, fmt.Errorf("POSTGRES_DB is required")
		}
	}

	// 署名鍵を読む。HS*ならファイルの中身がそのまま共有シークレット。
	privPath := os.Getenv("AUTH_PRIVATE_KEY_FILE")
	if privPath == "" {
		return Config{}, fmt.Errorf("AUTH_PRIVATE_KEY_FILE is required")
	}
	cfg.PrivateKeyPEM, err = os.ReadFile(privPath)
	if err != nil {
		return Config{}, fmt.Errorf("read AUTH_PRIVATE_KEY_FILE: %w", err)
	}

	// 検証鍵は非対称アルゴリズムのときだけ必須。
	// どの鍵で検証するかはtoken.KeysForがアルゴリズム族から決める。
	if pubPath := os.Getenv("AUTH_PUBLIC_KEY_FILE"); pubPath != "" {
		cfg.PublicKeyPEM, err = os.ReadFile(pubPath)
		if err != nil {
			return Config{}, fmt.Errorf("read AUTH_PUBLIC_KEY_FILE: %w", err)
		}
	}

	return cfg, nil
}

func mustAtoi(key string) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}

func atoiDefault(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}

func getenvDefault(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	switch v {
	case "1", "true", "TRUE", "True":
		return true
	case "0", "false", "FALSE", "False":
		return false
	default:
		return def
	}
}
