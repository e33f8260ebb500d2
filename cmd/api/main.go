package main

import (
	"log"

	"github.com/joho/godotenv"

	"authapp/internal/config"
	"authapp/internal/domain/model"
	"authapp/internal/handler"
	"authapp/internal/infra/db"
	infraRepo "authapp/internal/infra/repository"
	"authapp/internal/middleware"
	"authapp/internal/server"
	"authapp/internal/token"
	"authapp/internal/usecase"
	"authapp/internal/validator"
)

func main() {
	// .envがなくても環境変数が揃っていれば動く
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.UserDevice{},
		&model.RefreshSession{},
	); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	// Token Codec（アルゴリズムと鍵は設定から）
	codec, err := token.NewCodec(cfg.Algorithm, cfg.PrivateKeyPEM, cfg.PublicKeyPEM)
	if err != nil {
		log.Fatalf("token codec: %v", err)
	}

	// Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	sessRepo := infraRepo.NewRefreshSessionGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	// usecaseに渡す部品
	hasher := usecase.NewBcryptPasswordHasher(12)
	authValidator := validator.NewAuthValidator()

	// Usecase生成
	authUC := usecase.NewAuthUsecase(
		codec,
		hasher,
		authValidator,
		userRepo,
		sessRepo,
		txManager,
		cfg.AccessTokenExpire,
		cfg.RefreshTokenExpire,
	)

	// Handler生成
	authH := handler.NewAuthHandler(authUC, cfg.CookieSecure)
	userH := handler.NewUserHandler(authUC)

	// Server起動
	e := server.New(middleware.AuthJWT(authUC), authH, userH)

	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	if err := server.Start(e, addr); err != nil {
		e.Logger.Fatal(err)
	}
}
