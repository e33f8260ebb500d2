package repository

import (
	"context"

	"gorm.io/gorm"

	repo "authapp/internal/repository"
)

type txReposGorm struct {
	users    repo.UserRepository
	devices  repo.DeviceRepository
	sessions repo.RefreshSessionRepository
}

func (r *txReposGorm) Users() repo.UserRepository                     { return r.users }
func (r *txReposGorm) Devices() repo.DeviceRepository                 { return r.devices }
func (r *txReposGorm) RefreshSessions() repo.RefreshSessionRepository { return r.sessions }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

// fn全体を1トランザクションで実行する。
// 発行時のrevoke→upsert→insertの途中状態を並行の検証側に見せないため。
func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			users:    NewUserGormRepository(tx),
			devices:  NewDeviceGormRepository(tx),
			sessions: NewRefreshSessionGormRepository(tx),
		}
		return fn(r)
	})
}
