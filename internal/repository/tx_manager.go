package repository

import "context"

// トランザクション内で使う約束
type TxRepos interface {
	Users() UserRepository
	Devices() DeviceRepository
	RefreshSessions() RefreshSessionRepository
}

// UsecaseからTxの開始/commit/rollbackを隠す。
// 発行時のrevoke→upsert→insertはこの中で1トランザクションになる。
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
