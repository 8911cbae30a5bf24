package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// txKey はトランザクションをコンテキストに保持するためのキー
type txKey struct{}

// TxManager はトランザクションを管理する
type TxManager struct {
	pool *pgxpool.Pool
}

// NewTxManager は新しいTxManagerを作成する
func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return &TxManager{pool: pool}
}

// WithTransaction はトランザクション内で関数を実行する
// 成功時はコミット、エラー・パニック・コンテキストのキャンセル時はロールバック
// 既存のトランザクションがある場合は再利用する
func (m *TxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if tx := m.getTxFromContext(ctx); tx != nil {
		return fn(ctx)
	}

	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// ロールバックはキャンセル済みのコンテキストでも実行する
	rollbackCtx := context.WithoutCancel(ctx)

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(rollbackCtx)
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return rollback(rollbackCtx, tx, err)
	}

	if err := ctx.Err(); err != nil {
		return rollback(rollbackCtx, tx, fmt.Errorf("transaction aborted: %w", err))
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func rollback(ctx context.Context, tx pgx.Tx, cause error) error {
	if rbErr := tx.Rollback(ctx); rbErr != nil {
		return fmt.Errorf("rollback failed: %v, original error: %w", rbErr, cause)
	}
	return cause
}

// getTxFromContext はコンテキストからトランザクションを取得する
func (m *TxManager) getTxFromContext(ctx context.Context) pgx.Tx {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return nil
}

// InTransaction はコンテキストにトランザクションが設定されているかを返す
func (m *TxManager) InTransaction(ctx context.Context) bool {
	return m.getTxFromContext(ctx) != nil
}

// GetQuerier はトランザクション中であればTx、そうでなければPoolを返す
func (m *TxManager) GetQuerier(ctx context.Context) Querier {
	if tx := m.getTxFromContext(ctx); tx != nil {
		return tx
	}
	return m.pool
}
