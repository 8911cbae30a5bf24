package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Radmir675/Divisions-sub000/pkg/apperror"
)

// データベースエラー
var (
	ErrNotFound   = errors.New("record not found")
	ErrConflict   = errors.New("record already exists")
	ErrLockFailed = errors.New("could not acquire row lock")
)

// BaseRepository はリポジトリの基底構造体
type BaseRepository struct {
	txManager *TxManager
}

// NewBaseRepository は新しいBaseRepositoryを作成する
func NewBaseRepository(txManager *TxManager) *BaseRepository {
	return &BaseRepository{txManager: txManager}
}

// Querier はトランザクション中であればTx、そうでなければPoolを返す
func (r *BaseRepository) Querier(ctx context.Context) Querier {
	return r.txManager.GetQuerier(ctx)
}

// RequireTx はロックを伴うクエリがトランザクション外で呼ばれていないか確認する
// トランザクション外のFOR UPDATEは文の終了と同時にロックが解放される
func (r *BaseRepository) RequireTx(ctx context.Context, op string) error {
	if !r.txManager.InTransaction(ctx) {
		return fmt.Errorf("%s: row lock requires an active transaction", op)
	}
	return nil
}

// HandleError はpgxのエラーをAppErrorに変換する
// 一意制約違反はConflict、それ以外はInternal（詳細はErrに保持）になる
func (r *BaseRepository) HandleError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperror.NewNotFoundError("record").WithCause(ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return apperror.NewConflictError("record already exists").
				WithCause(fmt.Errorf("%w: %s", ErrConflict, pgErr.ConstraintName))
		case "23503": // foreign_key_violation
			return apperror.NewInternalError(fmt.Errorf("foreign key violation: %s", pgErr.Detail))
		case "55P03", "40P01": // lock_not_available, deadlock_detected
			return apperror.NewInternalError(fmt.Errorf("%w: %s", ErrLockFailed, pgErr.Message))
		}
	}

	return apperror.NewInternalError(err)
}

// IsNotFoundError はエラーがNotFoundエラーかどうかを判定する
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflictError はエラーがConflictエラーかどうかを判定する
func IsConflictError(err error) bool {
	return errors.Is(err, ErrConflict)
}
