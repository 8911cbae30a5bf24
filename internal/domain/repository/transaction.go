package repository

import (
	"context"
)

// TransactionManager はトランザクション管理インターフェースを定義します
// fnに渡されるctxを使ったリポジトリ呼び出しは全て同じトランザクションで実行され、
// 行ロック（FOR UPDATE）はコミットまたはロールバックまで保持されます
type TransactionManager interface {
	// WithTransaction はfnがnilを返せばコミット、それ以外はロールバックします
	// 既にトランザクション中のctxが渡された場合はそれを再利用します
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
