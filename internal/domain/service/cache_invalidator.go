package service

import (
	"context"

	"github.com/google/uuid"
)

// DepartmentCacheInvalidator は読み取りキャッシュの無効化フックです
// ベストエフォートで実行され、失敗してもビジネストランザクションを失敗させません
type DepartmentCacheInvalidator interface {
	InvalidateDepartments(ctx context.Context, ids ...uuid.UUID)
	InvalidateListings(ctx context.Context)
}
