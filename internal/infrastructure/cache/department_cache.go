package cache

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Radmir675/Divisions-sub000/internal/domain/service"
	"github.com/Radmir675/Divisions-sub000/internal/infrastructure/metrics"
	"github.com/Radmir675/Divisions-sub000/pkg/logger"
)

// DepartmentCacheInvalidator は部門の読み取りキャッシュを無効化します
// Redisの障害はログとメトリクスに記録するだけで、呼び出し元には返しません
type DepartmentCacheInvalidator struct {
	cache *Cache
}

// NewDepartmentCacheInvalidator は新しいDepartmentCacheInvalidatorを作成します
func NewDepartmentCacheInvalidator(cache *Cache) *DepartmentCacheInvalidator {
	return &DepartmentCacheInvalidator{cache: cache}
}

// InvalidateDepartments は部門詳細と、その部門を親とする一覧を削除します
func (i *DepartmentCacheInvalidator) InvalidateDepartments(ctx context.Context, ids ...uuid.UUID) {
	if len(ids) == 0 {
		return
	}

	keys := make([]string, 0, len(ids)*2)
	for _, id := range ids {
		id := id
		keys = append(keys, DepartmentKey(id), ChildrenKey(&id))
	}

	err := i.cache.Delete(ctx, keys...)
	metrics.RecordCacheInvalidation("department", err)
	if err != nil {
		logger.Warn(ctx, "failed to invalidate department cache",
			zap.Int("departments", len(ids)),
			zap.Error(err),
		)
	}
}

// InvalidateListings は全ての一覧キャッシュを削除します
func (i *DepartmentCacheInvalidator) InvalidateListings(ctx context.Context) {
	err := i.cache.DeletePattern(ctx, ChildrenPattern())
	metrics.RecordCacheInvalidation("listing", err)
	if err != nil {
		logger.Warn(ctx, "failed to invalidate department listings", zap.Error(err))
	}
}

var _ service.DepartmentCacheInvalidator = (*DepartmentCacheInvalidator)(nil)
