package query

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Radmir675/Divisions-sub000/internal/domain/entity"
	"github.com/Radmir675/Divisions-sub000/internal/infrastructure/cache"
	"github.com/Radmir675/Divisions-sub000/pkg/logger"
)

// DepartmentView は読み取り側の部門表現です。キャッシュにはこの形でJSON保存されます
type DepartmentView struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Identifier  string      `json:"identifier"`
	ParentID    *uuid.UUID  `json:"parentId,omitempty"`
	Path        string      `json:"path"`
	Depth       int16       `json:"depth"`
	IsActive    bool        `json:"isActive"`
	LocationIDs []uuid.UUID `json:"locationIds"`
	PositionIDs []uuid.UUID `json:"positionIds"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// NewDepartmentView はエンティティからビューを作成します
func NewDepartmentView(d *entity.Department) DepartmentView {
	return DepartmentView{
		ID:          d.ID,
		Name:        d.Name.String(),
		Identifier:  d.Identifier.String(),
		ParentID:    d.ParentID,
		Path:        d.Path.String(),
		Depth:       d.Depth,
		IsActive:    d.IsActive(),
		LocationIDs: d.LocationIDs(),
		PositionIDs: d.PositionIDs(),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// ReadCache は読み取りキャッシュのインターフェース
type ReadCache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any) error
}

// readThrough はキャッシュを参照し、ヒットした場合にtrueを返します
// キャッシュ障害はログに残してDBへフォールバックします
func readThrough(ctx context.Context, c ReadCache, key string, dest any) bool {
	err := c.Get(ctx, key, dest)
	if err == nil {
		return true
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		logger.Warn(ctx, "department cache read failed", zap.String("key", key), zap.Error(err))
	}
	return false
}

func writeBack(ctx context.Context, c ReadCache, key string, value any) {
	if err := c.Set(ctx, key, value); err != nil {
		logger.Warn(ctx, "department cache write failed", zap.String("key", key), zap.Error(err))
	}
}
