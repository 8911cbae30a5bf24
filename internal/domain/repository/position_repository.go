package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Radmir675/Divisions-sub000/internal/domain/entity"
)

// PositionRepository は役職リポジトリのインターフェース
type PositionRepository interface {
	FindByIDsWithLock(ctx context.Context, ids []uuid.UUID) ([]*entity.Position, error)
	Update(ctx context.Context, position *entity.Position) error

	FindExclusivelyLinked(ctx context.Context, departmentID uuid.UUID) ([]uuid.UUID, error)
	FindRemovable(ctx context.Context, olderThan time.Time) ([]uuid.UUID, error)
	BulkDelete(ctx context.Context, ids []uuid.UUID) error
}
