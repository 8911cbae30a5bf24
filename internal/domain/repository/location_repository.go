package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Radmir675/Divisions-sub000/internal/domain/entity"
)

// LocationRepository はロケーションリポジトリのインターフェース
type LocationRepository interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Location, error)
	FindByIDsWithLock(ctx context.Context, ids []uuid.UUID) ([]*entity.Location, error)
	Update(ctx context.Context, location *entity.Location) error

	// FindExclusivelyLinked は指定部門以外の有効な部門から参照されていない有効なロケーションIDを返します
	FindExclusivelyLinked(ctx context.Context, departmentID uuid.UUID) ([]uuid.UUID, error)

	// FindRemovable はolderThanより前に論理削除され、どの部門からも参照されていないロケーションをロックして返します
	FindRemovable(ctx context.Context, olderThan time.Time) ([]uuid.UUID, error)
	BulkDelete(ctx context.Context, ids []uuid.UUID) error
}
