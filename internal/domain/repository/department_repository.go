package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Radmir675/Divisions-sub000/internal/domain/entity"
	"github.com/Radmir675/Divisions-sub000/internal/domain/valueobject"
)

// DepartmentRepository は部門リポジトリのインターフェース
type DepartmentRepository interface {
	// 基本CRUD
	Create(ctx context.Context, department *entity.Department) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Department, error)
	// FindByIDWithLock はトランザクション終了まで行ロック（FOR UPDATE）を取得します
	FindByIDWithLock(ctx context.Context, id uuid.UUID) (*entity.Department, error)
	Update(ctx context.Context, department *entity.Department) error
	ReplaceLocations(ctx context.Context, department *entity.Department) error

	// 検索
	FindChildren(ctx context.Context, parentID uuid.UUID) ([]*entity.Department, error)
	FindRoots(ctx context.Context) ([]*entity.Department, error)

	// 存在チェック
	ExistsByIdentifier(ctx context.Context, identifier valueobject.Identifier) (bool, error)

	// 一括操作
	BulkDelete(ctx context.Context, ids []uuid.UUID) error
}

// DepartmentHierarchyRepository はマテリアライズドパスの一括操作を担うリポジトリ
// 子孫のpath/depthはこのインターフェース経由でのみ書き換えます
type DepartmentHierarchyRepository interface {
	// LockDescendants はrootPath自身と配下の全部門をロックし、IDを浅い順（同じ深さはidentifier順）に返します
	LockDescendants(ctx context.Context, rootPath valueobject.Path) ([]uuid.UUID, error)

	// UpdateDescendantsPath はoldPath配下（oldPath自身を除く）のパス接頭辞をnewPathに置き換えます
	// newPathが空の場合、配下はoldPathのセグメントを除いた位置に繰り上がります
	UpdateDescendantsPath(ctx context.Context, oldPath, newPath valueobject.Path) error

	// UpdateDescendantsDepth はbasePath配下（basePath自身を除く）のdepthにdeltaを加算します
	UpdateDescendantsDepth(ctx context.Context, basePath valueobject.Path, delta int16) error

	// UpdateParent はoldParentIDの直下の部門をnewParentID（nilならルート）に付け替えます
	UpdateParent(ctx context.Context, oldParentID uuid.UUID, newParentID *uuid.UUID) error

	// FindRemovable はolderThanより前に論理削除された部門を深い順にロックして返します
	FindRemovable(ctx context.Context, olderThan time.Time) ([]*entity.Department, error)
}
