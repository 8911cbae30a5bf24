package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Radmir675/Divisions-sub000/internal/domain/entity"
	"github.com/Radmir675/Divisions-sub000/internal/domain/repository"
	"github.com/Radmir675/Divisions-sub000/internal/domain/valueobject"
	"github.com/Radmir675/Divisions-sub000/internal/infrastructure/database"
)

// DepartmentHierarchyRepository はltreeのマテリアライズドパスを一括操作するリポジトリです
type DepartmentHierarchyRepository struct {
	*database.BaseRepository
}

// NewDepartmentHierarchyRepository は新しいDepartmentHierarchyRepositoryを作成します
func NewDepartmentHierarchyRepository(txManager *database.TxManager) *DepartmentHierarchyRepository {
	return &DepartmentHierarchyRepository{
		BaseRepository: database.NewBaseRepository(txManager),
	}
}

// LockDescendants はrootPath自身と配下の部門をFOR UPDATEでロックします
// ロック順序を固定するため depth, identifier 順で取得します
func (r *DepartmentHierarchyRepository) LockDescendants(ctx context.Context, rootPath valueobject.Path) ([]uuid.UUID, error) {
	if err := r.RequireTx(ctx, "LockDescendants"); err != nil {
		return nil, err
	}

	rows, err := r.Querier(ctx).Query(ctx, `
		SELECT id FROM departments
		WHERE path <@ $1::text::ltree
		ORDER BY depth ASC, identifier ASC
		FOR UPDATE`, rootPath.String())
	if err != nil {
		return nil, r.HandleError(err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, r.HandleError(err)
		}
		ids = append(ids, id)
	}
	return ids, r.HandleError(rows.Err())
}

// UpdateDescendantsPath はoldPath配下のパス接頭辞をnewPathに置き換えます
// 空のltreeは連結の単位元なので、newPathが空なら配下は1階層繰り上がります
func (r *DepartmentHierarchyRepository) UpdateDescendantsPath(ctx context.Context, oldPath, newPath valueobject.Path) error {
	_, err := r.Querier(ctx).Exec(ctx, `
		UPDATE departments
		SET path = $2::text::ltree || subpath(path, nlevel($1::text::ltree)),
		    updated_at = NOW()
		WHERE path <@ $1::text::ltree AND path <> $1::text::ltree`,
		oldPath.String(), newPath.String())
	return r.HandleError(err)
}

// UpdateDescendantsDepth はbasePath配下のdepthにdeltaを加算します
func (r *DepartmentHierarchyRepository) UpdateDescendantsDepth(ctx context.Context, basePath valueobject.Path, delta int16) error {
	if delta == 0 {
		return nil
	}
	_, err := r.Querier(ctx).Exec(ctx, `
		UPDATE departments
		SET depth = depth + $2, updated_at = NOW()
		WHERE path <@ $1::text::ltree AND path <> $1::text::ltree`,
		basePath.String(), delta)
	return r.HandleError(err)
}

// UpdateParent はoldParentID直下の部門をnewParentIDに付け替えます
func (r *DepartmentHierarchyRepository) UpdateParent(ctx context.Context, oldParentID uuid.UUID, newParentID *uuid.UUID) error {
	_, err := r.Querier(ctx).Exec(ctx, `
		UPDATE departments SET parent_id = $2, updated_at = NOW()
		WHERE parent_id = $1`,
		oldParentID, uuidToPgtype(newParentID))
	return r.HandleError(err)
}

// FindRemovable は保持期間を過ぎた論理削除済みの部門を深い順にロックして返します
func (r *DepartmentHierarchyRepository) FindRemovable(ctx context.Context, olderThan time.Time) ([]*entity.Department, error) {
	if err := r.RequireTx(ctx, "FindRemovable"); err != nil {
		return nil, err
	}

	departments, err := queryDepartments(ctx, r.Querier(ctx), `
		SELECT `+departmentColumns+` FROM departments
		WHERE is_active = FALSE AND deleted_at < $1
		ORDER BY depth DESC, identifier ASC
		FOR UPDATE`, olderThan)
	if err != nil {
		return nil, r.HandleError(err)
	}
	return departments, nil
}

var _ repository.DepartmentHierarchyRepository = (*DepartmentHierarchyRepository)(nil)
