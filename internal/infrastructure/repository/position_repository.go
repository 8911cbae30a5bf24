package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Radmir675/Divisions-sub000/internal/domain/entity"
	"github.com/Radmir675/Divisions-sub000/internal/domain/repository"
	"github.com/Radmir675/Divisions-sub000/internal/domain/valueobject"
	"github.com/Radmir675/Divisions-sub000/internal/infrastructure/database"
	"github.com/Radmir675/Divisions-sub000/pkg/apperror"
)

// PositionRepository は役職リポジトリの実装です
type PositionRepository struct {
	*database.BaseRepository
}

// NewPositionRepository は新しいPositionRepositoryを作成します
func NewPositionRepository(txManager *database.TxManager) *PositionRepository {
	return &PositionRepository{
		BaseRepository: database.NewBaseRepository(txManager),
	}
}

// FindByIDsWithLock はIDで役職を検索し、行ロックを取得します
func (r *PositionRepository) FindByIDsWithLock(ctx context.Context, ids []uuid.UUID) ([]*entity.Position, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if err := r.RequireTx(ctx, "FindByIDsWithLock"); err != nil {
		return nil, err
	}

	rows, err := r.Querier(ctx).Query(ctx, `
		SELECT id, name, description, is_active, created_at, updated_at, deleted_at
		FROM positions WHERE id = ANY($1::uuid[])
		ORDER BY id
		FOR UPDATE`, ids)
	if err != nil {
		return nil, r.HandleError(err)
	}
	defer rows.Close()

	var positions []*entity.Position
	for rows.Next() {
		var (
			id                   uuid.UUID
			name, description    string
			active               bool
			createdAt, updatedAt time.Time
			deletedAt            *time.Time
		)
		if err := rows.Scan(&id, &name, &description, &active, &createdAt, &updatedAt, &deletedAt); err != nil {
			return nil, r.HandleError(err)
		}
		positionName, err := valueobject.NewPositionName(name)
		if err != nil {
			return nil, err
		}
		positions = append(positions, entity.ReconstructPosition(id, positionName, description, active, createdAt, updatedAt, deletedAt))
	}
	return positions, r.HandleError(rows.Err())
}

// Update は役職を更新します
func (r *PositionRepository) Update(ctx context.Context, position *entity.Position) error {
	tag, err := r.Querier(ctx).Exec(ctx, `
		UPDATE positions
		SET name = $2, description = $3, is_active = $4, updated_at = $5, deleted_at = $6
		WHERE id = $1`,
		position.ID,
		position.Name.String(),
		position.Description,
		position.Active,
		position.UpdatedAt,
		position.DeletedAt,
	)
	if err != nil {
		return r.HandleError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFoundError("position")
	}
	return nil
}

// FindExclusivelyLinked は指定部門以外の有効な部門から参照されていない有効な役職IDを返します
func (r *PositionRepository) FindExclusivelyLinked(ctx context.Context, departmentID uuid.UUID) ([]uuid.UUID, error) {
	return collectIDs(ctx, r.BaseRepository, `
		SELECT dp.position_id
		FROM department_positions dp
		JOIN positions p ON p.id = dp.position_id AND p.is_active = TRUE
		WHERE dp.department_id = $1
		  AND NOT EXISTS (
		      SELECT 1 FROM department_positions o
		      JOIN departments d ON d.id = o.department_id
		      WHERE o.position_id = dp.position_id
		        AND o.department_id <> $1
		        AND d.is_active = TRUE
		  )
		ORDER BY dp.position_id`, departmentID)
}

// FindRemovable は保持期間を過ぎ、どの部門からも参照されていない役職をロックして返します
func (r *PositionRepository) FindRemovable(ctx context.Context, olderThan time.Time) ([]uuid.UUID, error) {
	if err := r.RequireTx(ctx, "FindRemovable"); err != nil {
		return nil, err
	}
	return collectIDs(ctx, r.BaseRepository, `
		SELECT p.id FROM positions p
		WHERE p.is_active = FALSE AND p.deleted_at < $1
		  AND NOT EXISTS (SELECT 1 FROM department_positions dp WHERE dp.position_id = p.id)
		ORDER BY p.id
		FOR UPDATE`, olderThan)
}

// BulkDelete は役職を一括で物理削除します
func (r *PositionRepository) BulkDelete(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.Querier(ctx).Exec(ctx, `DELETE FROM positions WHERE id = ANY($1::uuid[])`, ids)
	return r.HandleError(err)
}

var _ repository.PositionRepository = (*PositionRepository)(nil)
