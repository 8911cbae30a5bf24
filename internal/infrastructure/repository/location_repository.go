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

const locationColumns = `id, name, timezone, is_active, created_at, updated_at, deleted_at`

// LocationRepository はロケーションリポジトリの実装です
type LocationRepository struct {
	*database.BaseRepository
}

// NewLocationRepository は新しいLocationRepositoryを作成します
func NewLocationRepository(txManager *database.TxManager) *LocationRepository {
	return &LocationRepository{
		BaseRepository: database.NewBaseRepository(txManager),
	}
}

// FindByIDs はIDでロケーションを検索します
func (r *LocationRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Location, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.query(ctx, `SELECT `+locationColumns+` FROM locations WHERE id = ANY($1::uuid[]) ORDER BY id`, ids)
}

// FindByIDsWithLock はIDでロケーションを検索し、行ロックを取得します
func (r *LocationRepository) FindByIDsWithLock(ctx context.Context, ids []uuid.UUID) ([]*entity.Location, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if err := r.RequireTx(ctx, "FindByIDsWithLock"); err != nil {
		return nil, err
	}
	return r.query(ctx, `SELECT `+locationColumns+` FROM locations WHERE id = ANY($1::uuid[]) ORDER BY id FOR UPDATE`, ids)
}

// Update はロケーションを更新します
func (r *LocationRepository) Update(ctx context.Context, location *entity.Location) error {
	tag, err := r.Querier(ctx).Exec(ctx, `
		UPDATE locations
		SET name = $2, timezone = $3, is_active = $4, updated_at = $5, deleted_at = $6
		WHERE id = $1`,
		location.ID,
		location.Name.String(),
		location.Timezone.String(),
		location.Active,
		location.UpdatedAt,
		location.DeletedAt,
	)
	if err != nil {
		return r.HandleError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFoundError("location")
	}
	return nil
}

// FindExclusivelyLinked は指定部門以外の有効な部門から参照されていない有効なロケーションIDを返します
func (r *LocationRepository) FindExclusivelyLinked(ctx context.Context, departmentID uuid.UUID) ([]uuid.UUID, error) {
	return collectIDs(ctx, r.BaseRepository, `
		SELECT dl.location_id
		FROM department_locations dl
		JOIN locations l ON l.id = dl.location_id AND l.is_active = TRUE
		WHERE dl.department_id = $1
		  AND NOT EXISTS (
		      SELECT 1 FROM department_locations o
		      JOIN departments d ON d.id = o.department_id
		      WHERE o.location_id = dl.location_id
		        AND o.department_id <> $1
		        AND d.is_active = TRUE
		  )
		ORDER BY dl.location_id`, departmentID)
}

// FindRemovable は保持期間を過ぎ、どの部門からも参照されていないロケーションをロックして返します
func (r *LocationRepository) FindRemovable(ctx context.Context, olderThan time.Time) ([]uuid.UUID, error) {
	if err := r.RequireTx(ctx, "FindRemovable"); err != nil {
		return nil, err
	}
	return collectIDs(ctx, r.BaseRepository, `
		SELECT l.id FROM locations l
		WHERE l.is_active = FALSE AND l.deleted_at < $1
		  AND NOT EXISTS (SELECT 1 FROM department_locations dl WHERE dl.location_id = l.id)
		ORDER BY l.id
		FOR UPDATE`, olderThan)
}

// BulkDelete はロケーションを一括で物理削除します
func (r *LocationRepository) BulkDelete(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.Querier(ctx).Exec(ctx, `DELETE FROM locations WHERE id = ANY($1::uuid[])`, ids)
	return r.HandleError(err)
}

func (r *LocationRepository) query(ctx context.Context, sql string, args ...any) ([]*entity.Location, error) {
	rows, err := r.Querier(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, r.HandleError(err)
	}
	defer rows.Close()

	var locations []*entity.Location
	for rows.Next() {
		var (
			id                   uuid.UUID
			name, timezone       string
			active               bool
			createdAt, updatedAt time.Time
			deletedAt            *time.Time
		)
		if err := rows.Scan(&id, &name, &timezone, &active, &createdAt, &updatedAt, &deletedAt); err != nil {
			return nil, r.HandleError(err)
		}

		locationName, err := valueobject.NewLocationName(name)
		if err != nil {
			return nil, err
		}
		tz, err := valueobject.NewTimezone(timezone)
		if err != nil {
			tz = valueobject.UTCTimezone()
		}

		locations = append(locations, entity.ReconstructLocation(id, locationName, tz, active, createdAt, updatedAt, deletedAt))
	}
	return locations, r.HandleError(rows.Err())
}

// collectIDs はID列のみを返すクエリを実行します
func collectIDs(ctx context.Context, base *database.BaseRepository, sql string, args ...any) ([]uuid.UUID, error) {
	rows, err := base.Querier(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, base.HandleError(err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, base.HandleError(err)
		}
		ids = append(ids, id)
	}
	return ids, base.HandleError(rows.Err())
}

var _ repository.LocationRepository = (*LocationRepository)(nil)
