package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/Radmir675/Divisions-sub000/internal/domain/entity"
	"github.com/Radmir675/Divisions-sub000/internal/domain/repository"
	"github.com/Radmir675/Divisions-sub000/internal/domain/valueobject"
	"github.com/Radmir675/Divisions-sub000/internal/infrastructure/database"
	"github.com/Radmir675/Divisions-sub000/pkg/apperror"
)

const departmentColumns = `id, name, identifier, parent_id, path::text, depth, is_active, created_at, updated_at, deleted_at`

// DepartmentRepository は部門リポジトリの実装です
type DepartmentRepository struct {
	*database.BaseRepository
}

// NewDepartmentRepository は新しいDepartmentRepositoryを作成します
func NewDepartmentRepository(txManager *database.TxManager) *DepartmentRepository {
	return &DepartmentRepository{
		BaseRepository: database.NewBaseRepository(txManager),
	}
}

// Create は部門とロケーションの関連を作成します
func (r *DepartmentRepository) Create(ctx context.Context, department *entity.Department) error {
	querier := r.Querier(ctx)

	_, err := querier.Exec(ctx, `
		INSERT INTO departments (id, name, identifier, parent_id, path, depth, is_active, created_at, updated_at, deleted_at)
		VALUES ($1, $2, $3, $4, $5::text::ltree, $6, $7, $8, $9, $10)`,
		department.ID,
		department.Name.String(),
		department.Identifier.String(),
		uuidToPgtype(department.ParentID),
		department.Path.String(),
		department.Depth,
		department.Active,
		department.CreatedAt,
		department.UpdatedAt,
		department.DeletedAt,
	)
	if err != nil {
		return r.HandleError(err)
	}

	return r.insertLocationLinks(ctx, department.Locations)
}

// FindByID はIDで部門を検索します
func (r *DepartmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Department, error) {
	return r.findOne(ctx, `SELECT `+departmentColumns+` FROM departments WHERE id = $1`, id)
}

// FindByIDWithLock はIDで部門を検索し、行ロックを取得します
func (r *DepartmentRepository) FindByIDWithLock(ctx context.Context, id uuid.UUID) (*entity.Department, error) {
	if err := r.RequireTx(ctx, "FindByIDWithLock"); err != nil {
		return nil, err
	}
	return r.findOne(ctx, `SELECT `+departmentColumns+` FROM departments WHERE id = $1 FOR UPDATE`, id)
}

// Update は部門自身の列を更新します
func (r *DepartmentRepository) Update(ctx context.Context, department *entity.Department) error {
	querier := r.Querier(ctx)

	tag, err := querier.Exec(ctx, `
		UPDATE departments
		SET name = $2, identifier = $3, parent_id = $4, path = $5::text::ltree, depth = $6,
		    is_active = $7, updated_at = $8, deleted_at = $9
		WHERE id = $1`,
		department.ID,
		department.Name.String(),
		department.Identifier.String(),
		uuidToPgtype(department.ParentID),
		department.Path.String(),
		department.Depth,
		department.Active,
		department.UpdatedAt,
		department.DeletedAt,
	)
	if err != nil {
		return r.HandleError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFoundError("department")
	}
	return nil
}

// ReplaceLocations はロケーションの関連を全て置き換えます
func (r *DepartmentRepository) ReplaceLocations(ctx context.Context, department *entity.Department) error {
	querier := r.Querier(ctx)

	if _, err := querier.Exec(ctx, `DELETE FROM department_locations WHERE department_id = $1`, department.ID); err != nil {
		return r.HandleError(err)
	}
	return r.insertLocationLinks(ctx, department.Locations)
}

// FindChildren は有効な直下の部門を検索します
func (r *DepartmentRepository) FindChildren(ctx context.Context, parentID uuid.UUID) ([]*entity.Department, error) {
	return r.findMany(ctx, `
		SELECT `+departmentColumns+` FROM departments
		WHERE parent_id = $1 AND is_active = TRUE
		ORDER BY identifier`, parentID)
}

// FindRoots は有効なルート部門を検索します
func (r *DepartmentRepository) FindRoots(ctx context.Context) ([]*entity.Department, error) {
	return r.findMany(ctx, `
		SELECT `+departmentColumns+` FROM departments
		WHERE parent_id IS NULL AND is_active = TRUE
		ORDER BY identifier`)
}

// ExistsByIdentifier は同じIdentifierの部門の存在チェックをします（論理削除済みを含む）
func (r *DepartmentRepository) ExistsByIdentifier(ctx context.Context, identifier valueobject.Identifier) (bool, error) {
	var exists bool
	err := r.Querier(ctx).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM departments WHERE identifier = $1)`,
		identifier.String(),
	).Scan(&exists)
	return exists, r.HandleError(err)
}

// BulkDelete は部門を一括で物理削除します。関連テーブルはカスケード削除されます
func (r *DepartmentRepository) BulkDelete(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.Querier(ctx).Exec(ctx, `DELETE FROM departments WHERE id = ANY($1::uuid[])`, ids)
	return r.HandleError(err)
}

func (r *DepartmentRepository) findOne(ctx context.Context, sql string, args ...any) (*entity.Department, error) {
	department, err := scanDepartment(r.Querier(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("department")
		}
		return nil, r.HandleError(err)
	}

	if err := loadDepartmentLinks(ctx, r.Querier(ctx), []*entity.Department{department}); err != nil {
		return nil, r.HandleError(err)
	}
	return department, nil
}

func (r *DepartmentRepository) findMany(ctx context.Context, sql string, args ...any) ([]*entity.Department, error) {
	departments, err := queryDepartments(ctx, r.Querier(ctx), sql, args...)
	if err != nil {
		return nil, r.HandleError(err)
	}
	if err := loadDepartmentLinks(ctx, r.Querier(ctx), departments); err != nil {
		return nil, r.HandleError(err)
	}
	return departments, nil
}

func (r *DepartmentRepository) insertLocationLinks(ctx context.Context, links []entity.DepartmentLocation) error {
	if len(links) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, link := range links {
		batch.Queue(
			`INSERT INTO department_locations (id, department_id, location_id) VALUES ($1, $2, $3)`,
			link.ID, link.DepartmentID, link.LocationID,
		)
	}

	results := r.Querier(ctx).SendBatch(ctx, batch)
	for range links {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return r.HandleError(err)
		}
	}
	return r.HandleError(results.Close())
}

// rowScanner はpgx.Rowとpgx.Rowsの共通部分です
type rowScanner interface {
	Scan(dest ...any) error
}

func scanDepartment(row rowScanner) (*entity.Department, error) {
	var (
		id         uuid.UUID
		name       string
		identifier string
		parentID   pgtype.UUID
		path       string
		depth      int16
		active     bool
		createdAt  time.Time
		updatedAt  time.Time
		deletedAt  *time.Time
	)
	if err := row.Scan(&id, &name, &identifier, &parentID, &path, &depth, &active, &createdAt, &updatedAt, &deletedAt); err != nil {
		return nil, err
	}

	departmentName, err := valueobject.NewDepartmentName(name)
	if err != nil {
		return nil, err
	}
	departmentPath, err := valueobject.ParsePath(path)
	if err != nil {
		return nil, err
	}

	return entity.ReconstructDepartment(
		id,
		departmentName,
		valueobject.ReconstructIdentifier(identifier),
		pgtypeToUUID(parentID),
		departmentPath,
		depth,
		active,
		createdAt,
		updatedAt,
		deletedAt,
		nil,
		nil,
	), nil
}

func queryDepartments(ctx context.Context, querier database.Querier, sql string, args ...any) ([]*entity.Department, error) {
	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []*entity.Department
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, err
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}

// loadDepartmentLinks はロケーション・役職の関連をまとめて読み込みます
func loadDepartmentLinks(ctx context.Context, querier database.Querier, departments []*entity.Department) error {
	if len(departments) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*entity.Department, len(departments))
	ids := make([]uuid.UUID, len(departments))
	for i, d := range departments {
		byID[d.ID] = d
		ids[i] = d.ID
		d.Locations = []entity.DepartmentLocation{}
		d.Positions = []entity.DepartmentPosition{}
	}

	rows, err := querier.Query(ctx, `
		SELECT id, department_id, location_id FROM department_locations
		WHERE department_id = ANY($1::uuid[])
		ORDER BY department_id, location_id`, ids)
	if err != nil {
		return err
	}
	for rows.Next() {
		var link entity.DepartmentLocation
		if err := rows.Scan(&link.ID, &link.DepartmentID, &link.LocationID); err != nil {
			rows.Close()
			return err
		}
		byID[link.DepartmentID].Locations = append(byID[link.DepartmentID].Locations, link)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = querier.Query(ctx, `
		SELECT id, department_id, position_id FROM department_positions
		WHERE department_id = ANY($1::uuid[])
		ORDER BY department_id, position_id`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var link entity.DepartmentPosition
		if err := rows.Scan(&link.ID, &link.DepartmentID, &link.PositionID); err != nil {
			return err
		}
		byID[link.DepartmentID].Positions = append(byID[link.DepartmentID].Positions, link)
	}
	return rows.Err()
}

// uuidToPgtype はuuid.UUIDをpgtype.UUIDに変換します
func uuidToPgtype(id *uuid.UUID) pgtype.UUID {
	if id == nil {
		return pgtype.UUID{Valid: false}
	}
	return pgtype.UUID{Bytes: *id, Valid: true}
}

// pgtypeToUUID はpgtype.UUIDを*uuid.UUIDに変換します
func pgtypeToUUID(pg pgtype.UUID) *uuid.UUID {
	if !pg.Valid {
		return nil
	}
	id := uuid.UUID(pg.Bytes)
	return &id
}

// インターフェースの実装を保証
var _ repository.DepartmentRepository = (*DepartmentRepository)(nil)
