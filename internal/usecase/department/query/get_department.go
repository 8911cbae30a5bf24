package query

import (
	"context"

	"github.com/google/uuid"

	"github.com/Radmir675/Divisions-sub000/internal/domain/repository"
	"github.com/Radmir675/Divisions-sub000/internal/infrastructure/cache"
	"github.com/Radmir675/Divisions-sub000/pkg/apperror"
)

// GetDepartmentInput は部門取得の入力を定義します
type GetDepartmentInput struct {
	DepartmentID uuid.UUID
}

// GetDepartmentOutput は部門取得の出力を定義します
type GetDepartmentOutput struct {
	Department DepartmentView
}

// GetDepartmentQuery は部門取得クエリです
type GetDepartmentQuery struct {
	departmentRepo repository.DepartmentRepository
	cache          ReadCache
}

// NewGetDepartmentQuery は新しいGetDepartmentQueryを作成します
func NewGetDepartmentQuery(departmentRepo repository.DepartmentRepository, readCache ReadCache) *GetDepartmentQuery {
	return &GetDepartmentQuery{
		departmentRepo: departmentRepo,
		cache:          readCache,
	}
}

// Execute は部門取得を実行します。論理削除済みの部門はNotFoundです
func (q *GetDepartmentQuery) Execute(ctx context.Context, input GetDepartmentInput) (*GetDepartmentOutput, error) {
	key := cache.DepartmentKey(input.DepartmentID)

	var view DepartmentView
	if readThrough(ctx, q.cache, key, &view) {
		return &GetDepartmentOutput{Department: view}, nil
	}

	department, err := q.departmentRepo.FindByID(ctx, input.DepartmentID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFoundError("department").WithField("departmentId", input.DepartmentID.String())
		}
		return nil, err
	}
	if !department.IsActive() {
		return nil, apperror.NewNotFoundError("department").WithField("departmentId", input.DepartmentID.String())
	}

	view = NewDepartmentView(department)
	writeBack(ctx, q.cache, key, view)

	return &GetDepartmentOutput{Department: view}, nil
}
