package query

import (
	"context"

	"github.com/google/uuid"

	"github.com/Radmir675/Divisions-sub000/internal/domain/entity"
	"github.com/Radmir675/Divisions-sub000/internal/domain/repository"
	"github.com/Radmir675/Divisions-sub000/internal/infrastructure/cache"
	"github.com/Radmir675/Divisions-sub000/pkg/apperror"
)

// ListChildDepartmentsInput は直下の部門一覧取得の入力を定義します
type ListChildDepartmentsInput struct {
	ParentID *uuid.UUID // nil の場合はルート部門一覧
}

// ListChildDepartmentsOutput は直下の部門一覧取得の出力を定義します
type ListChildDepartmentsOutput struct {
	Departments []DepartmentView
}

// ListChildDepartmentsQuery は有効な直下の部門一覧を取得するクエリです
type ListChildDepartmentsQuery struct {
	departmentRepo repository.DepartmentRepository
	cache          ReadCache
}

// NewListChildDepartmentsQuery は新しいListChildDepartmentsQueryを作成します
func NewListChildDepartmentsQuery(departmentRepo repository.DepartmentRepository, readCache ReadCache) *ListChildDepartmentsQuery {
	return &ListChildDepartmentsQuery{
		departmentRepo: departmentRepo,
		cache:          readCache,
	}
}

// Execute は一覧取得を実行します
func (q *ListChildDepartmentsQuery) Execute(ctx context.Context, input ListChildDepartmentsInput) (*ListChildDepartmentsOutput, error) {
	key := cache.ChildrenKey(input.ParentID)

	var views []DepartmentView
	if readThrough(ctx, q.cache, key, &views) {
		return &ListChildDepartmentsOutput{Departments: views}, nil
	}

	var (
		departments []*entity.Department
		err         error
	)
	if input.ParentID == nil {
		departments, err = q.departmentRepo.FindRoots(ctx)
	} else {
		// 親が論理削除済みの場合は一覧もNotFound
		parent, findErr := q.departmentRepo.FindByID(ctx, *input.ParentID)
		if findErr != nil && !apperror.IsNotFound(findErr) {
			return nil, findErr
		}
		if findErr != nil || !parent.IsActive() {
			return nil, apperror.NewNotFoundError("department").WithField("departmentId", input.ParentID.String())
		}
		departments, err = q.departmentRepo.FindChildren(ctx, *input.ParentID)
	}
	if err != nil {
		return nil, err
	}

	views = make([]DepartmentView, len(departments))
	for i, d := range departments {
		views[i] = NewDepartmentView(d)
	}
	writeBack(ctx, q.cache, key, views)

	return &ListChildDepartmentsOutput{Departments: views}, nil
}
