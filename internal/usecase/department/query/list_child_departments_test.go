package query_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Radmir675/Divisions-sub000/internal/domain/entity"
	"github.com/Radmir675/Divisions-sub000/internal/infrastructure/cache"
	"github.com/Radmir675/Divisions-sub000/internal/usecase/department/query"
	"github.com/Radmir675/Divisions-sub000/pkg/apperror"
	"github.com/Radmir675/Divisions-sub000/tests/testutil/mocks"
)

func TestListChildDepartmentsQuery_Execute_Roots(t *testing.T) {
	ctx := context.Background()
	departmentRepo := mocks.NewMockDepartmentRepository(t)
	readCache := mocks.NewMockReadCache(t)

	ops := newTestDepartment(t, "ops", nil)
	sales := newTestDepartment(t, "sales", nil)
	key := cache.ChildrenKey(nil)

	readCache.On("Get", ctx, key, mock.Anything).Return(cache.ErrCacheMiss)
	departmentRepo.On("FindRoots", ctx).Return([]*entity.Department{ops, sales}, nil)
	readCache.On("Set", ctx, key, mock.AnythingOfType("[]query.DepartmentView")).Return(nil)

	output, err := query.NewListChildDepartmentsQuery(departmentRepo, readCache).Execute(ctx, query.ListChildDepartmentsInput{})

	require.NoError(t, err)
	require.Len(t, output.Departments, 2)
	assert.Equal(t, "ops", output.Departments[0].Path)
	assert.Equal(t, "sales", output.Departments[1].Path)
}

func TestListChildDepartmentsQuery_Execute_Children(t *testing.T) {
	ctx := context.Background()
	departmentRepo := mocks.NewMockDepartmentRepository(t)
	readCache := mocks.NewMockReadCache(t)

	sales := newTestDepartment(t, "sales", nil)
	emea := newTestDepartment(t, "emea", sales)
	key := cache.ChildrenKey(&sales.ID)

	readCache.On("Get", ctx, key, mock.Anything).Return(cache.ErrCacheMiss)
	departmentRepo.On("FindByID", ctx, sales.ID).Return(sales, nil)
	departmentRepo.On("FindChildren", ctx, sales.ID).Return([]*entity.Department{emea}, nil)
	readCache.On("Set", ctx, key, mock.Anything).Return(nil)

	output, err := query.NewListChildDepartmentsQuery(departmentRepo, readCache).Execute(ctx, query.ListChildDepartmentsInput{ParentID: &sales.ID})

	require.NoError(t, err)
	require.Len(t, output.Departments, 1)
	assert.Equal(t, "sales.emea", output.Departments[0].Path)
	assert.Equal(t, int16(1), output.Departments[0].Depth)
}

func TestListChildDepartmentsQuery_Execute_EmptyListIsNotNil(t *testing.T) {
	ctx := context.Background()
	departmentRepo := mocks.NewMockDepartmentRepository(t)
	readCache := mocks.NewMockReadCache(t)

	readCache.On("Get", ctx, cache.ChildrenKey(nil), mock.Anything).Return(cache.ErrCacheMiss)
	departmentRepo.On("FindRoots", ctx).Return([]*entity.Department{}, nil)
	readCache.On("Set", ctx, cache.ChildrenKey(nil), []query.DepartmentView{}).Return(nil)

	output, err := query.NewListChildDepartmentsQuery(departmentRepo, readCache).Execute(ctx, query.ListChildDepartmentsInput{})

	require.NoError(t, err)
	assert.NotNil(t, output.Departments)
	assert.Empty(t, output.Departments)
}

func TestListChildDepartmentsQuery_Execute_InactiveParent(t *testing.T) {
	ctx := context.Background()
	departmentRepo := mocks.NewMockDepartmentRepository(t)
	readCache := mocks.NewMockReadCache(t)

	legacy := newTestDepartment(t, "legacy", nil)
	legacy.SoftDelete(time.Now())

	readCache.On("Get", ctx, cache.ChildrenKey(&legacy.ID), mock.Anything).Return(cache.ErrCacheMiss)
	departmentRepo.On("FindByID", ctx, legacy.ID).Return(legacy, nil)

	_, err := query.NewListChildDepartmentsQuery(departmentRepo, readCache).Execute(ctx, query.ListChildDepartmentsInput{ParentID: &legacy.ID})

	assert.True(t, apperror.IsNotFound(err))
	departmentRepo.AssertNotCalled(t, "FindChildren")
}

func TestListChildDepartmentsQuery_Execute_CacheHit(t *testing.T) {
	ctx := context.Background()
	departmentRepo := mocks.NewMockDepartmentRepository(t)
	readCache := mocks.NewMockReadCache(t)
	parentID := uuid.New()

	cached := []query.DepartmentView{{ID: uuid.New(), Path: "sales.emea", Depth: 1, IsActive: true}}
	readCache.On("Get", ctx, cache.ChildrenKey(&parentID), mock.AnythingOfType("*[]query.DepartmentView")).
		Run(func(args mock.Arguments) {
			*args.Get(2).(*[]query.DepartmentView) = cached
		}).
		Return(nil)

	output, err := query.NewListChildDepartmentsQuery(departmentRepo, readCache).Execute(ctx, query.ListChildDepartmentsInput{ParentID: &parentID})

	require.NoError(t, err)
	assert.Equal(t, cached, output.Departments)
}
