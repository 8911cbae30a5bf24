package mocks

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Radmir675/Divisions-sub000/internal/domain/entity"
	"github.com/Radmir675/Divisions-sub000/internal/domain/valueobject"
)

// MockDepartmentRepository is a mock of repository.DepartmentRepository
type MockDepartmentRepository struct {
	mock.Mock
}

func NewMockDepartmentRepository(t *testing.T) *MockDepartmentRepository {
	m := &MockDepartmentRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockDepartmentRepository) Create(ctx context.Context, department *entity.Department) error {
	args := m.Called(ctx, department)
	return args.Error(0)
}

func (m *MockDepartmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Department, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Department), args.Error(1)
}

func (m *MockDepartmentRepository) FindByIDWithLock(ctx context.Context, id uuid.UUID) (*entity.Department, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Department), args.Error(1)
}

func (m *MockDepartmentRepository) Update(ctx context.Context, department *entity.Department) error {
	args := m.Called(ctx, department)
	return args.Error(0)
}

func (m *MockDepartmentRepository) ReplaceLocations(ctx context.Context, department *entity.Department) error {
	args := m.Called(ctx, department)
	return args.Error(0)
}

func (m *MockDepartmentRepository) FindChildren(ctx context.Context, parentID uuid.UUID) ([]*entity.Department, error) {
	args := m.Called(ctx, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Department), args.Error(1)
}

func (m *MockDepartmentRepository) FindRoots(ctx context.Context) ([]*entity.Department, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Department), args.Error(1)
}

func (m *MockDepartmentRepository) ExistsByIdentifier(ctx context.Context, identifier valueobject.Identifier) (bool, error) {
	args := m.Called(ctx, identifier)
	return args.Bool(0), args.Error(1)
}

func (m *MockDepartmentRepository) BulkDelete(ctx context.Context, ids []uuid.UUID) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

// MockDepartmentHierarchyRepository is a mock of repository.DepartmentHierarchyRepository
type MockDepartmentHierarchyRepository struct {
	mock.Mock
}

func NewMockDepartmentHierarchyRepository(t *testing.T) *MockDepartmentHierarchyRepository {
	m := &MockDepartmentHierarchyRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockDepartmentHierarchyRepository) LockDescendants(ctx context.Context, rootPath valueobject.Path) ([]uuid.UUID, error) {
	args := m.Called(ctx, rootPath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockDepartmentHierarchyRepository) UpdateDescendantsPath(ctx context.Context, oldPath, newPath valueobject.Path) error {
	args := m.Called(ctx, oldPath, newPath)
	return args.Error(0)
}

func (m *MockDepartmentHierarchyRepository) UpdateDescendantsDepth(ctx context.Context, basePath valueobject.Path, delta int16) error {
	args := m.Called(ctx, basePath, delta)
	return args.Error(0)
}

func (m *MockDepartmentHierarchyRepository) UpdateParent(ctx context.Context, oldParentID uuid.UUID, newParentID *uuid.UUID) error {
	args := m.Called(ctx, oldParentID, newParentID)
	return args.Error(0)
}

func (m *MockDepartmentHierarchyRepository) FindRemovable(ctx context.Context, olderThan time.Time) ([]*entity.Department, error) {
	args := m.Called(ctx, olderThan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Department), args.Error(1)
}
