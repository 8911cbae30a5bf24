package mocks

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Radmir675/Divisions-sub000/internal/domain/entity"
)

// MockLocationRepository is a mock of repository.LocationRepository
type MockLocationRepository struct {
	mock.Mock
}

func NewMockLocationRepository(t *testing.T) *MockLocationRepository {
	m := &MockLocationRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockLocationRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Location, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Location), args.Error(1)
}

func (m *MockLocationRepository) FindByIDsWithLock(ctx context.Context, ids []uuid.UUID) ([]*entity.Location, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Location), args.Error(1)
}

func (m *MockLocationRepository) Update(ctx context.Context, location *entity.Location) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}

func (m *MockLocationRepository) FindExclusivelyLinked(ctx context.Context, departmentID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, departmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockLocationRepository) FindRemovable(ctx context.Context, olderThan time.Time) ([]uuid.UUID, error) {
	args := m.Called(ctx, olderThan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockLocationRepository) BulkDelete(ctx context.Context, ids []uuid.UUID) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

// MockPositionRepository is a mock of repository.PositionRepository
type MockPositionRepository struct {
	mock.Mock
}

func NewMockPositionRepository(t *testing.T) *MockPositionRepository {
	m := &MockPositionRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockPositionRepository) FindByIDsWithLock(ctx context.Context, ids []uuid.UUID) ([]*entity.Position, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Position), args.Error(1)
}

func (m *MockPositionRepository) Update(ctx context.Context, position *entity.Position) error {
	args := m.Called(ctx, position)
	return args.Error(0)
}

func (m *MockPositionRepository) FindExclusivelyLinked(ctx context.Context, departmentID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, departmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockPositionRepository) FindRemovable(ctx context.Context, olderThan time.Time) ([]uuid.UUID, error) {
	args := m.Called(ctx, olderThan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockPositionRepository) BulkDelete(ctx context.Context, ids []uuid.UUID) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}
