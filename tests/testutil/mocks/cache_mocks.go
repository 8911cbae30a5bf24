package mocks

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockDepartmentCacheInvalidator is a mock of service.DepartmentCacheInvalidator
type MockDepartmentCacheInvalidator struct {
	mock.Mock
}

func NewMockDepartmentCacheInvalidator(t *testing.T) *MockDepartmentCacheInvalidator {
	m := &MockDepartmentCacheInvalidator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockDepartmentCacheInvalidator) InvalidateDepartments(ctx context.Context, ids ...uuid.UUID) {
	m.Called(ctx, ids)
}

func (m *MockDepartmentCacheInvalidator) InvalidateListings(ctx context.Context) {
	m.Called(ctx)
}

// MockReadCache is a mock of the query-side department cache
type MockReadCache struct {
	mock.Mock
}

func NewMockReadCache(t *testing.T) *MockReadCache {
	m := &MockReadCache{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockReadCache) Get(ctx context.Context, key string, dest any) error {
	args := m.Called(ctx, key, dest)
	return args.Error(0)
}

func (m *MockReadCache) Set(ctx context.Context, key string, value any) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

// FixedClock returns the same instant on every call
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time {
	return c.At
}
