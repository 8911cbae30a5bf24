package command_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Radmir675/Divisions-sub000/internal/domain/entity"
	"github.com/Radmir675/Divisions-sub000/internal/usecase/department/command"
	"github.com/Radmir675/Divisions-sub000/pkg/apperror"
	"github.com/Radmir675/Divisions-sub000/tests/testutil/mocks"
)

func TestUpdateDepartmentLocationsCommand_Execute_Overwrites(t *testing.T) {
	ctx := context.Background()
	departmentRepo := mocks.NewMockDepartmentRepository(t)
	locationRepo := mocks.NewMockLocationRepository(t)
	invalidator := mocks.NewMockDepartmentCacheInvalidator(t)

	sales := newRootDepartment(t, "sales")
	first := newActiveLocation(t)
	second := newActiveLocation(t)
	ids := []uuid.UUID{first.ID, second.ID}

	departmentRepo.On("FindByIDWithLock", ctx, sales.ID).Return(sales, nil)
	locationRepo.On("FindByIDs", ctx, ids).Return([]*entity.Location{first, second}, nil)
	departmentRepo.On("ReplaceLocations", ctx, sales).Return(nil)
	departmentRepo.On("Update", ctx, sales).Return(nil)
	invalidator.On("InvalidateDepartments", ctx, []uuid.UUID{sales.ID}).Return()

	cmd := command.NewUpdateDepartmentLocationsCommand(departmentRepo, locationRepo, mocks.NewMockTransactionManager(t), invalidator)
	output, err := cmd.Execute(ctx, command.UpdateDepartmentLocationsInput{DepartmentID: sales.ID, LocationIDs: ids})

	require.NoError(t, err)
	assert.Equal(t, ids, output.Department.LocationIDs())
	for _, link := range output.Department.Locations {
		assert.Equal(t, sales.ID, link.DepartmentID)
	}
}

func TestUpdateDepartmentLocationsCommand_Execute_Validation(t *testing.T) {
	ctx := context.Background()
	dup := uuid.New()

	tests := []struct {
		name string
		ids  []uuid.UUID
	}{
		{name: "empty", ids: nil},
		{name: "duplicate", ids: []uuid.UUID{dup, dup}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := command.NewUpdateDepartmentLocationsCommand(
				mocks.NewMockDepartmentRepository(t),
				mocks.NewMockLocationRepository(t),
				mocks.NewMockTransactionManager(t),
				mocks.NewMockDepartmentCacheInvalidator(t),
			)
			_, err := cmd.Execute(ctx, command.UpdateDepartmentLocationsInput{DepartmentID: uuid.New(), LocationIDs: tt.ids})

			require.Error(t, err)
			appErr, ok := apperror.As(err)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeValidationError, appErr.Code)
			assert.Equal(t, "locationIds", appErr.Details[0].Field)
		})
	}
}

func TestUpdateDepartmentLocationsCommand_Execute_UnknownLocation(t *testing.T) {
	ctx := context.Background()
	departmentRepo := mocks.NewMockDepartmentRepository(t)
	locationRepo := mocks.NewMockLocationRepository(t)
	txManager := mocks.NewMockTransactionManager(t)

	sales := newRootDepartment(t, "sales")
	known := newActiveLocation(t)
	unknown := uuid.New()
	ids := []uuid.UUID{known.ID, unknown}

	departmentRepo.On("FindByIDWithLock", ctx, sales.ID).Return(sales, nil)
	locationRepo.On("FindByIDs", ctx, ids).Return([]*entity.Location{known}, nil)

	cmd := command.NewUpdateDepartmentLocationsCommand(departmentRepo, locationRepo, txManager, mocks.NewMockDepartmentCacheInvalidator(t))
	_, err := cmd.Execute(ctx, command.UpdateDepartmentLocationsInput{DepartmentID: sales.ID, LocationIDs: ids})

	assert.True(t, apperror.IsNotFound(err))
	assert.Equal(t, 1, txManager.Rollbacks)
	departmentRepo.AssertNotCalled(t, "ReplaceLocations")
}
