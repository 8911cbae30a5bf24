package command_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Radmir675/Divisions-sub000/internal/domain/entity"
	"github.com/Radmir675/Divisions-sub000/internal/domain/valueobject"
	"github.com/Radmir675/Divisions-sub000/internal/usecase/department/command"
	"github.com/Radmir675/Divisions-sub000/pkg/apperror"
	"github.com/Radmir675/Divisions-sub000/tests/testutil/mocks"
)

type createDepartmentTestDeps struct {
	departmentRepo *mocks.MockDepartmentRepository
	locationRepo   *mocks.MockLocationRepository
	txManager      *mocks.MockTransactionManager
	invalidator    *mocks.MockDepartmentCacheInvalidator
}

func newCreateDepartmentTestDeps(t *testing.T) *createDepartmentTestDeps {
	t.Helper()
	return &createDepartmentTestDeps{
		departmentRepo: mocks.NewMockDepartmentRepository(t),
		locationRepo:   mocks.NewMockLocationRepository(t),
		txManager:      mocks.NewMockTransactionManager(t),
		invalidator:    mocks.NewMockDepartmentCacheInvalidator(t),
	}
}

func (d *createDepartmentTestDeps) newCommand() *command.CreateDepartmentCommand {
	return command.NewCreateDepartmentCommand(d.departmentRepo, d.locationRepo, d.txManager, d.invalidator)
}

func TestCreateDepartmentCommand_Execute_Root(t *testing.T) {
	ctx := context.Background()
	deps := newCreateDepartmentTestDeps(t)
	location := newActiveLocation(t)
	identifier, _ := valueobject.NewIdentifier("sales")

	deps.departmentRepo.On("ExistsByIdentifier", ctx, identifier).Return(false, nil)
	deps.locationRepo.On("FindByIDs", ctx, []uuid.UUID{location.ID}).Return([]*entity.Location{location}, nil)
	deps.departmentRepo.On("Create", ctx, mock.AnythingOfType("*entity.Department")).Return(nil)
	deps.invalidator.On("InvalidateListings", ctx).Return()

	output, err := deps.newCommand().Execute(ctx, command.CreateDepartmentInput{
		Name:        "Sales",
		Identifier:  "sales",
		LocationIDs: []uuid.UUID{location.ID},
	})

	require.NoError(t, err)
	assert.Equal(t, "sales", output.Department.Path.String())
	assert.Equal(t, int16(0), output.Department.Depth)
	assert.Nil(t, output.Department.ParentID)
	assert.Equal(t, []uuid.UUID{location.ID}, output.Department.LocationIDs())
	assert.Equal(t, 1, deps.txManager.Commits)
}

func TestCreateDepartmentCommand_Execute_Child(t *testing.T) {
	ctx := context.Background()
	deps := newCreateDepartmentTestDeps(t)
	location := newActiveLocation(t)
	parent := newRootDepartment(t, "sales")
	identifier, _ := valueobject.NewIdentifier("emea")

	deps.departmentRepo.On("ExistsByIdentifier", ctx, identifier).Return(false, nil)
	deps.locationRepo.On("FindByIDs", ctx, []uuid.UUID{location.ID}).Return([]*entity.Location{location}, nil)
	deps.departmentRepo.On("FindByIDWithLock", ctx, parent.ID).Return(parent, nil)
	deps.departmentRepo.On("Create", ctx, mock.AnythingOfType("*entity.Department")).Return(nil)
	deps.invalidator.On("InvalidateDepartments", ctx, []uuid.UUID{parent.ID}).Return()
	deps.invalidator.On("InvalidateListings", ctx).Return()

	output, err := deps.newCommand().Execute(ctx, command.CreateDepartmentInput{
		Name:        "EMEA",
		Identifier:  "emea",
		ParentID:    &parent.ID,
		LocationIDs: []uuid.UUID{location.ID},
	})

	require.NoError(t, err)
	assert.Equal(t, "sales.emea", output.Department.Path.String())
	assert.Equal(t, int16(1), output.Department.Depth)
	require.NotNil(t, output.Department.ParentID)
	assert.Equal(t, parent.ID, *output.Department.ParentID)
}

func TestCreateDepartmentCommand_Execute_InvalidInput(t *testing.T) {
	ctx := context.Background()
	deps := newCreateDepartmentTestDeps(t)
	dup := uuid.New()

	_, err := deps.newCommand().Execute(ctx, command.CreateDepartmentInput{
		Name:        "ab",
		Identifier:  "has.dot",
		LocationIDs: []uuid.UUID{dup, dup},
	})

	require.Error(t, err)
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidationError, appErr.Code)
	fields := make([]string, 0, len(appErr.Details))
	for _, d := range appErr.Details {
		fields = append(fields, d.Field)
	}
	assert.ElementsMatch(t, []string{"name", "identifier", "locationIds"}, fields)
	assert.Equal(t, 0, deps.txManager.Commits)
}

func TestCreateDepartmentCommand_Execute_EmptyLocations(t *testing.T) {
	ctx := context.Background()
	deps := newCreateDepartmentTestDeps(t)

	_, err := deps.newCommand().Execute(ctx, command.CreateDepartmentInput{
		Name:       "Sales",
		Identifier: "sales",
	})

	assert.True(t, apperror.IsValidation(err))
}

func TestCreateDepartmentCommand_Execute_IdentifierTaken(t *testing.T) {
	ctx := context.Background()
	deps := newCreateDepartmentTestDeps(t)
	identifier, _ := valueobject.NewIdentifier("sales")

	deps.departmentRepo.On("ExistsByIdentifier", ctx, identifier).Return(true, nil)

	_, err := deps.newCommand().Execute(ctx, command.CreateDepartmentInput{
		Name:        "Sales",
		Identifier:  "sales",
		LocationIDs: []uuid.UUID{uuid.New()},
	})

	assert.True(t, apperror.IsConflict(err))
	assert.Equal(t, 1, deps.txManager.Rollbacks)
}

func TestCreateDepartmentCommand_Execute_InactiveLocation(t *testing.T) {
	ctx := context.Background()
	deps := newCreateDepartmentTestDeps(t)
	location := newActiveLocation(t)
	location.SoftDelete(fixedNow)
	identifier, _ := valueobject.NewIdentifier("sales")

	deps.departmentRepo.On("ExistsByIdentifier", ctx, identifier).Return(false, nil)
	deps.locationRepo.On("FindByIDs", ctx, []uuid.UUID{location.ID}).Return([]*entity.Location{location}, nil)

	_, err := deps.newCommand().Execute(ctx, command.CreateDepartmentInput{
		Name:        "Sales",
		Identifier:  "sales",
		LocationIDs: []uuid.UUID{location.ID},
	})

	assert.True(t, apperror.IsNotFound(err))
}

func TestCreateDepartmentCommand_Execute_ParentMissingOrInactive(t *testing.T) {
	inactive := newSoftDeletedDepartment(t, "legacy", nil, fixedNow)

	tests := []struct {
		name      string
		parentID  uuid.UUID
		parent    *entity.Department
		repoError error
	}{
		{name: "missing", parentID: uuid.New(), repoError: apperror.NewNotFoundError("department")},
		{name: "inactive", parentID: inactive.ID, parent: inactive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			deps := newCreateDepartmentTestDeps(t)
			location := newActiveLocation(t)
			identifier, _ := valueobject.NewIdentifier("emea")

			deps.departmentRepo.On("ExistsByIdentifier", ctx, identifier).Return(false, nil)
			deps.locationRepo.On("FindByIDs", ctx, []uuid.UUID{location.ID}).Return([]*entity.Location{location}, nil)
			if tt.parent != nil {
				deps.departmentRepo.On("FindByIDWithLock", ctx, tt.parentID).Return(tt.parent, nil)
			} else {
				deps.departmentRepo.On("FindByIDWithLock", ctx, tt.parentID).Return(nil, tt.repoError)
			}

			parentID := tt.parentID
			_, err := deps.newCommand().Execute(ctx, command.CreateDepartmentInput{
				Name:        "EMEA",
				Identifier:  "emea",
				ParentID:    &parentID,
				LocationIDs: []uuid.UUID{location.ID},
			})

			assert.True(t, apperror.IsNotFound(err))
			assert.Equal(t, 1, deps.txManager.Rollbacks)
		})
	}
}

func TestCreateDepartmentCommand_Execute_CreateFails(t *testing.T) {
	ctx := context.Background()
	deps := newCreateDepartmentTestDeps(t)
	location := newActiveLocation(t)
	identifier, _ := valueobject.NewIdentifier("sales")
	dbErr := errors.New("connection reset")

	deps.departmentRepo.On("ExistsByIdentifier", ctx, identifier).Return(false, nil)
	deps.locationRepo.On("FindByIDs", ctx, []uuid.UUID{location.ID}).Return([]*entity.Location{location}, nil)
	deps.departmentRepo.On("Create", ctx, mock.AnythingOfType("*entity.Department")).Return(dbErr)

	_, err := deps.newCommand().Execute(ctx, command.CreateDepartmentInput{
		Name:        "Sales",
		Identifier:  "sales",
		LocationIDs: []uuid.UUID{location.ID},
	})

	assert.ErrorIs(t, err, dbErr)
	assert.Equal(t, 1, deps.txManager.Rollbacks)
}
