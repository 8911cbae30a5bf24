package command_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Radmir675/Divisions-sub000/internal/domain/service"
	"github.com/Radmir675/Divisions-sub000/internal/domain/valueobject"
	"github.com/Radmir675/Divisions-sub000/internal/usecase/department/command"
	"github.com/Radmir675/Divisions-sub000/pkg/apperror"
	"github.com/Radmir675/Divisions-sub000/tests/testutil/mocks"
)

type moveDepartmentTestDeps struct {
	departmentRepo *mocks.MockDepartmentRepository
	hierarchyRepo  *mocks.MockDepartmentHierarchyRepository
	txManager      *mocks.MockTransactionManager
	invalidator    *mocks.MockDepartmentCacheInvalidator
}

func newMoveDepartmentTestDeps(t *testing.T) *moveDepartmentTestDeps {
	t.Helper()
	return &moveDepartmentTestDeps{
		departmentRepo: mocks.NewMockDepartmentRepository(t),
		hierarchyRepo:  mocks.NewMockDepartmentHierarchyRepository(t),
		txManager:      mocks.NewMockTransactionManager(t),
		invalidator:    mocks.NewMockDepartmentCacheInvalidator(t),
	}
}

func (d *moveDepartmentTestDeps) newCommand() *command.MoveDepartmentCommand {
	return command.NewMoveDepartmentCommand(
		d.departmentRepo,
		d.hierarchyRepo,
		d.txManager,
		service.NewDepartmentHierarchyService(),
		d.invalidator,
	)
}

func mustPath(t *testing.T, value string) valueobject.Path {
	t.Helper()
	p, err := valueobject.ParsePath(value)
	require.NoError(t, err)
	return p
}

func TestMoveDepartmentCommand_Execute_UnderDeeperParent(t *testing.T) {
	ctx := context.Background()
	deps := newMoveDepartmentTestDeps(t)

	sales := newRootDepartment(t, "sales")
	emea := newDepartmentUnder(t, "emea", sales)
	france := newDepartmentUnder(t, "france", emea)
	ops := newRootDepartment(t, "ops")
	infra := newDepartmentUnder(t, "infra", ops)

	deps.departmentRepo.On("FindByIDWithLock", ctx, infra.ID).Return(infra, nil)
	deps.departmentRepo.On("FindByIDWithLock", ctx, emea.ID).Return(emea, nil)
	deps.hierarchyRepo.On("LockDescendants", ctx, mustPath(t, "sales.emea")).Return([]uuid.UUID{emea.ID, france.ID}, nil)
	deps.departmentRepo.On("Update", ctx, emea).Return(nil)
	deps.hierarchyRepo.On("UpdateDescendantsDepth", ctx, mustPath(t, "sales.emea"), int16(1)).Return(nil)
	deps.hierarchyRepo.On("UpdateDescendantsPath", ctx, mustPath(t, "sales.emea"), mustPath(t, "ops.infra.emea")).Return(nil)
	deps.invalidator.On("InvalidateDepartments", ctx, []uuid.UUID{emea.ID, france.ID, sales.ID, infra.ID}).Return()
	deps.invalidator.On("InvalidateListings", ctx).Return()

	output, err := deps.newCommand().Execute(ctx, command.MoveDepartmentInput{
		DepartmentID: emea.ID,
		NewParentID:  &infra.ID,
	})

	require.NoError(t, err)
	assert.Equal(t, "ops.infra.emea", output.Department.Path.String())
	assert.Equal(t, int16(2), output.Department.Depth)
	assert.Equal(t, infra.ID, *output.Department.ParentID)
	assert.Equal(t, 1, deps.txManager.Commits)
}

func TestMoveDepartmentCommand_Execute_ToRoot(t *testing.T) {
	ctx := context.Background()
	deps := newMoveDepartmentTestDeps(t)

	sales := newRootDepartment(t, "sales")
	emea := newDepartmentUnder(t, "emea", sales)

	deps.departmentRepo.On("FindByIDWithLock", ctx, emea.ID).Return(emea, nil)
	deps.hierarchyRepo.On("LockDescendants", ctx, mustPath(t, "sales.emea")).Return([]uuid.UUID{emea.ID}, nil)
	deps.departmentRepo.On("Update", ctx, emea).Return(nil)
	deps.hierarchyRepo.On("UpdateDescendantsDepth", ctx, mustPath(t, "sales.emea"), int16(-1)).Return(nil)
	deps.hierarchyRepo.On("UpdateDescendantsPath", ctx, mustPath(t, "sales.emea"), mustPath(t, "emea")).Return(nil)
	deps.invalidator.On("InvalidateDepartments", ctx, []uuid.UUID{emea.ID, sales.ID}).Return()
	deps.invalidator.On("InvalidateListings", ctx).Return()

	output, err := deps.newCommand().Execute(ctx, command.MoveDepartmentInput{DepartmentID: emea.ID})

	require.NoError(t, err)
	assert.Equal(t, "emea", output.Department.Path.String())
	assert.Equal(t, int16(0), output.Department.Depth)
	assert.Nil(t, output.Department.ParentID)
}

func TestMoveDepartmentCommand_Execute_RootToRootIsNoop(t *testing.T) {
	ctx := context.Background()
	deps := newMoveDepartmentTestDeps(t)

	sales := newRootDepartment(t, "sales")

	deps.departmentRepo.On("FindByIDWithLock", ctx, sales.ID).Return(sales, nil)
	deps.hierarchyRepo.On("LockDescendants", ctx, mustPath(t, "sales")).Return([]uuid.UUID{sales.ID}, nil)
	deps.departmentRepo.On("Update", ctx, sales).Return(nil)
	deps.invalidator.On("InvalidateDepartments", ctx, []uuid.UUID{sales.ID}).Return()
	deps.invalidator.On("InvalidateListings", ctx).Return()

	output, err := deps.newCommand().Execute(ctx, command.MoveDepartmentInput{DepartmentID: sales.ID})

	require.NoError(t, err)
	assert.Equal(t, "sales", output.Department.Path.String())
	deps.hierarchyRepo.AssertNotCalled(t, "UpdateDescendantsDepth")
	deps.hierarchyRepo.AssertNotCalled(t, "UpdateDescendantsPath")
}

func TestMoveDepartmentCommand_Execute_SelfParent(t *testing.T) {
	ctx := context.Background()
	deps := newMoveDepartmentTestDeps(t)
	id := uuid.New()

	_, err := deps.newCommand().Execute(ctx, command.MoveDepartmentInput{DepartmentID: id, NewParentID: &id})

	assert.True(t, apperror.IsValidation(err))
	assert.Equal(t, 0, deps.txManager.Commits+deps.txManager.Rollbacks)
}

func TestMoveDepartmentCommand_Execute_IntoOwnSubtree(t *testing.T) {
	ctx := context.Background()
	deps := newMoveDepartmentTestDeps(t)

	sales := newRootDepartment(t, "sales")
	emea := newDepartmentUnder(t, "emea", sales)
	france := newDepartmentUnder(t, "france", emea)

	deps.departmentRepo.On("FindByIDWithLock", ctx, france.ID).Return(france, nil)
	deps.departmentRepo.On("FindByIDWithLock", ctx, emea.ID).Return(emea, nil)
	deps.hierarchyRepo.On("LockDescendants", ctx, mustPath(t, "sales.emea")).Return([]uuid.UUID{emea.ID, france.ID}, nil)

	_, err := deps.newCommand().Execute(ctx, command.MoveDepartmentInput{
		DepartmentID: emea.ID,
		NewParentID:  &france.ID,
	})

	assert.True(t, apperror.IsConflict(err))
	assert.Equal(t, 1, deps.txManager.Rollbacks)
	assert.Equal(t, "sales.emea", emea.Path.String())
	deps.departmentRepo.AssertNotCalled(t, "Update")
}

func TestMoveDepartmentCommand_Execute_InactiveParent(t *testing.T) {
	ctx := context.Background()
	deps := newMoveDepartmentTestDeps(t)

	sales := newRootDepartment(t, "sales")
	legacy := newSoftDeletedDepartment(t, "legacy", nil, fixedNow)

	deps.departmentRepo.On("FindByIDWithLock", ctx, legacy.ID).Return(legacy, nil)

	_, err := deps.newCommand().Execute(ctx, command.MoveDepartmentInput{
		DepartmentID: sales.ID,
		NewParentID:  &legacy.ID,
	})

	assert.True(t, apperror.IsNotFound(err))
	assert.Equal(t, 1, deps.txManager.Rollbacks)
}

func TestMoveDepartmentCommand_Execute_DepartmentMissing(t *testing.T) {
	ctx := context.Background()
	deps := newMoveDepartmentTestDeps(t)
	id := uuid.New()

	deps.departmentRepo.On("FindByIDWithLock", ctx, id).Return(nil, apperror.NewNotFoundError("department"))

	_, err := deps.newCommand().Execute(ctx, command.MoveDepartmentInput{DepartmentID: id})

	require.Error(t, err)
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeNotFound, appErr.Code)
	require.NotEmpty(t, appErr.Details)
	assert.Equal(t, "departmentId", appErr.Details[0].Field)
}

func TestMoveDepartmentCommand_Execute_DescendantUpdateFailsRollsBack(t *testing.T) {
	ctx := context.Background()
	deps := newMoveDepartmentTestDeps(t)

	sales := newRootDepartment(t, "sales")
	emea := newDepartmentUnder(t, "emea", sales)
	ops := newRootDepartment(t, "ops")
	dbErr := apperror.NewInternalError(errors.New("lock timeout"))

	deps.departmentRepo.On("FindByIDWithLock", ctx, ops.ID).Return(ops, nil)
	deps.departmentRepo.On("FindByIDWithLock", ctx, emea.ID).Return(emea, nil)
	deps.hierarchyRepo.On("LockDescendants", ctx, mustPath(t, "sales.emea")).Return([]uuid.UUID{emea.ID}, nil)
	deps.departmentRepo.On("Update", ctx, emea).Return(nil)
	deps.hierarchyRepo.On("UpdateDescendantsDepth", ctx, mustPath(t, "sales.emea"), int16(0)).Return(nil)
	deps.hierarchyRepo.On("UpdateDescendantsPath", ctx, mustPath(t, "sales.emea"), mustPath(t, "ops.emea")).Return(dbErr)

	_, err := deps.newCommand().Execute(ctx, command.MoveDepartmentInput{
		DepartmentID: emea.ID,
		NewParentID:  &ops.ID,
	})

	assert.ErrorIs(t, err, dbErr)
	assert.Equal(t, 1, deps.txManager.Rollbacks)
	assert.Equal(t, 0, deps.txManager.Commits)
}
