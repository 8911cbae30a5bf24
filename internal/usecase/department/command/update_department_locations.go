package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/Radmir675/Divisions-sub000/internal/domain/entity"
	"github.com/Radmir675/Divisions-sub000/internal/domain/repository"
	"github.com/Radmir675/Divisions-sub000/internal/domain/service"
)

// UpdateDepartmentLocationsInput はロケーション更新の入力を定義します
type UpdateDepartmentLocationsInput struct {
	DepartmentID uuid.UUID
	LocationIDs  []uuid.UUID
}

// UpdateDepartmentLocationsOutput はロケーション更新の出力を定義します
type UpdateDepartmentLocationsOutput struct {
	Department *entity.Department
}

// UpdateDepartmentLocationsCommand は部門のロケーションを全て置き換えるコマンドです
type UpdateDepartmentLocationsCommand struct {
	departmentRepo repository.DepartmentRepository
	locationRepo   repository.LocationRepository
	txManager      repository.TransactionManager
	invalidator    service.DepartmentCacheInvalidator
}

// NewUpdateDepartmentLocationsCommand は新しいUpdateDepartmentLocationsCommandを作成します
func NewUpdateDepartmentLocationsCommand(
	departmentRepo repository.DepartmentRepository,
	locationRepo repository.LocationRepository,
	txManager repository.TransactionManager,
	invalidator service.DepartmentCacheInvalidator,
) *UpdateDepartmentLocationsCommand {
	return &UpdateDepartmentLocationsCommand{
		departmentRepo: departmentRepo,
		locationRepo:   locationRepo,
		txManager:      txManager,
		invalidator:    invalidator,
	}
}

// Execute はロケーションの上書きを実行します
func (c *UpdateDepartmentLocationsCommand) Execute(ctx context.Context, input UpdateDepartmentLocationsInput) (*UpdateDepartmentLocationsOutput, error) {
	var invalid fieldErrors
	invalid.add("locationIds", entity.ValidateLocationIDs(input.LocationIDs))
	if err := invalid.err(); err != nil {
		return nil, err
	}

	var department *entity.Department
	err := c.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		department, err = lockActive(ctx, c.departmentRepo, input.DepartmentID, departmentNotFound)
		if err != nil {
			return err
		}

		locations, err := c.locationRepo.FindByIDs(ctx, input.LocationIDs)
		if err != nil {
			return err
		}
		if err := ensureLocationsActive(input.LocationIDs, locations); err != nil {
			return err
		}

		if err := department.UpdateLocations(input.LocationIDs); err != nil {
			return domainError(err)
		}
		if err := c.departmentRepo.ReplaceLocations(ctx, department); err != nil {
			return err
		}
		return c.departmentRepo.Update(ctx, department)
	})
	if err != nil {
		return nil, err
	}

	c.invalidator.InvalidateDepartments(ctx, department.ID)

	return &UpdateDepartmentLocationsOutput{Department: department}, nil
}
