package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/Radmir675/Divisions-sub000/internal/domain/entity"
	"github.com/Radmir675/Divisions-sub000/internal/domain/repository"
	"github.com/Radmir675/Divisions-sub000/internal/domain/service"
	"github.com/Radmir675/Divisions-sub000/internal/domain/valueobject"
)

// RenameDepartmentInput は部門名変更の入力を定義します
type RenameDepartmentInput struct {
	DepartmentID uuid.UUID
	Name         string
}

// RenameDepartmentOutput は部門名変更の出力を定義します
type RenameDepartmentOutput struct {
	Department *entity.Department
}

// RenameDepartmentCommand は部門名変更コマンドです
type RenameDepartmentCommand struct {
	departmentRepo repository.DepartmentRepository
	txManager      repository.TransactionManager
	invalidator    service.DepartmentCacheInvalidator
}

// NewRenameDepartmentCommand は新しいRenameDepartmentCommandを作成します
func NewRenameDepartmentCommand(
	departmentRepo repository.DepartmentRepository,
	txManager repository.TransactionManager,
	invalidator service.DepartmentCacheInvalidator,
) *RenameDepartmentCommand {
	return &RenameDepartmentCommand{
		departmentRepo: departmentRepo,
		txManager:      txManager,
		invalidator:    invalidator,
	}
}

// Execute は部門名変更を実行します
func (c *RenameDepartmentCommand) Execute(ctx context.Context, input RenameDepartmentInput) (*RenameDepartmentOutput, error) {
	var invalid fieldErrors
	name, err := valueobject.NewDepartmentName(input.Name)
	invalid.add("name", err)
	if err := invalid.err(); err != nil {
		return nil, err
	}

	var department *entity.Department
	err = c.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		department, err = lockActive(ctx, c.departmentRepo, input.DepartmentID, departmentNotFound)
		if err != nil {
			return err
		}

		department.Rename(name)
		return c.departmentRepo.Update(ctx, department)
	})
	if err != nil {
		return nil, err
	}

	c.invalidator.InvalidateDepartments(ctx, department.ID)
	c.invalidator.InvalidateListings(ctx)

	return &RenameDepartmentOutput{Department: department}, nil
}
