package command

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Radmir675/Divisions-sub000/internal/domain/entity"
	"github.com/Radmir675/Divisions-sub000/internal/domain/repository"
	"github.com/Radmir675/Divisions-sub000/internal/domain/service"
	"github.com/Radmir675/Divisions-sub000/internal/domain/valueobject"
	"github.com/Radmir675/Divisions-sub000/pkg/apperror"
	"github.com/Radmir675/Divisions-sub000/pkg/logger"
)

// CreateDepartmentInput は部門作成の入力を定義します
type CreateDepartmentInput struct {
	Name        string
	Identifier  string
	ParentID    *uuid.UUID // nil の場合はルート部門
	LocationIDs []uuid.UUID
}

// CreateDepartmentOutput は部門作成の出力を定義します
type CreateDepartmentOutput struct {
	Department *entity.Department
}

// CreateDepartmentCommand は部門作成コマンドです
type CreateDepartmentCommand struct {
	departmentRepo repository.DepartmentRepository
	locationRepo   repository.LocationRepository
	txManager      repository.TransactionManager
	invalidator    service.DepartmentCacheInvalidator
}

// NewCreateDepartmentCommand は新しいCreateDepartmentCommandを作成します
func NewCreateDepartmentCommand(
	departmentRepo repository.DepartmentRepository,
	locationRepo repository.LocationRepository,
	txManager repository.TransactionManager,
	invalidator service.DepartmentCacheInvalidator,
) *CreateDepartmentCommand {
	return &CreateDepartmentCommand{
		departmentRepo: departmentRepo,
		locationRepo:   locationRepo,
		txManager:      txManager,
		invalidator:    invalidator,
	}
}

// Execute は部門作成を実行します
func (c *CreateDepartmentCommand) Execute(ctx context.Context, input CreateDepartmentInput) (*CreateDepartmentOutput, error) {
	// 1. 入力検証
	var invalid fieldErrors
	name, err := valueobject.NewDepartmentName(input.Name)
	invalid.add("name", err)
	identifier, err := valueobject.NewIdentifier(input.Identifier)
	invalid.add("identifier", err)
	invalid.add("locationIds", entity.ValidateLocationIDs(input.LocationIDs))
	if err := invalid.err(); err != nil {
		return nil, err
	}

	var department *entity.Department
	err = c.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		// 2. Identifierの重複チェック（論理削除済みも含む）
		exists, err := c.departmentRepo.ExistsByIdentifier(ctx, identifier)
		if err != nil {
			return err
		}
		if exists {
			return apperror.NewConflictError("department identifier already in use").
				WithField("identifier", identifier.String())
		}

		// 3. ロケーションの存在チェック
		locations, err := c.locationRepo.FindByIDs(ctx, input.LocationIDs)
		if err != nil {
			return err
		}
		if err := ensureLocationsActive(input.LocationIDs, locations); err != nil {
			return err
		}

		// 4. 親部門をロックして作成
		if input.ParentID != nil {
			parent, err := lockActive(ctx, c.departmentRepo, *input.ParentID, parentNotFound)
			if err != nil {
				return err
			}
			department, err = entity.NewChildDepartment(name, identifier, parent, input.LocationIDs)
			if err != nil {
				return domainError(err)
			}
		} else {
			department, err = entity.NewParentDepartment(name, identifier, input.LocationIDs)
			if err != nil {
				return domainError(err)
			}
		}

		return c.departmentRepo.Create(ctx, department)
	})
	if err != nil {
		return nil, err
	}

	if input.ParentID != nil {
		c.invalidator.InvalidateDepartments(ctx, *input.ParentID)
	}
	c.invalidator.InvalidateListings(ctx)

	logger.Info(ctx, "department created",
		zap.String("department_id", department.ID.String()),
		zap.String("path", department.Path.String()),
	)

	return &CreateDepartmentOutput{Department: department}, nil
}
