package command

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Radmir675/Divisions-sub000/internal/domain/repository"
	"github.com/Radmir675/Divisions-sub000/internal/domain/service"
	"github.com/Radmir675/Divisions-sub000/pkg/logger"
)

// CleanupDepartmentsInput は物理削除スイープの入力を定義します
type CleanupDepartmentsInput struct {
	Retention time.Duration
}

// CleanupDepartmentsOutput は物理削除スイープの結果です
type CleanupDepartmentsOutput struct {
	DeletedDepartments int
	DeletedLocations   int
	DeletedPositions   int
}

// CleanupDepartmentsCommand は保持期間を過ぎた論理削除済みの部門を物理削除するコマンドです
type CleanupDepartmentsCommand struct {
	departmentRepo   repository.DepartmentRepository
	hierarchyRepo    repository.DepartmentHierarchyRepository
	locationRepo     repository.LocationRepository
	positionRepo     repository.PositionRepository
	txManager        repository.TransactionManager
	hierarchyService service.DepartmentHierarchyService
	clock            service.Clock
	invalidator      service.DepartmentCacheInvalidator
}

// NewCleanupDepartmentsCommand は新しいCleanupDepartmentsCommandを作成します
func NewCleanupDepartmentsCommand(
	departmentRepo repository.DepartmentRepository,
	hierarchyRepo repository.DepartmentHierarchyRepository,
	locationRepo repository.LocationRepository,
	positionRepo repository.PositionRepository,
	txManager repository.TransactionManager,
	hierarchyService service.DepartmentHierarchyService,
	clock service.Clock,
	invalidator service.DepartmentCacheInvalidator,
) *CleanupDepartmentsCommand {
	return &CleanupDepartmentsCommand{
		departmentRepo:   departmentRepo,
		hierarchyRepo:    hierarchyRepo,
		locationRepo:     locationRepo,
		positionRepo:     positionRepo,
		txManager:        txManager,
		hierarchyService: hierarchyService,
		clock:            clock,
		invalidator:      invalidator,
	}
}

// Execute はスイープを1トランザクションで実行します
// 深い部門から順に処理し、直下の部門を削除対象の親に付け替えてから一括削除します
func (c *CleanupDepartmentsCommand) Execute(ctx context.Context, input CleanupDepartmentsInput) (*CleanupDepartmentsOutput, error) {
	threshold := c.clock.Now().Add(-input.Retention)
	output := &CleanupDepartmentsOutput{}
	var affected []uuid.UUID

	err := c.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		removable, err := c.hierarchyRepo.FindRemovable(ctx, threshold)
		if err != nil {
			return err
		}

		ids := make([]uuid.UUID, 0, len(removable))
		for _, department := range removable {
			subtree, err := c.hierarchyRepo.LockDescendants(ctx, department.Path)
			if err != nil {
				return err
			}
			affected = append(affected, subtree...)

			// 直下の部門は兄弟ごとまとめて一段上に繰り上げるため、どの子を後継にするかの選択は不要
			if err := c.hierarchyRepo.UpdateParent(ctx, department.ID, department.ParentID); err != nil {
				return err
			}
			if err := c.hierarchyRepo.UpdateDescendantsDepth(ctx, department.Path, -1); err != nil {
				return err
			}
			collapsed, err := c.hierarchyService.CollapsedPath(department)
			if err != nil {
				return domainError(err)
			}
			if err := c.hierarchyRepo.UpdateDescendantsPath(ctx, department.Path, collapsed); err != nil {
				return err
			}
			ids = append(ids, department.ID)
		}

		if err := c.departmentRepo.BulkDelete(ctx, ids); err != nil {
			return err
		}
		output.DeletedDepartments = len(ids)

		// 部門の削除で参照が外れたものも含めて回収する
		locationIDs, err := c.locationRepo.FindRemovable(ctx, threshold)
		if err != nil {
			return err
		}
		if err := c.locationRepo.BulkDelete(ctx, locationIDs); err != nil {
			return err
		}
		output.DeletedLocations = len(locationIDs)

		positionIDs, err := c.positionRepo.FindRemovable(ctx, threshold)
		if err != nil {
			return err
		}
		if err := c.positionRepo.BulkDelete(ctx, positionIDs); err != nil {
			return err
		}
		output.DeletedPositions = len(positionIDs)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if output.DeletedDepartments > 0 {
		c.invalidator.InvalidateDepartments(ctx, affected...)
		c.invalidator.InvalidateListings(ctx)
	}

	logger.Info(ctx, "department cleanup finished",
		zap.Time("threshold", threshold),
		zap.Int("departments", output.DeletedDepartments),
		zap.Int("locations", output.DeletedLocations),
		zap.Int("positions", output.DeletedPositions),
	)

	return output, nil
}
