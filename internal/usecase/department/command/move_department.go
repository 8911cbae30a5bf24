package command

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Radmir675/Divisions-sub000/internal/domain/entity"
	"github.com/Radmir675/Divisions-sub000/internal/domain/repository"
	"github.com/Radmir675/Divisions-sub000/internal/domain/service"
	"github.com/Radmir675/Divisions-sub000/pkg/apperror"
	"github.com/Radmir675/Divisions-sub000/pkg/logger"
)

// MoveDepartmentInput は部門移動の入力を定義します
type MoveDepartmentInput struct {
	DepartmentID uuid.UUID
	NewParentID  *uuid.UUID // nil の場合はルートへ移動
}

// MoveDepartmentOutput は部門移動の出力を定義します
type MoveDepartmentOutput struct {
	Department *entity.Department
}

// MoveDepartmentCommand は部門移動コマンドです
type MoveDepartmentCommand struct {
	departmentRepo   repository.DepartmentRepository
	hierarchyRepo    repository.DepartmentHierarchyRepository
	txManager        repository.TransactionManager
	hierarchyService service.DepartmentHierarchyService
	invalidator      service.DepartmentCacheInvalidator
}

// NewMoveDepartmentCommand は新しいMoveDepartmentCommandを作成します
func NewMoveDepartmentCommand(
	departmentRepo repository.DepartmentRepository,
	hierarchyRepo repository.DepartmentHierarchyRepository,
	txManager repository.TransactionManager,
	hierarchyService service.DepartmentHierarchyService,
	invalidator service.DepartmentCacheInvalidator,
) *MoveDepartmentCommand {
	return &MoveDepartmentCommand{
		departmentRepo:   departmentRepo,
		hierarchyRepo:    hierarchyRepo,
		txManager:        txManager,
		hierarchyService: hierarchyService,
		invalidator:      invalidator,
	}
}

// Execute は部門移動を実行します
// 新しい親 → 部門 → 部門の部分木の順にロックし、自身を保存してから子孫のdepth/pathを一括更新します
func (c *MoveDepartmentCommand) Execute(ctx context.Context, input MoveDepartmentInput) (*MoveDepartmentOutput, error) {
	// 1. 自身を親にはできない
	if input.NewParentID != nil && *input.NewParentID == input.DepartmentID {
		return nil, domainError(entity.ErrDepartmentSelfParent)
	}

	var (
		department  *entity.Department
		oldParentID *uuid.UUID
		subtree     []uuid.UUID
	)
	err := c.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		var err error

		// 2. 新しい親をロック（有効であることは呼び出し側＝このコマンドの責務）
		var newParent *entity.Department
		if input.NewParentID != nil {
			newParent, err = lockActive(ctx, c.departmentRepo, *input.NewParentID, parentNotFound)
			if err != nil {
				return err
			}
		}

		// 3. 部門をロック
		department, err = lockActive(ctx, c.departmentRepo, input.DepartmentID, departmentNotFound)
		if err != nil {
			return err
		}

		// 4. 部分木をロック
		subtree, err = c.hierarchyRepo.LockDescendants(ctx, department.Path)
		if err != nil {
			return err
		}

		// 5. 循環参照チェック
		if err := c.hierarchyService.ValidateMove(department, input.NewParentID, subtree); err != nil {
			return domainError(err)
		}

		// 6. 変更前の状態を記録
		oldPath := department.Path
		oldDepth := department.Depth
		oldParentID = department.ParentID

		// 7. 自身のpath/depthを再計算
		if err := department.MoveTo(newParent); err != nil {
			return domainError(err)
		}

		// 8. 自身を保存
		if err := c.departmentRepo.Update(ctx, department); err != nil {
			return err
		}

		if department.Path.Equals(oldPath) {
			return nil
		}

		// 9-11. 子孫はまだ旧パスのままなので、旧パスをキーにdepth → pathの順で更新
		delta := c.hierarchyService.DepthDelta(oldDepth, department.Depth)
		if err := c.hierarchyRepo.UpdateDescendantsDepth(ctx, oldPath, delta); err != nil {
			return err
		}
		return c.hierarchyRepo.UpdateDescendantsPath(ctx, oldPath, department.Path)
	})
	if err != nil {
		if apperror.CodeOf(err) == apperror.CodeInternalError {
			logger.Error(ctx, "failed to move department",
				zap.String("department_id", input.DepartmentID.String()),
				zap.Error(err),
			)
		}
		return nil, err
	}

	// 13. キャッシュ無効化（ベストエフォート）
	affected := append([]uuid.UUID{}, subtree...)
	if oldParentID != nil {
		affected = append(affected, *oldParentID)
	}
	if input.NewParentID != nil {
		affected = append(affected, *input.NewParentID)
	}
	c.invalidator.InvalidateDepartments(ctx, affected...)
	c.invalidator.InvalidateListings(ctx)

	logger.Info(ctx, "department moved",
		zap.String("department_id", department.ID.String()),
		zap.String("path", department.Path.String()),
		zap.Int("subtree_size", len(subtree)),
	)

	return &MoveDepartmentOutput{Department: department}, nil
}
