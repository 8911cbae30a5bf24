package command

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Radmir675/Divisions-sub000/internal/domain/entity"
	"github.com/Radmir675/Divisions-sub000/internal/domain/repository"
	"github.com/Radmir675/Divisions-sub000/internal/domain/service"
	"github.com/Radmir675/Divisions-sub000/pkg/logger"
)

// SoftDeleteDepartmentInput は部門論理削除の入力を定義します
type SoftDeleteDepartmentInput struct {
	DepartmentID uuid.UUID
}

// SoftDeleteDepartmentOutput は部門論理削除の出力を定義します
type SoftDeleteDepartmentOutput struct {
	DepartmentID       uuid.UUID
	Path               string
	DeletedLocations   int
	DeletedPositions   int
	UpdatedDescendants int
}

// SoftDeleteDepartmentCommand は部門論理削除コマンドです
type SoftDeleteDepartmentCommand struct {
	departmentRepo repository.DepartmentRepository
	hierarchyRepo  repository.DepartmentHierarchyRepository
	locationRepo   repository.LocationRepository
	positionRepo   repository.PositionRepository
	txManager      repository.TransactionManager
	clock          service.Clock
	invalidator    service.DepartmentCacheInvalidator
}

// NewSoftDeleteDepartmentCommand は新しいSoftDeleteDepartmentCommandを作成します
func NewSoftDeleteDepartmentCommand(
	departmentRepo repository.DepartmentRepository,
	hierarchyRepo repository.DepartmentHierarchyRepository,
	locationRepo repository.LocationRepository,
	positionRepo repository.PositionRepository,
	txManager repository.TransactionManager,
	clock service.Clock,
	invalidator service.DepartmentCacheInvalidator,
) *SoftDeleteDepartmentCommand {
	return &SoftDeleteDepartmentCommand{
		departmentRepo: departmentRepo,
		hierarchyRepo:  hierarchyRepo,
		locationRepo:   locationRepo,
		positionRepo:   positionRepo,
		txManager:      txManager,
		clock:          clock,
		invalidator:    invalidator,
	}
}

// Execute は部門の論理削除を実行します
// 子孫は有効なまま残り、パスだけが削除済みIdentifierを含む形に書き換わります
func (c *SoftDeleteDepartmentCommand) Execute(ctx context.Context, input SoftDeleteDepartmentInput) (*SoftDeleteDepartmentOutput, error) {
	var (
		output  = &SoftDeleteDepartmentOutput{DepartmentID: input.DepartmentID}
		subtree []uuid.UUID
		parent  *uuid.UUID
	)

	err := c.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		// 1. 部門をロック（論理削除済みはNotFound）
		department, err := lockActive(ctx, c.departmentRepo, input.DepartmentID, departmentNotFound)
		if err != nil {
			return err
		}
		parent = department.ParentID

		// 2. 部分木をロック
		subtree, err = c.hierarchyRepo.LockDescendants(ctx, department.Path)
		if err != nil {
			return err
		}

		// 3. 自身を論理削除（Identifierとパスの最終セグメントを書き換え）
		oldPath := department.Path
		department.SoftDelete(c.clock.Now())

		// 再利用されたIdentifierの削除済み部門がまだ残っていれば、マーカーを部門IDで一意にする
		taken, err := c.departmentRepo.ExistsByIdentifier(ctx, department.Identifier)
		if err != nil {
			return err
		}
		if taken {
			department.DisambiguateDeletedIdentifier()
		}
		if err := c.departmentRepo.Update(ctx, department); err != nil {
			return err
		}
		output.Path = department.Path.String()

		// 4. 子孫のパスを書き換え（depthは変わらない）
		if len(subtree) > 1 {
			if err := c.hierarchyRepo.UpdateDescendantsPath(ctx, oldPath, department.Path); err != nil {
				return err
			}
			output.UpdatedDescendants = len(subtree) - 1
		}

		// 5. この部門だけが参照していたロケーション・役職を論理削除
		output.DeletedLocations, err = c.cascadeLocations(ctx, department)
		if err != nil {
			return err
		}
		output.DeletedPositions, err = c.cascadePositions(ctx, department)
		return err
	})
	if err != nil {
		return nil, err
	}

	affected := append([]uuid.UUID{}, subtree...)
	if parent != nil {
		affected = append(affected, *parent)
	}
	c.invalidator.InvalidateDepartments(ctx, affected...)
	c.invalidator.InvalidateListings(ctx)

	logger.Info(ctx, "department soft deleted",
		zap.String("department_id", input.DepartmentID.String()),
		zap.String("path", output.Path),
		zap.Int("descendants", output.UpdatedDescendants),
		zap.Int("locations", output.DeletedLocations),
		zap.Int("positions", output.DeletedPositions),
	)

	return output, nil
}

// cascadeLocations は関連するロケーションを先にロックしてから排他判定します
// 同じロケーションを共有する部門の並行削除は、このロックで直列化されコミット後の状態を参照します
func (c *SoftDeleteDepartmentCommand) cascadeLocations(ctx context.Context, department *entity.Department) (int, error) {
	linkedIDs := department.LocationIDs()
	if len(linkedIDs) == 0 {
		return 0, nil
	}
	locations, err := c.locationRepo.FindByIDsWithLock(ctx, linkedIDs)
	if err != nil || len(locations) == 0 {
		return 0, err
	}
	exclusive, err := c.locationRepo.FindExclusivelyLinked(ctx, department.ID)
	if err != nil {
		return 0, err
	}
	locations = selectByID(locations, exclusive, func(l *entity.Location) uuid.UUID { return l.ID })
	return softDeleteAll(ctx, c.clock.Now(), locations, c.locationRepo.Update)
}

func (c *SoftDeleteDepartmentCommand) cascadePositions(ctx context.Context, department *entity.Department) (int, error) {
	linkedIDs := department.PositionIDs()
	if len(linkedIDs) == 0 {
		return 0, nil
	}
	positions, err := c.positionRepo.FindByIDsWithLock(ctx, linkedIDs)
	if err != nil || len(positions) == 0 {
		return 0, err
	}
	exclusive, err := c.positionRepo.FindExclusivelyLinked(ctx, department.ID)
	if err != nil {
		return 0, err
	}
	positions = selectByID(positions, exclusive, func(p *entity.Position) uuid.UUID { return p.ID })
	return softDeleteAll(ctx, c.clock.Now(), positions, c.positionRepo.Update)
}

// selectByID はidsに含まれる要素だけを元の順序で返します
func selectByID[T any](items []T, ids []uuid.UUID, idOf func(T) uuid.UUID) []T {
	wanted := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	selected := make([]T, 0, len(ids))
	for _, item := range items {
		if _, ok := wanted[idOf(item)]; ok {
			selected = append(selected, item)
		}
	}
	return selected
}

// softDeleteAll は有効な集約だけを論理削除して保存し、件数を返します
func softDeleteAll[T entity.SoftDeletable](
	ctx context.Context,
	at time.Time,
	items []T,
	save func(context.Context, T) error,
) (int, error) {
	deleted := 0
	for _, item := range items {
		if !item.IsActive() {
			continue
		}
		item.SoftDelete(at)
		if err := save(ctx, item); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}
