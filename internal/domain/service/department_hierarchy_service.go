package service

import (
	"github.com/google/uuid"

	"github.com/Radmir675/Divisions-sub000/internal/domain/entity"
	"github.com/Radmir675/Divisions-sub000/internal/domain/valueobject"
)

// DepartmentHierarchyService は部門階層に関するドメインサービス
type DepartmentHierarchyService interface {
	// ValidateMove は部門移動の妥当性を検証します
	// lockedSubtree はロック済みの部門自身と子孫のIDです
	ValidateMove(department *entity.Department, newParentID *uuid.UUID, lockedSubtree []uuid.UUID) error

	// DepthDelta は移動前後の深さの差分を返します
	DepthDelta(oldDepth, newDepth int16) int16

	// CollapsedPath は部門を物理削除した際に子孫が繰り上がる先のパスを返します
	// ルート部門の場合は空のパスを返します
	CollapsedPath(department *entity.Department) (valueobject.Path, error)
}

type departmentHierarchyServiceImpl struct{}

// NewDepartmentHierarchyService は新しいDepartmentHierarchyServiceを作成します
func NewDepartmentHierarchyService() DepartmentHierarchyService {
	return &departmentHierarchyServiceImpl{}
}

func (s *departmentHierarchyServiceImpl) ValidateMove(
	department *entity.Department,
	newParentID *uuid.UUID,
	lockedSubtree []uuid.UUID,
) error {
	if newParentID == nil {
		return nil
	}

	// 自身への移動は不可
	if *newParentID == department.ID {
		return entity.ErrDepartmentSelfParent
	}

	// 子孫への移動は不可（循環参照防止）
	for _, id := range lockedSubtree {
		if *newParentID == id {
			return entity.ErrDepartmentCircularMove
		}
	}

	return nil
}

func (s *departmentHierarchyServiceImpl) DepthDelta(oldDepth, newDepth int16) int16 {
	return newDepth - oldDepth
}

func (s *departmentHierarchyServiceImpl) CollapsedPath(department *entity.Department) (valueobject.Path, error) {
	if department.Depth == 0 {
		return valueobject.Path{}, nil
	}
	return department.Path.StripSegment()
}
