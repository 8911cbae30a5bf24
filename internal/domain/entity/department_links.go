package entity

import "github.com/google/uuid"

// DepartmentLocation は部門とロケーションの関連エンティティです
type DepartmentLocation struct {
	ID           uuid.UUID
	DepartmentID uuid.UUID
	LocationID   uuid.UUID
}

// NewDepartmentLocation は新しい関連を作成します
func NewDepartmentLocation(departmentID, locationID uuid.UUID) DepartmentLocation {
	return DepartmentLocation{
		ID:           uuid.New(),
		DepartmentID: departmentID,
		LocationID:   locationID,
	}
}

// DepartmentPosition は部門と役職の関連エンティティです
type DepartmentPosition struct {
	ID           uuid.UUID
	DepartmentID uuid.UUID
	PositionID   uuid.UUID
}

// NewDepartmentPosition は新しい関連を作成します
func NewDepartmentPosition(departmentID, positionID uuid.UUID) DepartmentPosition {
	return DepartmentPosition{
		ID:           uuid.New(),
		DepartmentID: departmentID,
		PositionID:   positionID,
	}
}
