package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/Radmir675/Divisions-sub000/internal/domain/valueobject"
)

// Position は役職集約です
type Position struct {
	ID          uuid.UUID
	Name        valueobject.PositionName
	Description string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// NewPosition は新しい役職を作成します
func NewPosition(name valueobject.PositionName, description string) *Position {
	now := time.Now()
	return &Position{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ReconstructPosition はDBから役職を復元します
func ReconstructPosition(
	id uuid.UUID,
	name valueobject.PositionName,
	description string,
	active bool,
	createdAt time.Time,
	updatedAt time.Time,
	deletedAt *time.Time,
) *Position {
	return &Position{
		ID:          id,
		Name:        name,
		Description: description,
		Active:      active,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
	}
}

func (p *Position) IsActive() bool {
	return p.Active
}

func (p *Position) SoftDelete(at time.Time) {
	p.Active = false
	p.DeletedAt = &at
	p.UpdatedAt = at
}

func (p *Position) Restore() {
	p.Active = true
	p.DeletedAt = nil
	p.UpdatedAt = time.Now()
}
