package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/Radmir675/Divisions-sub000/internal/domain/valueobject"
)

// Location はロケーション集約です
// 部門階層からは「削除される部門だけが参照しているか」という観点でのみ扱われます
type Location struct {
	ID        uuid.UUID
	Name      valueobject.LocationName
	Timezone  valueobject.Timezone
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// NewLocation は新しいロケーションを作成します
func NewLocation(name valueobject.LocationName, timezone valueobject.Timezone) *Location {
	now := time.Now()
	return &Location{
		ID:        uuid.New(),
		Name:      name,
		Timezone:  timezone,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ReconstructLocation はDBからロケーションを復元します
func ReconstructLocation(
	id uuid.UUID,
	name valueobject.LocationName,
	timezone valueobject.Timezone,
	active bool,
	createdAt time.Time,
	updatedAt time.Time,
	deletedAt *time.Time,
) *Location {
	return &Location{
		ID:        id,
		Name:      name,
		Timezone:  timezone,
		Active:    active,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
	}
}

// IsActive は有効かどうかを判定します
func (l *Location) IsActive() bool {
	return l.Active
}

// SoftDelete は論理削除します
func (l *Location) SoftDelete(at time.Time) {
	l.Active = false
	l.DeletedAt = &at
	l.UpdatedAt = at
}

// Restore は論理削除を取り消します
func (l *Location) Restore() {
	l.Active = true
	l.DeletedAt = nil
	l.UpdatedAt = time.Now()
}
