package entity

import "time"

// SoftDeletable は論理削除のライフサイクルを持つ集約が実装する能力です
// Department, Location, Position が実装します
type SoftDeletable interface {
	IsActive() bool
	SoftDelete(at time.Time)
	Restore()
}

var (
	_ SoftDeletable = (*Department)(nil)
	_ SoftDeletable = (*Location)(nil)
	_ SoftDeletable = (*Position)(nil)
)
