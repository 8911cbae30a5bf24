package entity

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Radmir675/Divisions-sub000/internal/domain/valueobject"
)

// 部門関連エラー
var (
	ErrDepartmentSelfParent        = errors.New("department cannot be its own parent")
	ErrDepartmentCircularMove      = errors.New("cannot move department into its own subtree")
	ErrDepartmentPathInvariant     = errors.New("department path does not match its depth")
	ErrDepartmentLocationsRequired = errors.New("department must have at least one location")
	ErrDepartmentDuplicateLocation = errors.New("department locations must be unique")
)

// Department は部門エンティティ（集約ルート）
// Path が部分木の所属を決める唯一の情報源であり、親子のナビゲーションは保持しない
type Department struct {
	ID         uuid.UUID
	Name       valueobject.DepartmentName
	Identifier valueobject.Identifier
	ParentID   *uuid.UUID
	Path       valueobject.Path
	Depth      int16
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time

	Locations []DepartmentLocation
	Positions []DepartmentPosition
}

// NewParentDepartment はルート部門を作成します（depth = 0, path = identifier）
func NewParentDepartment(
	name valueobject.DepartmentName,
	identifier valueobject.Identifier,
	locationIDs []uuid.UUID,
) (*Department, error) {
	return newDepartment(name, identifier, nil, locationIDs)
}

// NewChildDepartment は親部門の配下に部門を作成します
// 親部門が有効かどうかはコマンド側で検証します
func NewChildDepartment(
	name valueobject.DepartmentName,
	identifier valueobject.Identifier,
	parent *Department,
	locationIDs []uuid.UUID,
) (*Department, error) {
	if parent == nil {
		return newDepartment(name, identifier, nil, locationIDs)
	}
	if err := parent.checkPathInvariant(); err != nil {
		return nil, err
	}
	return newDepartment(name, identifier, parent, locationIDs)
}

func newDepartment(
	name valueobject.DepartmentName,
	identifier valueobject.Identifier,
	parent *Department,
	locationIDs []uuid.UUID,
) (*Department, error) {
	if err := ValidateLocationIDs(locationIDs); err != nil {
		return nil, err
	}

	now := time.Now()
	d := &Department{
		ID:         uuid.New(),
		Name:       name,
		Identifier: identifier,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	d.attachTo(parent)
	d.Locations = buildLocationLinks(d.ID, locationIDs)

	return d, nil
}

// ReconstructDepartment はDBから部門を復元します
func ReconstructDepartment(
	id uuid.UUID,
	name valueobject.DepartmentName,
	identifier valueobject.Identifier,
	parentID *uuid.UUID,
	path valueobject.Path,
	depth int16,
	active bool,
	createdAt time.Time,
	updatedAt time.Time,
	deletedAt *time.Time,
	locations []DepartmentLocation,
	positions []DepartmentPosition,
) *Department {
	return &Department{
		ID:         id,
		Name:       name,
		Identifier: identifier,
		ParentID:   parentID,
		Path:       path,
		Depth:      depth,
		Active:     active,
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
		DeletedAt:  deletedAt,
		Locations:  locations,
		Positions:  positions,
	}
}

// Rename は部門名を変更します
func (d *Department) Rename(name valueobject.DepartmentName) {
	d.Name = name
	d.UpdatedAt = time.Now()
}

// UpdateLocations はロケーションの関連を全て置き換えます（追加ではなく上書き）
func (d *Department) UpdateLocations(locationIDs []uuid.UUID) error {
	if err := ValidateLocationIDs(locationIDs); err != nil {
		return err
	}
	d.Locations = buildLocationLinks(d.ID, locationIDs)
	d.UpdatedAt = time.Now()
	return nil
}

// MoveTo は部門を新しい親（nilならルート）へ付け替え、自身のPathとDepthを再計算します
// 子孫のPath/Depthは更新しません（リポジトリの一括更新で行います）
// 親の有効性は呼び出し側の責務です
func (d *Department) MoveTo(newParent *Department) error {
	if newParent != nil {
		if newParent.ID == d.ID {
			return ErrDepartmentSelfParent
		}
		if err := newParent.checkPathInvariant(); err != nil {
			return err
		}
		if d.Path.Contains(newParent.Path) {
			return ErrDepartmentCircularMove
		}
	}

	d.attachTo(newParent)
	d.UpdatedAt = time.Now()
	return d.checkPathInvariant()
}

// SoftDelete は部門を論理削除します
// Identifierに削除マーカーを付け、自身のPathを再構築して元のIdentifierを解放します
func (d *Department) SoftDelete(at time.Time) {
	d.Active = false
	d.DeletedAt = &at
	d.UpdatedAt = at
	d.Identifier = d.Identifier.MarkDeleted()
	d.Path = d.rebuildOwnSegment()
}

// DisambiguateDeletedIdentifier は削除済みIdentifierに部門IDを埋め込み、他の削除済み部門と衝突しないようにします
// 有効な部門には何もしません
func (d *Department) DisambiguateDeletedIdentifier() {
	if d.Active {
		return
	}
	d.Identifier = d.Identifier.MarkDeletedAs(strings.ReplaceAll(d.ID.String(), "-", ""))
	d.Path = d.rebuildOwnSegment()
}

// Restore は論理削除を取り消し、元のIdentifierとPathに戻します
// 子孫のパス書き換えと識別子の重複確認は呼び出し側の責務です
func (d *Department) Restore() {
	d.Active = true
	d.DeletedAt = nil
	d.UpdatedAt = time.Now()
	d.Identifier = d.Identifier.Original()
	d.Path = d.rebuildOwnSegment()
}

// IsActive は有効かどうかを判定します
func (d *Department) IsActive() bool {
	return d.Active
}

// IsRoot はルート部門かどうかを判定します
func (d *Department) IsRoot() bool {
	return d.ParentID == nil
}

// LocationIDs は関連するロケーションIDを返します
func (d *Department) LocationIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(d.Locations))
	for i, l := range d.Locations {
		ids[i] = l.LocationID
	}
	return ids
}

// PositionIDs は関連する役職IDを返します
func (d *Department) PositionIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(d.Positions))
	for i, p := range d.Positions {
		ids[i] = p.PositionID
	}
	return ids
}

func (d *Department) attachTo(parent *Department) {
	if parent == nil {
		d.ParentID = nil
		d.Path = valueobject.BuildPath(d.Identifier, nil)
		d.Depth = 0
		return
	}
	parentID := parent.ID
	d.ParentID = &parentID
	d.Path = valueobject.BuildPath(d.Identifier, &parent.Path)
	d.Depth = parent.Depth + 1
}

// rebuildOwnSegment は親部分を保ったまま最後のセグメントを現在のIdentifierに置き換えます
func (d *Department) rebuildOwnSegment() valueobject.Path {
	if d.Depth == 0 {
		return valueobject.BuildPath(d.Identifier, nil)
	}
	parentPath, err := d.Path.StripSegment()
	if err != nil {
		return valueobject.BuildPath(d.Identifier, nil)
	}
	return valueobject.BuildPath(d.Identifier, &parentPath)
}

func (d *Department) checkPathInvariant() error {
	if d.Path.IsEmpty() || d.Path.Depth() != d.Depth || d.Path.Last() != d.Identifier.String() {
		return ErrDepartmentPathInvariant
	}
	return nil
}

// ValidateLocationIDs はロケーションIDが1件以上かつ重複がないことを検証します
func ValidateLocationIDs(ids []uuid.UUID) error {
	if len(ids) == 0 {
		return ErrDepartmentLocationsRequired
	}
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return ErrDepartmentDuplicateLocation
		}
		seen[id] = struct{}{}
	}
	return nil
}

func buildLocationLinks(departmentID uuid.UUID, locationIDs []uuid.UUID) []DepartmentLocation {
	links := make([]DepartmentLocation, len(locationIDs))
	for i, id := range locationIDs {
		links[i] = NewDepartmentLocation(departmentID, id)
	}
	return links
}
