package valueobject

import (
	"errors"
	"strings"
)

// PathSeparator は階層パスのセグメント区切り文字です
// Identifierでは使用できない予約文字です
const PathSeparator = "."

var (
	ErrPathEmpty        = errors.New("path cannot be empty")
	ErrPathEmptySegment = errors.New("path contains an empty segment")
	ErrPathStripRoot    = errors.New("cannot strip the only segment of a root path")
)

// Path は部門の祖先チェーンを表すマテリアライズドパスです
// 例: "root.child.grandchild"
type Path struct {
	value string
}

// BuildPath はIdentifierと親パスからパスを構築します
// 親パスがnilの場合はルートパス（identifierのみ）を返します
func BuildPath(identifier Identifier, parent *Path) Path {
	if parent == nil || parent.IsEmpty() {
		return Path{value: identifier.String()}
	}
	return Path{value: parent.value + PathSeparator + identifier.String()}
}

// ParsePath は永続化された文字列からPathを復元します
func ParsePath(value string) (Path, error) {
	if value == "" {
		return Path{}, ErrPathEmpty
	}
	for _, segment := range strings.Split(value, PathSeparator) {
		if segment == "" {
			return Path{}, ErrPathEmptySegment
		}
	}
	return Path{value: value}, nil
}

// StripSegment は最も深いセグメントを取り除いたパスを返します
// ルートパスに対しては ErrPathStripRoot を返すため、呼び出し側で深さを確認してください
func (p Path) StripSegment() (Path, error) {
	idx := strings.LastIndex(p.value, PathSeparator)
	if idx < 0 {
		return Path{}, ErrPathStripRoot
	}
	return Path{value: p.value[:idx]}, nil
}

// Depth はパスの深さ（区切り文字の数）を返します。ルートは0です
func (p Path) Depth() int16 {
	if p.value == "" {
		return 0
	}
	return int16(strings.Count(p.value, PathSeparator))
}

// Segments はパスのセグメント一覧を返します
func (p Path) Segments() []string {
	if p.value == "" {
		return nil
	}
	return strings.Split(p.value, PathSeparator)
}

// Last は最も深いセグメントを返します
func (p Path) Last() string {
	idx := strings.LastIndex(p.value, PathSeparator)
	return p.value[idx+1:]
}

// Contains はotherが自身と同じか配下のパスかどうかを判定します
func (p Path) Contains(other Path) bool {
	if p.value == "" {
		return false
	}
	return other.value == p.value || strings.HasPrefix(other.value, p.value+PathSeparator)
}

// String は文字列を返します
func (p Path) String() string {
	return p.value
}

// IsEmpty は空かどうかを判定します
func (p Path) IsEmpty() bool {
	return p.value == ""
}

// Equals は等価性を判定します
func (p Path) Equals(other Path) bool {
	return p.value == other.value
}
