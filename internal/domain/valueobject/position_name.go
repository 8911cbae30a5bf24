package valueobject

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const (
	PositionNameMinLength = 3
	PositionNameMaxLength = 100
)

var ErrPositionNameLength = errors.New("position name must be between 3 and 100 characters")

// PositionName は役職名を表す値オブジェクト
type PositionName struct {
	value string
}

// NewPositionName は文字列からPositionNameを生成します
func NewPositionName(name string) (PositionName, error) {
	trimmed := strings.TrimSpace(name)
	length := utf8.RuneCountInString(trimmed)
	if length < PositionNameMinLength || length > PositionNameMaxLength {
		return PositionName{}, ErrPositionNameLength
	}
	return PositionName{value: trimmed}, nil
}

// String は文字列を返します
func (n PositionName) String() string {
	return n.value
}
