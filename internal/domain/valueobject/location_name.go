package valueobject

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const (
	LocationNameMinLength = 3
	LocationNameMaxLength = 120
)

var ErrLocationNameLength = errors.New("location name must be between 3 and 120 characters")

// LocationName はロケーション名を表す値オブジェクト
type LocationName struct {
	value string
}

// NewLocationName は文字列からLocationNameを生成します
func NewLocationName(name string) (LocationName, error) {
	trimmed := strings.TrimSpace(name)
	length := utf8.RuneCountInString(trimmed)
	if length < LocationNameMinLength || length > LocationNameMaxLength {
		return LocationName{}, ErrLocationNameLength
	}
	return LocationName{value: trimmed}, nil
}

// String は文字列を返します
func (n LocationName) String() string {
	return n.value
}
