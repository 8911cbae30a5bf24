package valueobject

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const (
	DepartmentNameMinLength = 3
	DepartmentNameMaxLength = 150
)

var (
	ErrDepartmentNameEmpty    = errors.New("department name cannot be empty")
	ErrDepartmentNameTooShort = errors.New("department name too short")
	ErrDepartmentNameTooLong  = errors.New("department name too long")
)

// DepartmentName は部門の表示名を表す値オブジェクト
type DepartmentName struct {
	value string
}

// NewDepartmentName は文字列からDepartmentNameを生成します
func NewDepartmentName(name string) (DepartmentName, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return DepartmentName{}, ErrDepartmentNameEmpty
	}

	length := utf8.RuneCountInString(trimmed)
	if length < DepartmentNameMinLength {
		return DepartmentName{}, ErrDepartmentNameTooShort
	}
	if length > DepartmentNameMaxLength {
		return DepartmentName{}, ErrDepartmentNameTooLong
	}

	return DepartmentName{value: trimmed}, nil
}

// String は文字列を返します
func (n DepartmentName) String() string {
	return n.value
}

// Equals は等価性を判定します
func (n DepartmentName) Equals(other DepartmentName) bool {
	return n.value == other.value
}
