package valueobject

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	IdentifierMinLength = 3
	IdentifierMaxLength = 150

	// DeletedIdentifierPrefix は論理削除された部門のIdentifierに付与される接頭辞です
	DeletedIdentifierPrefix = "deleted_"
)

var (
	ErrIdentifierEmpty          = errors.New("identifier cannot be empty")
	ErrIdentifierTooShort       = errors.New("identifier too short")
	ErrIdentifierTooLong        = errors.New("identifier too long")
	ErrIdentifierForbiddenChars = errors.New("identifier may contain only latin letters and hyphens")
)

// Identifier は部門の人間可読な識別子（スラッグ）です
// パスのセグメントとして使われるため、区切り文字・数字・空白は使用できません
type Identifier struct {
	value string
}

// NewIdentifier は文字列からIdentifierを生成します
func NewIdentifier(value string) (Identifier, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return Identifier{}, ErrIdentifierEmpty
	}

	length := utf8.RuneCountInString(trimmed)
	if length < IdentifierMinLength {
		return Identifier{}, ErrIdentifierTooShort
	}
	if length > IdentifierMaxLength {
		return Identifier{}, ErrIdentifierTooLong
	}

	for _, r := range trimmed {
		if r == '-' {
			continue
		}
		if r > unicode.MaxASCII || !unicode.IsLetter(r) {
			return Identifier{}, ErrIdentifierForbiddenChars
		}
	}

	return Identifier{value: trimmed}, nil
}

// ReconstructIdentifier はDBの値からIdentifierを復元します（検証なし）
func ReconstructIdentifier(value string) Identifier {
	return Identifier{value: value}
}

// MarkDeleted は削除マーカー付きのIdentifierを返します
// 既にマーカーが付いている場合はそのまま返します
func (i Identifier) MarkDeleted() Identifier {
	if i.IsDeleted() {
		return i
	}
	return Identifier{value: DeletedIdentifierPrefix + i.value}
}

// MarkDeletedAs は判別子を挟んだ削除マーカー付きのIdentifierを返します（deleted_<discriminator>_<identifier>）
// 同じIdentifierの削除済み部門が残っている場合に使います
func (i Identifier) MarkDeletedAs(discriminator string) Identifier {
	original := i.Original()
	if discriminator == "" {
		return original.MarkDeleted()
	}
	return Identifier{value: DeletedIdentifierPrefix + discriminator + "_" + original.value}
}

// IsDeleted は削除マーカー付きかどうかを判定します
func (i Identifier) IsDeleted() bool {
	return strings.HasPrefix(i.value, DeletedIdentifierPrefix)
}

// Original は削除マーカーを取り除いたIdentifierを返します
// 元のIdentifierは "_" を含まないので、接頭辞の後の最初の "_" までがマーカーです
func (i Identifier) Original() Identifier {
	rest, ok := strings.CutPrefix(i.value, DeletedIdentifierPrefix)
	if !ok {
		return i
	}
	if _, original, found := strings.Cut(rest, "_"); found {
		return Identifier{value: original}
	}
	return Identifier{value: rest}
}

// String は文字列を返します
func (i Identifier) String() string {
	return i.value
}

// IsEmpty は空かどうかを判定します
func (i Identifier) IsEmpty() bool {
	return i.value == ""
}

// Equals は等価性を判定します
func (i Identifier) Equals(other Identifier) bool {
	return i.value == other.value
}
