package valueobject

import (
	"errors"
	"time"
)

var (
	ErrTimezoneEmpty   = errors.New("timezone cannot be empty")
	ErrTimezoneInvalid = errors.New("invalid IANA timezone")
)

// Timezone はロケーションのタイムゾーンです
// IANA Time Zone Database形式 (例: "Europe/Moscow", "UTC")
type Timezone struct {
	value string
}

// NewTimezone はIANA形式を検証してTimezoneを作成します
func NewTimezone(value string) (Timezone, error) {
	if value == "" {
		return Timezone{}, ErrTimezoneEmpty
	}
	if _, err := time.LoadLocation(value); err != nil {
		return Timezone{}, ErrTimezoneInvalid
	}
	return Timezone{value: value}, nil
}

// String はタイムゾーンを文字列で返します
func (t Timezone) String() string {
	return t.value
}

// Location はtime.Locationを返します。不正な値の場合はUTCです
func (t Timezone) Location() *time.Location {
	loc, err := time.LoadLocation(t.value)
	if err != nil {
		return time.UTC
	}
	return loc
}

// UTCTimezone はUTCを返します
func UTCTimezone() Timezone {
	return Timezone{value: "UTC"}
}
