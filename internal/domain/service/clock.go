package service

import "time"

// Clock は現在時刻を提供します
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// NewSystemClock はシステム時刻を返すClockを作成します
func NewSystemClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}
