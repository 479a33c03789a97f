package report

import (
	"errors"
	"strings"
	"time"
)

var (
	// ErrInvalidTrailingYears は対象年度数が範囲外の場合に返却されます。
	ErrInvalidTrailingYears = errors.New("report: invalid trailing years")
	// ErrInvalidAsOf は基準日が不正な場合に返却されます。
	ErrInvalidAsOf = errors.New("report: invalid as-of date")
)

// ParseAsOf は "YYYY-MM-DD" 形式の基準日を解釈します。空文字は nil (現在日付) です。
func ParseAsOf(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, ErrInvalidAsOf
	}
	return &t, nil
}
