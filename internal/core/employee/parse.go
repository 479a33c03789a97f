package employee

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// 日付は ISO 形式を優先し、スラッシュ・ハイフン区切りは日/月/年として解釈します。
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05-07",
	"2006-01-02 15:04:05-07:00",
	"02-01-2006",
	"02/01/2006",
	"2006/01/02",
	"02-Jan-2006",
	"2-Jan-2006",
	"2 Jan 2006",
	"Jan 2, 2006",
}

var numberCleaner = strings.NewReplacer(",", "", "₹", "", " ", "", "\u00a0", "")

// ParseDate は文字列を日付として解釈します。空文字や解釈できない値は nil です。
func ParseDate(raw string) *time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NormalizeDate(&t)
		}
	}
	return nil
}

// ParseNumber は桁区切りや通貨記号を取り除いて数値として解釈します。
// 解釈できない値や NaN / Inf は nil です。
func ParseNumber(raw string) *float64 {
	s := numberCleaner.Replace(strings.TrimSpace(raw))
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// FromFields はカラムごとの文字列値から Employee を組み立てます。
// 存在しないカラムはゼロ値のまま残ります。
func FromFields(fields map[Column]string) Employee {
	text := func(c Column) string {
		return strings.TrimSpace(fields[c])
	}
	return Employee{
		ID:                text(ColumnEmployeeID),
		EmployeeCode:      text(ColumnEmployeeCode),
		DateOfJoining:     ParseDate(fields[ColumnDateOfJoining]),
		DateOfExit:        ParseDate(fields[ColumnDateOfExit]),
		TotalCTCPA:        ParseNumber(fields[ColumnTotalCTCPA]),
		Gender:            text(ColumnGender),
		DateOfBirth:       ParseDate(fields[ColumnDateOfBirth]),
		TotalExpYrs:       ParseNumber(fields[ColumnTotalExpYrs]),
		QualificationType: text(ColumnQualificationType),
	}
}
