package fiscal

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// DefaultStartMonth は会計年度の開始月 (4 月 1 日始まり) です。
const DefaultStartMonth = time.April

var tagPattern = regexp.MustCompile(`^FY-(\d{2})$`)

// Year は会計年度を終了年で表します。FY-26 は 2025-04-01 から 2026-03-31 です。
type Year int

// Tag は "FY-26" 形式のラベルを返します。
func (y Year) Tag() string {
	return fmt.Sprintf("FY-%02d", int(y)%100)
}

// ShortRange は KPI ラベル用の "25-26" 形式を返します。
func (y Year) ShortRange() string {
	return fmt.Sprintf("%02d-%02d", int(y-1)%100, int(y)%100)
}

// ParseTag は "FY-NN" を 20NN 年度として解釈します。
func ParseTag(tag string) (Year, bool) {
	m := tagPattern.FindStringSubmatch(tag)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return Year(2000 + n), true
}

// Tags は年度列をラベル列に変換します。
func Tags(years []Year) []string {
	tags := make([]string, len(years))
	for i, y := range years {
		tags[i] = y.Tag()
	}
	return tags
}

// Calendar は会計年度の開始月を保持します。ゼロ値は 4 月始まりとして扱います。
type Calendar struct {
	StartMonth time.Month
}

// NewCalendar は開始月を指定して Calendar を生成します。範囲外の月は 4 月に丸めます。
func NewCalendar(start time.Month) Calendar {
	if start < time.January || start > time.December {
		start = DefaultStartMonth
	}
	return Calendar{StartMonth: start}
}

func (c Calendar) startMonth() time.Month {
	if c.StartMonth < time.January || c.StartMonth > time.December {
		return DefaultStartMonth
	}
	return c.StartMonth
}

// YearOf は日付が属する会計年度を返します。
func (c Calendar) YearOf(d time.Time) Year {
	start := c.startMonth()
	if start == time.January {
		return Year(d.Year())
	}
	if d.Month() >= start {
		return Year(d.Year() + 1)
	}
	return Year(d.Year())
}

// CurrentFiscalYear は基準日を含む会計年度を返します。
func (c Calendar) CurrentFiscalYear(ref time.Time) Year {
	return c.YearOf(ref)
}

// TrailingFiscalYears は current で終わる count 個の年度を古い順に返します。
func (c Calendar) TrailingFiscalYears(current Year, count int) []Year {
	if count <= 0 {
		return []Year{}
	}
	years := make([]Year, 0, count)
	for i := count - 1; i >= 0; i-- {
		years = append(years, current-Year(i))
	}
	return years
}

// Bounds は会計年度の初日と末日 (いずれも UTC の 0 時) を返します。
func (c Calendar) Bounds(fy Year) (time.Time, time.Time) {
	start := c.startMonth()
	startYear := int(fy) - 1
	if start == time.January {
		startYear = int(fy)
	}
	from := time.Date(startYear, start, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, -1)
	return from, to
}

var defaultCalendar = Calendar{StartMonth: DefaultStartMonth}

// Default は 4 月始まりのカレンダーを返します。
func Default() Calendar {
	return defaultCalendar
}

// CurrentFiscalYear は 4 月始まりで基準日の会計年度を返します。
func CurrentFiscalYear(ref time.Time) Year {
	return defaultCalendar.CurrentFiscalYear(ref)
}

// TrailingFiscalYears は 4 月始まりで直近 count 年度を返します。
func TrailingFiscalYears(current Year, count int) []Year {
	return defaultCalendar.TrailingFiscalYears(current, count)
}

// Bounds は 4 月始まりの年度の期間を返します。
func Bounds(fy Year) (time.Time, time.Time) {
	return defaultCalendar.Bounds(fy)
}

// YearOf は 4 月始まりで日付の年度を返します。
func YearOf(d time.Time) Year {
	return defaultCalendar.YearOf(d)
}
