// Package display はプレゼンテーション層向けの決定的な整形関数を提供します。
// ロケールなどのグローバル状態には依存しません。
package display

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ogurasousui/workforce-kpi/internal/core/fiscal"
)

// Grouping は数値の桁区切り方式です。
type Grouping string

const (
	// GroupingIndian は下 3 桁、以降 2 桁ごとに区切ります (12,34,567)。
	GroupingIndian Grouping = "indian"
	// GroupingInternational は 3 桁ごとに区切ります (1,234,567)。
	GroupingInternational Grouping = "international"
)

// ParseGrouping は設定値を Grouping に変換します。
func ParseGrouping(raw string) (Grouping, bool) {
	switch Grouping(strings.ToLower(strings.TrimSpace(raw))) {
	case GroupingIndian:
		return GroupingIndian, true
	case GroupingInternational:
		return GroupingInternational, true
	default:
		return "", false
	}
}

// FormatFiscalYear は "FY-26" を "Financial Year 2026" に変換します。形式が異なる場合はそのまま返します。
func FormatFiscalYear(tag string) string {
	fy, ok := fiscal.ParseTag(tag)
	if !ok {
		return tag
	}
	return fmt.Sprintf("Financial Year %d", int(fy))
}

// FormatGrouped は値を整数に切り捨てて桁区切りします。
// 数値として解釈できない値は fmt.Sprint の結果をそのまま返します。
func FormatGrouped(value any, style Grouping) string {
	n, ok := toInt64(value)
	if !ok {
		return fmt.Sprint(value)
	}
	return groupDigits(n, style)
}

func toInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		if uint64(v) > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		if v > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case float32:
		return floatToInt64(float64(v))
	case float64:
		return floatToInt64(v)
	case string:
		trimmed := strings.TrimSpace(v)
		if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return i, true
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, false
		}
		return floatToInt64(f)
	default:
		return 0, false
	}
}

func floatToInt64(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

func groupDigits(n int64, style Grouping) string {
	sign := ""
	digits := strconv.FormatInt(n, 10)
	if strings.HasPrefix(digits, "-") {
		sign = "-"
		digits = digits[1:]
	}
	if len(digits) <= 3 {
		return sign + digits
	}

	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	step := 2
	if style == GroupingInternational {
		step = 3
	}

	var parts []string
	for len(head) > step {
		parts = append([]string{head[len(head)-step:]}, parts...)
		head = head[:len(head)-step]
	}
	parts = append([]string{head}, parts...)
	parts = append(parts, tail)
	return sign + strings.Join(parts, ",")
}
