package kpi

import (
	"fmt"

	"github.com/ogurasousui/workforce-kpi/internal/core/display"
)

// Format は KPI カードに表示する文字列を返します。
func (k KPI) Format(style display.Grouping) string {
	switch k.Type {
	case TypeInteger:
		return display.FormatGrouped(k.Value, style)
	case TypePercentage:
		return fmt.Sprintf("%.1f%%", k.Value)
	case TypeCurrency:
		return "₹ " + display.FormatGrouped(k.Value, style)
	case TypeYears:
		return fmt.Sprintf("%.1f yrs", k.Value)
	default:
		return fmt.Sprint(k.Value)
	}
}
