package metrics

import (
	"github.com/samber/lo"

	"github.com/ogurasousui/workforce-kpi/internal/core/display"
	"github.com/ogurasousui/workforce-kpi/internal/core/employee"
	"github.com/ogurasousui/workforce-kpi/internal/core/fiscal"
)

// FiscalBuckets は年度別集計のバケット指定です。Years の順序で行を返します。
type FiscalBuckets struct {
	Years    []fiscal.Year
	Calendar fiscal.Calendar
}

// ManpowerGrowth は入社日の会計年度ごとの入社人数を返します。
func ManpowerGrowth(r employee.Roster, period FiscalBuckets) Table {
	if !r.Has(employee.ColumnDateOfJoining) {
		return newTable(ColumnFY, ColumnHeadcount, 0)
	}

	joiners := lo.Filter(r.Records, func(e employee.Employee, _ int) bool {
		return e.DateOfJoining != nil
	})
	counts := lo.CountValuesBy(joiners, func(e employee.Employee) fiscal.Year {
		return period.Calendar.YearOf(*e.DateOfJoining)
	})

	return fiscalTable(ColumnHeadcount, period.Years, func(fy fiscal.Year) float64 {
		return float64(counts[fy])
	})
}

// ManpowerCostTrend は入社日の会計年度ごとの年間 CTC 合計を返します。
func ManpowerCostTrend(r employee.Roster, period FiscalBuckets) Table {
	if !r.Has(employee.ColumnDateOfJoining, employee.ColumnTotalCTCPA) {
		return newTable(ColumnFY, ColumnTotalCost, 0)
	}

	joiners := lo.Filter(r.Records, func(e employee.Employee, _ int) bool {
		return e.DateOfJoining != nil
	})
	byYear := lo.GroupBy(joiners, func(e employee.Employee) fiscal.Year {
		return period.Calendar.YearOf(*e.DateOfJoining)
	})

	return fiscalTable(ColumnTotalCost, period.Years, func(fy fiscal.Year) float64 {
		return lo.SumBy(byYear[fy], compensation)
	})
}

// AttritionTrend は会計年度ごとの離職率 (退職者数 / 期首期末平均人数 × 100) を返します。
func AttritionTrend(r employee.Roster, period FiscalBuckets) Table {
	if !r.Has(employee.ColumnDateOfJoining, employee.ColumnDateOfExit) {
		return newTable(ColumnFY, ColumnAttritionPct, 0)
	}

	leavers := lo.Filter(r.Records, func(e employee.Employee, _ int) bool {
		return e.DateOfExit != nil
	})
	counts := lo.CountValuesBy(leavers, func(e employee.Employee) fiscal.Year {
		return period.Calendar.YearOf(*e.DateOfExit)
	})

	return fiscalTable(ColumnAttritionPct, period.Years, func(fy fiscal.Year) float64 {
		n := counts[fy]
		if n == 0 {
			return 0
		}
		from, to := period.Calendar.Bounds(fy)
		return percent(float64(n), employee.AverageHeadcount(r, from, to))
	})
}

func fiscalTable(valueColumn string, years []fiscal.Year, value func(fiscal.Year) float64) Table {
	t := newTable(ColumnFY, valueColumn, len(years))
	for _, fy := range years {
		tag := fy.Tag()
		t.Rows = append(t.Rows, Row{
			Bucket: tag,
			Label:  display.FormatFiscalYear(tag),
			Value:  value(fy),
		})
	}
	return t
}

func compensation(e employee.Employee) float64 {
	if e.TotalCTCPA == nil {
		return 0
	}
	return *e.TotalCTCPA
}
