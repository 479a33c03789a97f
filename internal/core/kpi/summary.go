package kpi

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/ogurasousui/workforce-kpi/internal/core/employee"
	"github.com/ogurasousui/workforce-kpi/internal/core/fiscal"
	"github.com/ogurasousui/workforce-kpi/internal/core/metrics"
)

// Type は KPI 値の意味づけで、下流の表示形式だけを決めます。
type Type string

const (
	TypeInteger    Type = "Integer"
	TypePercentage Type = "Percentage"
	TypeCurrency   Type = "Currency"
	TypeYears      Type = "Years"
)

// KPI キー
const (
	KeyActiveEmployees = "active_employees"
	KeyAttritionRate   = "attrition_rate"
	KeyJoiners         = "joiners"
	KeyLeavers         = "leavers"
	KeyTotalCost       = "total_cost"
	KeyFemaleRatio     = "female_ratio"
	KeyAverageTenure   = "average_tenure"
	KeyAverageAge      = "average_age"
	KeyAverageTotalExp = "average_total_exp"
)

// KPI は見出し指標 1 件です。
type KPI struct {
	Key   string  `json:"key"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Type  Type    `json:"type"`
}

// Population は総コストと平均値を計算する母集団です。
type Population string

const (
	// PopulationActive は基準日に在籍している社員だけを対象にします。
	PopulationActive Population = "active"
	// PopulationAll は退職者を含む名簿全体を対象にします。
	PopulationAll Population = "all"
)

// ParsePopulation は設定値を Population に変換します。
func ParsePopulation(raw string) (Population, bool) {
	switch Population(strings.ToLower(strings.TrimSpace(raw))) {
	case PopulationActive:
		return PopulationActive, true
	case PopulationAll:
		return PopulationAll, true
	default:
		return "", false
	}
}

// DefaultFemaleLabel は女性比率で女性として数える性別の値です。
const DefaultFemaleLabel = "Female"

// Options は KPI 計算のパラメータです。
type Options struct {
	Calendar    fiscal.Calendar
	Population  Population
	FemaleLabel string
}

func (o Options) normalized() Options {
	if o.Population == "" {
		o.Population = PopulationActive
	}
	if strings.TrimSpace(o.FemaleLabel) == "" {
		o.FemaleLabel = DefaultFemaleLabel
	}
	return o
}

// Summarize は now を含む会計年度の見出し指標を固定順で返します。
func Summarize(r employee.Roster, now time.Time, opts Options) []KPI {
	opts = opts.normalized()

	fy := opts.Calendar.CurrentFiscalYear(now)
	from, to := opts.Calendar.Bounds(fy)
	period := fy.ShortRange()

	activeRecords := employee.ActiveAt(r, now)
	active := len(activeRecords)

	joiners := employee.JoinedBetween(r, from, to)
	leavers := employee.ExitedBetween(r, from, to)
	attrition := ratio(float64(leavers), employee.AverageHeadcount(r, from, to))

	population := activeRecords
	if opts.Population == PopulationAll {
		population = r.Records
	}

	var totalCost float64
	if r.Has(employee.ColumnTotalCTCPA) {
		totalCost = lo.SumBy(population, func(e employee.Employee) float64 {
			if e.TotalCTCPA == nil {
				return 0
			}
			return *e.TotalCTCPA
		})
	}

	var femaleRatio float64
	if r.Has(employee.ColumnGender) {
		females := lo.CountBy(activeRecords, func(e employee.Employee) bool {
			return strings.EqualFold(strings.TrimSpace(e.Gender), opts.FemaleLabel)
		})
		femaleRatio = ratio(float64(females), float64(active))
	}

	var avgExp, avgAge float64
	if r.Has(employee.ColumnTotalExpYrs) {
		avgExp = mean(lo.FilterMap(population, func(e employee.Employee, _ int) (float64, bool) {
			if e.TotalExpYrs == nil {
				return 0, false
			}
			return *e.TotalExpYrs, true
		}))
	}
	if r.Has(employee.ColumnDateOfBirth) {
		avgAge = mean(lo.FilterMap(population, func(e employee.Employee, _ int) (float64, bool) {
			if e.DateOfBirth == nil {
				return 0, false
			}
			return float64(metrics.AgeOn(*e.DateOfBirth, now)), true
		}))
	}

	return []KPI{
		{Key: KeyActiveEmployees, Label: "Active Employees", Value: float64(active), Type: TypeInteger},
		{Key: KeyAttritionRate, Label: fmt.Sprintf("Attrition Rate (FY %s)", period), Value: attrition, Type: TypePercentage},
		{Key: KeyJoiners, Label: fmt.Sprintf("Joiners (FY %s)", period), Value: float64(joiners), Type: TypeInteger},
		{Key: KeyLeavers, Label: fmt.Sprintf("Leavers (FY %s)", period), Value: float64(leavers), Type: TypeInteger},
		{Key: KeyTotalCost, Label: "Total Cost (INR)", Value: totalCost, Type: TypeCurrency},
		{Key: KeyFemaleRatio, Label: "Female Ratio", Value: femaleRatio, Type: TypePercentage},
		// 在籍年数は経験年数で代用する
		{Key: KeyAverageTenure, Label: "Average Tenure", Value: avgExp, Type: TypeYears},
		{Key: KeyAverageAge, Label: "Average Age", Value: avgAge, Type: TypeYears},
		{Key: KeyAverageTotalExp, Label: "Average Total Exp", Value: avgExp, Type: TypeYears},
	}
}

// Find はキーに一致する KPI を返します。
func Find(kpis []KPI, key string) (KPI, bool) {
	return lo.Find(kpis, func(k KPI) bool { return k.Key == key })
}

func ratio(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator * 100
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return lo.Sum(values) / float64(len(values))
}
