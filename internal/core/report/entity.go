package report

import (
	"time"

	"github.com/ogurasousui/workforce-kpi/internal/core/kpi"
	"github.com/ogurasousui/workforce-kpi/internal/core/metrics"
)

// ChartKind はプレゼンテーション層への描画種別のヒントです。
type ChartKind string

const (
	ChartLine  ChartKind = "line"
	ChartBar   ChartKind = "bar"
	ChartDonut ChartKind = "donut"
	ChartPie   ChartKind = "pie"
)

// WidgetStatus はウィジェット単位の計算結果の状態です。
type WidgetStatus string

const (
	WidgetOK     WidgetStatus = "ok"
	WidgetNoData WidgetStatus = "no_data"
)

// Widget はダッシュボードの 1 チャート分の集計結果です。
type Widget struct {
	Key    string        `json:"key"`
	Title  string        `json:"title"`
	Kind   ChartKind     `json:"kind"`
	Status WidgetStatus  `json:"status"`
	Table  metrics.Table `json:"table"`
	// ValueLabels は Table.Rows と同じ順序の表示用文字列です。
	ValueLabels []string `json:"value_labels"`
}

// KPICard は KPI と表示用文字列の組です。
type KPICard struct {
	kpi.KPI
	Display string `json:"display"`
}

// ExecutiveSummary は 1 回のレポート生成結果です。呼び出しをまたいで保持されることはありません。
type ExecutiveSummary struct {
	ID              string    `json:"id"`
	AsOf            time.Time `json:"as_of"`
	FiscalYear      string    `json:"fiscal_year"`
	FiscalYearLabel string    `json:"fiscal_year_label"`
	Years           []string  `json:"years"`
	RosterSize      int       `json:"roster_size"`
	KPIs            []KPICard `json:"kpis"`
	Widgets         []Widget  `json:"widgets"`
}

// Widget はキーに一致するウィジェットを返します。
func (s *ExecutiveSummary) Widget(key string) (Widget, bool) {
	for _, w := range s.Widgets {
		if w.Key == key {
			return w, true
		}
	}
	return Widget{}, false
}
