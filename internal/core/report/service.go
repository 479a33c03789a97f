package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ogurasousui/workforce-kpi/internal/core/display"
	"github.com/ogurasousui/workforce-kpi/internal/core/employee"
	"github.com/ogurasousui/workforce-kpi/internal/core/fiscal"
	"github.com/ogurasousui/workforce-kpi/internal/core/kpi"
	"github.com/ogurasousui/workforce-kpi/internal/core/metrics"
)

const (
	defaultTrailingYears = 5
	maxTrailingYears     = 20
)

// Widget キー
const (
	WidgetManpowerGrowth         = "manpower_growth"
	WidgetManpowerCost           = "manpower_cost"
	WidgetAttritionTrend         = "attrition_trend"
	WidgetGenderDiversity        = "gender_diversity"
	WidgetAgeDistribution        = "age_distribution"
	WidgetTenureDistribution     = "tenure_distribution"
	WidgetExperienceDistribution = "experience_distribution"
	WidgetEducationDistribution  = "education_distribution"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// Options はレポート生成の既定値です。
type Options struct {
	Calendar         fiscal.Calendar
	TrailingYears    int
	Population       kpi.Population
	FemaleLabel      string
	Grouping         display.Grouping
	GenderBuckets    []string
	EducationBuckets []string
}

// UseCase はレポートユースケースの公開インターフェースです。
type UseCase interface {
	ExecutiveSummary(ctx context.Context, in ExecutiveSummaryInput) (*ExecutiveSummary, error)
}

// ExecutiveSummaryInput はレポート生成時の入力です。
type ExecutiveSummaryInput struct {
	// AsOf が nil の場合は Clock の現在日付を使います。
	AsOf *time.Time
	// TrailingYears が 0 の場合は Options の値を使います。
	TrailingYears int
}

// Service は名簿から経営サマリを組み立てます。
type Service struct {
	roster employee.UseCase
	clock  Clock
	logger *zap.Logger
	opts   Options
}

// NewService は Service を生成します。
func NewService(roster employee.UseCase, clock Clock, logger *zap.Logger, opts Options) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.TrailingYears <= 0 {
		opts.TrailingYears = defaultTrailingYears
	}
	if opts.Grouping == "" {
		opts.Grouping = display.GroupingIndian
	}
	if opts.Population == "" {
		opts.Population = kpi.PopulationActive
	}
	return &Service{roster: roster, clock: clock, logger: logger, opts: opts}
}

// ExecutiveSummary は名簿を 1 回読み込み、KPI と各ウィジェットを計算します。
// 集計の失敗はそのウィジェットだけを no_data にし、レポート全体は中断しません。
func (s *Service) ExecutiveSummary(ctx context.Context, in ExecutiveSummaryInput) (*ExecutiveSummary, error) {
	years := in.TrailingYears
	if years == 0 {
		years = s.opts.TrailingYears
	}
	if years < 0 || years > maxTrailingYears {
		return nil, fmt.Errorf("trailing_years %d: %w", years, ErrInvalidTrailingYears)
	}

	asOf := s.clock.Now()
	if in.AsOf != nil {
		if in.AsOf.IsZero() || in.AsOf.Year() < 1900 {
			return nil, ErrInvalidAsOf
		}
		asOf = *in.AsOf
	}
	asOf = employee.TruncateDay(asOf)

	roster, err := s.roster.LoadRoster(ctx)
	if err != nil {
		return nil, err
	}

	cal := s.opts.Calendar
	current := cal.CurrentFiscalYear(asOf)
	period := metrics.FiscalBuckets{
		Years:    cal.TrailingFiscalYears(current, years),
		Calendar: cal,
	}

	summary := &ExecutiveSummary{
		ID:              uuid.NewString(),
		AsOf:            asOf,
		FiscalYear:      current.Tag(),
		FiscalYearLabel: display.FormatFiscalYear(current.Tag()),
		Years:           fiscal.Tags(period.Years),
		RosterSize:      roster.Len(),
	}

	log := s.logger.With(zap.String("report_id", summary.ID), zap.Time("as_of", asOf))

	summary.KPIs = s.kpis(log, roster, asOf)

	widgets := []struct {
		key     string
		title   string
		kind    ChartKind
		percent bool
		build   func() metrics.Table
	}{
		{WidgetManpowerGrowth, "Manpower Growth", ChartLine, false, func() metrics.Table {
			return metrics.ManpowerGrowth(roster, period)
		}},
		{WidgetManpowerCost, "Manpower Cost Trend", ChartBar, false, func() metrics.Table {
			return metrics.ManpowerCostTrend(roster, period)
		}},
		{WidgetAttritionTrend, "Attrition Trend", ChartLine, true, func() metrics.Table {
			return metrics.AttritionTrend(roster, period)
		}},
		{WidgetGenderDiversity, "Gender Diversity", ChartDonut, false, func() metrics.Table {
			return metrics.GenderDiversity(roster, asOf, s.opts.GenderBuckets)
		}},
		{WidgetAgeDistribution, "Age Distribution", ChartPie, false, func() metrics.Table {
			return metrics.AgeDistribution(roster, asOf, metrics.AgeBands())
		}},
		{WidgetTenureDistribution, "Tenure Distribution", ChartPie, false, func() metrics.Table {
			return metrics.TenureDistribution(roster, asOf, metrics.TenureBands())
		}},
		{WidgetExperienceDistribution, "Total Experience Distribution", ChartBar, false, func() metrics.Table {
			return metrics.ExperienceDistribution(roster, asOf, metrics.ExperienceBands())
		}},
		{WidgetEducationDistribution, "Education Type Distribution", ChartDonut, false, func() metrics.Table {
			return metrics.EducationDistribution(roster, asOf, s.opts.EducationBuckets)
		}},
	}

	summary.Widgets = make([]Widget, 0, len(widgets))
	for _, w := range widgets {
		widget := Widget{Key: w.key, Title: w.title, Kind: w.kind, ValueLabels: []string{}}
		widget.Table.Rows = []metrics.Row{}
		table, ok := s.safely(log.With(zap.String("widget", w.key)), w.build)
		if ok {
			widget.Table = table
			widget.ValueLabels = s.valueLabels(table, w.percent)
		}
		widget.Status = WidgetOK
		if !ok || table.Empty() {
			widget.Status = WidgetNoData
		}
		summary.Widgets = append(summary.Widgets, widget)
	}

	log.Debug("executive summary generated",
		zap.Int("roster_size", summary.RosterSize),
		zap.Strings("years", summary.Years),
	)

	return summary, nil
}

func (s *Service) kpis(log *zap.Logger, roster employee.Roster, asOf time.Time) (cards []KPICard) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn("kpi summary degraded to no data", zap.Any("panic", r))
			cards = []KPICard{}
		}
	}()

	values := kpi.Summarize(roster, asOf, kpi.Options{
		Calendar:    s.opts.Calendar,
		Population:  s.opts.Population,
		FemaleLabel: s.opts.FemaleLabel,
	})
	cards = make([]KPICard, 0, len(values))
	for _, v := range values {
		cards = append(cards, KPICard{KPI: v, Display: v.Format(s.opts.Grouping)})
	}
	return cards
}

func (s *Service) safely(log *zap.Logger, build func() metrics.Table) (table metrics.Table, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn("widget degraded to no data", zap.Any("panic", r))
			table, ok = metrics.Table{}, false
		}
	}()
	return build(), true
}

func (s *Service) valueLabels(t metrics.Table, percent bool) []string {
	labels := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		if percent {
			labels[i] = fmt.Sprintf("%.1f%%", r.Value)
			continue
		}
		labels[i] = display.FormatGrouped(r.Value, s.opts.Grouping)
	}
	return labels
}
