package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ogurasousui/workforce-kpi/internal/core/display"
	"github.com/ogurasousui/workforce-kpi/internal/core/kpi"
	"github.com/ogurasousui/workforce-kpi/internal/core/report"
	"github.com/ogurasousui/workforce-kpi/internal/platform/config"
)

func TestReportOptions(t *testing.T) {
	t.Parallel()

	opts, err := ReportOptions(config.ReportConfig{
		TrailingYears:        3,
		FiscalYearStartMonth: 1,
		Grouping:             "international",
		Population:           "all",
		FemaleLabel:          "F",
		GenderBuckets:        []string{"F", "M"},
	})
	require.NoError(t, err)

	assert.Equal(t, time.January, opts.Calendar.StartMonth)
	assert.Equal(t, 3, opts.TrailingYears)
	assert.Equal(t, display.GroupingInternational, opts.Grouping)
	assert.Equal(t, kpi.PopulationAll, opts.Population)
	assert.Equal(t, "F", opts.FemaleLabel)
	assert.Equal(t, []string{"F", "M"}, opts.GenderBuckets)

	_, err = ReportOptions(config.ReportConfig{Grouping: "french", Population: "active"})
	assert.Error(t, err)

	_, err = ReportOptions(config.ReportConfig{Grouping: "indian", Population: "nobody"})
	assert.Error(t, err)
}

func TestOpenRosterSource_CSV(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "roster.csv")
	require.NoError(t, os.WriteFile(path, []byte(
		"employee_id,date_of_joining,date_of_exit,total_ctc_pa,gender\n"+
			"1,2023-05-01,,1000000,Female\n"+
			"2,2024-06-01,,500000,Male\n"), 0o600))

	cfg := &config.Config{Report: config.ReportConfig{
		Source:               config.SourceCSV,
		CSVPath:              path,
		TrailingYears:        2,
		FiscalYearStartMonth: 4,
		Grouping:             "indian",
		Population:           "active",
		FemaleLabel:          "Female",
	}}

	src, err := OpenRosterSource(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer src.Close()
	assert.Nil(t, src.Pinger)

	opts, err := ReportOptions(cfg.Report)
	require.NoError(t, err)

	asOf := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	summary, err := NewReportService(src, opts, zap.NewNop()).ExecutiveSummary(context.Background(), report.ExecutiveSummaryInput{AsOf: &asOf})
	require.NoError(t, err)

	assert.Equal(t, "FY-25", summary.FiscalYear)
	assert.Equal(t, []string{"FY-24", "FY-25"}, summary.Years)
	assert.Equal(t, 2, summary.RosterSize)

	cost, ok := kpi.Find(cardsToKPIs(summary.KPIs), kpi.KeyTotalCost)
	require.True(t, ok)
	assert.Equal(t, 1500000.0, cost.Value)
}

func TestOpenRosterSource_Unsupported(t *testing.T) {
	t.Parallel()

	_, err := OpenRosterSource(context.Background(), &config.Config{Report: config.ReportConfig{Source: "s3"}}, zap.NewNop())
	assert.Error(t, err)
}

func cardsToKPIs(cards []report.KPICard) []kpi.KPI {
	out := make([]kpi.KPI, len(cards))
	for i, c := range cards {
		out[i] = c.KPI
	}
	return out
}
