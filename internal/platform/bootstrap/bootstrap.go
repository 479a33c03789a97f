// Package bootstrap は設定から名簿ソースとレポートサービスを組み立てます。
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ogurasousui/workforce-kpi/internal/adapters/repository/csvfile"
	"github.com/ogurasousui/workforce-kpi/internal/adapters/repository/postgres"
	"github.com/ogurasousui/workforce-kpi/internal/core/display"
	"github.com/ogurasousui/workforce-kpi/internal/core/employee"
	"github.com/ogurasousui/workforce-kpi/internal/core/fiscal"
	"github.com/ogurasousui/workforce-kpi/internal/core/kpi"
	"github.com/ogurasousui/workforce-kpi/internal/core/report"
	"github.com/ogurasousui/workforce-kpi/internal/platform/config"
	pg "github.com/ogurasousui/workforce-kpi/internal/platform/db/postgres"
)

// Pinger は readiness 判定に使う疎通確認です。
type Pinger interface {
	Ping(ctx context.Context) error
}

// RosterSource は設定に応じて選ばれた名簿の読み込み元です。
type RosterSource struct {
	Repository employee.Repository
	Tx         employee.TransactionManager
	// Pinger は postgres ソースの場合だけ設定されます。
	Pinger Pinger
	close  func()
}

// Close はソースが保持する接続を解放します。
func (s *RosterSource) Close() {
	if s != nil && s.close != nil {
		s.close()
	}
}

// ReportOptions は report 設定をレポートサービスのオプションに変換します。
func ReportOptions(cfg config.ReportConfig) (report.Options, error) {
	grouping, ok := display.ParseGrouping(cfg.Grouping)
	if !ok {
		return report.Options{}, fmt.Errorf("bootstrap: unsupported grouping %q", cfg.Grouping)
	}
	population, ok := kpi.ParsePopulation(cfg.Population)
	if !ok {
		return report.Options{}, fmt.Errorf("bootstrap: unsupported population %q", cfg.Population)
	}

	return report.Options{
		Calendar:         fiscal.NewCalendar(time.Month(cfg.FiscalYearStartMonth)),
		TrailingYears:    cfg.TrailingYears,
		Population:       population,
		FemaleLabel:      cfg.FemaleLabel,
		Grouping:         grouping,
		GenderBuckets:    cfg.GenderBuckets,
		EducationBuckets: cfg.EducationBuckets,
	}, nil
}

// OpenRosterSource は report.source に従って名簿ソースを開きます。
func OpenRosterSource(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*RosterSource, error) {
	switch cfg.Report.Source {
	case config.SourceCSV:
		logger.Info("roster source", zap.String("source", config.SourceCSV), zap.String("path", cfg.Report.CSVPath))
		return &RosterSource{Repository: csvfile.NewRosterRepository(cfg.Report.CSVPath)}, nil
	case config.SourcePostgres:
		pool, err := pg.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		repo, err := postgres.NewRosterRepository(pool, cfg.Report.Table)
		if err != nil {
			pool.Close()
			return nil, err
		}
		logger.Info("roster source",
			zap.String("source", config.SourcePostgres),
			zap.String("host", cfg.Database.Host),
			zap.String("table", cfg.Report.Table),
		)
		return &RosterSource{
			Repository: repo,
			Tx:         pg.NewTransactionManager(pool),
			Pinger:     pool,
			close:      pool.Close,
		}, nil
	default:
		return nil, fmt.Errorf("bootstrap: unsupported roster source %q", cfg.Report.Source)
	}
}

// NewReportService は名簿ソースとオプションからレポートサービスを組み立てます。
func NewReportService(src *RosterSource, opts report.Options, logger *zap.Logger) *report.Service {
	roster := employee.NewService(src.Repository, src.Tx)
	return report.NewService(roster, nil, logger.Named("report"), opts)
}
