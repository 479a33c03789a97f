package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ogurasousui/workforce-kpi/internal/adapters/repository/csvfile"
	"github.com/ogurasousui/workforce-kpi/internal/core/employee"
	"github.com/ogurasousui/workforce-kpi/internal/core/report"
	"github.com/ogurasousui/workforce-kpi/internal/platform/bootstrap"
	"github.com/ogurasousui/workforce-kpi/internal/platform/config"
	"github.com/ogurasousui/workforce-kpi/internal/platform/logging"
)

type summaryOptions struct {
	csvPath       string
	configPath    string
	asOf          string
	trailingYears int
	format        string
	grouping      string
	population    string
	startMonth    int
	verbose       bool
}

// stdinRoster は標準入力から読み込んだ名簿を返すだけのリポジトリです。
type stdinRoster struct {
	r io.Reader
}

func (s stdinRoster) LoadRoster(ctx context.Context) (employee.Roster, error) {
	return csvfile.ReadRoster(ctx, s.r)
}

func newSummaryCmd() *cobra.Command {
	var opts summaryOptions

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Compute the executive summary (KPIs and distribution tables)",
		Example: "  report summary --csv roster.csv --as-of 2025-03-31\n" +
			"  cat roster.csv | report summary --csv - --format json\n" +
			"  report summary --config assets/local.yaml",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSummary(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.csvPath, "csv", "", "roster CSV file (\"-\" reads stdin)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "config file used when --csv is not given")
	cmd.Flags().StringVar(&opts.asOf, "as-of", "", "reference date YYYY-MM-DD (default: today)")
	cmd.Flags().IntVar(&opts.trailingYears, "trailing-years", 0, "number of fiscal years in trend tables")
	cmd.Flags().StringVar(&opts.format, "format", "text", "output format: text or json")
	cmd.Flags().StringVar(&opts.grouping, "grouping", "", "digit grouping: indian or international")
	cmd.Flags().StringVar(&opts.population, "population", "", "KPI population: active or all")
	cmd.Flags().IntVar(&opts.startMonth, "fy-start-month", 0, "first month of the fiscal year (1-12)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log to stderr")

	cmd.PreRunE = func(cmd *cobra.Command, _ []string) error {
		opts.format = strings.ToLower(strings.TrimSpace(opts.format))
		if opts.format != "text" && opts.format != "json" {
			return fmt.Errorf("invalid --format %q", opts.format)
		}
		if opts.csvPath == "" && opts.configPath == "" {
			return fmt.Errorf("either --csv or --config is required")
		}
		return nil
	}

	return cmd
}

func runSummary(cmd *cobra.Command, opts summaryOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger := zap.NewNop()
	if opts.verbose {
		l, err := logging.New(config.LoggingConfig{Level: "debug", Encoding: "console"})
		if err != nil {
			return err
		}
		logger = l
		defer func() { _ = logger.Sync() }()
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	applyOverrides(&cfg.Report, opts)

	reportOpts, err := bootstrap.ReportOptions(cfg.Report)
	if err != nil {
		return err
	}

	var src *bootstrap.RosterSource
	if opts.csvPath == "-" {
		src = &bootstrap.RosterSource{Repository: stdinRoster{r: cmd.InOrStdin()}}
	} else {
		src, err = bootstrap.OpenRosterSource(ctx, cfg, logger)
		if err != nil {
			return err
		}
	}
	defer src.Close()

	asOf, err := report.ParseAsOf(opts.asOf)
	if err != nil {
		return err
	}

	summary, err := bootstrap.NewReportService(src, reportOpts, logger).ExecutiveSummary(ctx, report.ExecutiveSummaryInput{
		AsOf:          asOf,
		TrailingYears: opts.trailingYears,
	})
	if err != nil {
		return err
	}

	if opts.format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}
	return renderText(cmd.OutOrStdout(), summary)
}

func loadConfig(opts summaryOptions) (*config.Config, error) {
	if opts.csvPath != "" {
		return &config.Config{Report: config.ReportConfig{
			Source:               config.SourceCSV,
			CSVPath:              opts.csvPath,
			TrailingYears:        5,
			FiscalYearStartMonth: 4,
			Grouping:             "indian",
			Population:           "active",
			FemaleLabel:          "Female",
		}}, nil
	}
	return config.Load(opts.configPath)
}

func applyOverrides(cfg *config.ReportConfig, opts summaryOptions) {
	if opts.grouping != "" {
		cfg.Grouping = opts.grouping
	}
	if opts.population != "" {
		cfg.Population = opts.population
	}
	if opts.startMonth != 0 {
		cfg.FiscalYearStartMonth = opts.startMonth
	}
}

func renderText(w io.Writer, s *report.ExecutiveSummary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "Executive Summary as of %s (%s)\n", s.AsOf.Format("2006-01-02"), s.FiscalYearLabel)
	fmt.Fprintf(tw, "Roster records: %d\n\n", s.RosterSize)

	for _, card := range s.KPIs {
		fmt.Fprintf(tw, "%s\t%s\n", card.Label, card.Display)
	}

	for _, widget := range s.Widgets {
		fmt.Fprintf(tw, "\n%s\n", widget.Title)
		if widget.Status == report.WidgetNoData {
			fmt.Fprintln(tw, "  no data")
			continue
		}
		fmt.Fprintf(tw, "  %s\t%s\n", widget.Table.Columns[0], widget.Table.Columns[1])
		for i, row := range widget.Table.Rows {
			fmt.Fprintf(tw, "  %s\t%s\n", row.Label, widget.ValueLabels[i])
		}
	}

	return tw.Flush()
}
