package handler

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/ogurasousui/workforce-kpi/internal/core/employee"
	"github.com/ogurasousui/workforce-kpi/internal/core/kpi"
	"github.com/ogurasousui/workforce-kpi/internal/core/metrics"
	"github.com/ogurasousui/workforce-kpi/internal/core/report"
)

type stubReports struct {
	summary *report.ExecutiveSummary
	err     error
	lastIn  report.ExecutiveSummaryInput
}

func (s *stubReports) ExecutiveSummary(_ context.Context, in report.ExecutiveSummaryInput) (*report.ExecutiveSummary, error) {
	s.lastIn = in
	return s.summary, s.err
}

func sampleSummary() *report.ExecutiveSummary {
	return &report.ExecutiveSummary{
		ID:              "report-1",
		AsOf:            time.Date(2025, 10, 19, 0, 0, 0, 0, time.UTC),
		FiscalYear:      "FY-26",
		FiscalYearLabel: "Financial Year 2026",
		Years:           []string{"FY-25", "FY-26"},
		RosterSize:      2,
		KPIs: []report.KPICard{
			{KPI: kpi.KPI{Key: kpi.KeyActiveEmployees, Label: "Active Employees", Value: 2, Type: kpi.TypeInteger}, Display: "2"},
		},
		Widgets: []report.Widget{
			{
				Key:    report.WidgetManpowerGrowth,
				Title:  "Manpower Growth",
				Kind:   report.ChartLine,
				Status: report.WidgetOK,
				Table: metrics.Table{
					Columns: [2]string{metrics.ColumnFY, metrics.ColumnHeadcount},
					Rows: []metrics.Row{
						{Bucket: "FY-25", Label: "Financial Year 2025", Value: 1},
						{Bucket: "FY-26", Label: "Financial Year 2026", Value: 2},
					},
				},
				ValueLabels: []string{"1", "2"},
			},
		},
	}
}

func mustStruct(t *testing.T, m map[string]any) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(m)
	if err != nil {
		t.Fatalf("failed to build struct: %v", err)
	}
	return s
}

func TestReportHandler_GetExecutiveSummary(t *testing.T) {
	t.Parallel()

	stub := &stubReports{summary: sampleSummary()}
	h := NewReportHandler(stub)

	resp, err := h.GetExecutiveSummary(context.Background(), mustStruct(t, map[string]any{
		"as_of":          "2025-10-19",
		"trailing_years": 2,
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stub.lastIn.AsOf == nil || !stub.lastIn.AsOf.Equal(time.Date(2025, 10, 19, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected as_of passed to use case: %v", stub.lastIn.AsOf)
	}
	if stub.lastIn.TrailingYears != 2 {
		t.Fatalf("unexpected trailing years: %d", stub.lastIn.TrailingYears)
	}

	fields := resp.GetFields()
	if got := fields["fiscal_year"].GetStringValue(); got != "FY-26" {
		t.Fatalf("unexpected fiscal_year: %q", got)
	}
	if got := fields["roster_size"].GetNumberValue(); got != 2 {
		t.Fatalf("unexpected roster_size: %v", got)
	}

	widgets := fields["widgets"].GetListValue().GetValues()
	if len(widgets) != 1 {
		t.Fatalf("expected 1 widget, got %d", len(widgets))
	}
	rows := widgets[0].GetStructValue().GetFields()["table"].GetStructValue().GetFields()["rows"].GetListValue().GetValues()
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	kpis := fields["kpis"].GetListValue().GetValues()
	if got := kpis[0].GetStructValue().GetFields()["display"].GetStringValue(); got != "2" {
		t.Fatalf("unexpected kpi display: %q", got)
	}
}

func TestReportHandler_GetExecutiveSummary_InvalidRequest(t *testing.T) {
	t.Parallel()

	tests := map[string]map[string]any{
		"as_of not a string": {"as_of": 20251019},
		"as_of bad format":   {"as_of": "19/10/2025"},
		"fractional years":   {"trailing_years": 2.5},
		"negative years":     {"trailing_years": -1},
		"years not numeric":  {"trailing_years": "five"},
	}

	for name, req := range tests {
		stub := &stubReports{summary: sampleSummary()}
		_, err := NewReportHandler(stub).GetExecutiveSummary(context.Background(), mustStruct(t, req))
		if status.Code(err) != codes.InvalidArgument {
			t.Errorf("%s: expected InvalidArgument, got %v", name, err)
		}
	}
}

func TestReportHandler_GetExecutiveSummary_ErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want codes.Code
	}{
		{err: report.ErrInvalidTrailingYears, want: codes.InvalidArgument},
		{err: employee.ErrRosterNotFound, want: codes.NotFound},
		{err: employee.ErrRosterUnavailable, want: codes.Unavailable},
		{err: context.DeadlineExceeded, want: codes.DeadlineExceeded},
		{err: errors.New("boom"), want: codes.Internal},
	}

	for _, tt := range tests {
		_, err := NewReportHandler(&stubReports{err: tt.err}).GetExecutiveSummary(context.Background(), &structpb.Struct{})
		if status.Code(err) != tt.want {
			t.Errorf("%v: expected %s, got %v", tt.err, tt.want, err)
		}
	}
}

func TestReportService_OverGRPC(t *testing.T) {
	t.Parallel()

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	RegisterReportServiceServer(srv, NewReportHandler(&stubReports{summary: sampleSummary()}))
	go func() {
		_ = srv.Serve(lis)
	}()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("failed to dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp := &structpb.Struct{}
	if err := conn.Invoke(ctx, ReportService_GetExecutiveSummary_FullMethodName, mustStruct(t, map[string]any{"trailing_years": 2}), resp); err != nil {
		t.Fatalf("Invoke returned error: %v", err)
	}

	if got := resp.GetFields()["id"].GetStringValue(); got != "report-1" {
		t.Fatalf("unexpected id: %q", got)
	}
}
