package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ogurasousui/workforce-kpi/internal/core/employee"
	"github.com/ogurasousui/workforce-kpi/internal/core/report"
)

type stubReports struct {
	err    error
	panics bool
	lastIn report.ExecutiveSummaryInput
}

func (s *stubReports) ExecutiveSummary(_ context.Context, in report.ExecutiveSummaryInput) (*report.ExecutiveSummary, error) {
	if s.panics {
		panic("boom")
	}
	s.lastIn = in
	if s.err != nil {
		return nil, s.err
	}
	return &report.ExecutiveSummary{
		ID:         "r-1",
		AsOf:       time.Date(2025, 10, 19, 0, 0, 0, 0, time.UTC),
		FiscalYear: "FY-26",
		Years:      []string{"FY-26"},
	}, nil
}

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error {
	return s.err
}

func serve(t *testing.T, h *ReportHandler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	NewRouter(h, zap.NewNop()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandleExecutiveSummary(t *testing.T) {
	t.Parallel()

	stub := &stubReports{}
	rec := serve(t, NewReportHandler(stub, nil), "/v1/reports/executive-summary?as_of=2025-10-19&trailing_years=3")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "r-1", body["id"])
	assert.Equal(t, "FY-26", body["fiscal_year"])

	require.NotNil(t, stub.lastIn.AsOf)
	assert.Equal(t, 2025, stub.lastIn.AsOf.Year())
	assert.Equal(t, 3, stub.lastIn.TrailingYears)
}

func TestHandleExecutiveSummary_BadQuery(t *testing.T) {
	t.Parallel()

	for _, target := range []string{
		"/v1/reports/executive-summary?as_of=19-10-2025",
		"/v1/reports/executive-summary?trailing_years=abc",
		"/v1/reports/executive-summary?trailing_years=-2",
	} {
		rec := serve(t, NewReportHandler(&stubReports{}, nil), target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)

		var body ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "INVALID_ARGUMENT", body.Code)
	}
}

func TestHandleExecutiveSummary_ErrorStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want int
	}{
		{err: report.ErrInvalidTrailingYears, want: http.StatusBadRequest},
		{err: employee.ErrRosterNotFound, want: http.StatusNotFound},
		{err: employee.ErrRosterUnavailable, want: http.StatusServiceUnavailable},
		{err: context.DeadlineExceeded, want: http.StatusGatewayTimeout},
		{err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		rec := serve(t, NewReportHandler(&stubReports{err: tt.err}, nil), "/v1/reports/executive-summary")
		assert.Equal(t, tt.want, rec.Code, tt.err.Error())
	}
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	rec := serve(t, NewReportHandler(&stubReports{}, nil), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(t, NewReportHandler(&stubReports{}, stubPinger{}), "/readyz")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(t, NewReportHandler(&stubReports{}, stubPinger{err: errors.New("db down")}), "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "db down")
}

func TestRouter_RecoversPanicsAndLogs(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.InfoLevel)
	router := NewRouter(NewReportHandler(&stubReports{panics: true}, nil), zap.New(core))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/reports/executive-summary", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())

	requests := logs.FilterMessage("http request").All()
	require.Len(t, requests, 1)
	assert.Equal(t, zap.ErrorLevel, requests[0].Level)
	assert.EqualValues(t, http.StatusInternalServerError, requests[0].ContextMap()["status"])
	assert.NotEmpty(t, requests[0].ContextMap()["request_id"])
}

func TestRouter_UnknownRoute(t *testing.T) {
	t.Parallel()

	rec := serve(t, NewReportHandler(&stubReports{}, nil), "/v1/unknown")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
