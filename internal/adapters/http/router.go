// Package http は経営サマリを JSON で返す HTTP アダプタです。
package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/ogurasousui/workforce-kpi/internal/core/report"
)

// HealthChecker は readiness 判定に使う依存先です。pgxpool.Pool が満たします。
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// ReportHandler はレポートユースケースを HTTP に公開します。
type ReportHandler struct {
	reports report.UseCase
	ready   HealthChecker
}

// NewReportHandler は ReportHandler を生成します。ready が nil の場合 readiness は常に成功します。
func NewReportHandler(reports report.UseCase, ready HealthChecker) *ReportHandler {
	return &ReportHandler{reports: reports, ready: ready}
}

// NewRouter はミドルウェアとルートを組み立てた chi ルーターを返します。
func NewRouter(h *ReportHandler, logger *zap.Logger) *chi.Mux {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(Recoverer(logger))

	r.Get("/healthz", h.HandleLiveness)
	r.Get("/readyz", h.HandleReadiness)

	r.Route("/v1/reports", func(r chi.Router) {
		r.Get("/executive-summary", h.HandleExecutiveSummary)
	})

	return r
}

// HandleExecutiveSummary は GET /v1/reports/executive-summary を処理します。
func (h *ReportHandler) HandleExecutiveSummary(w http.ResponseWriter, r *http.Request) {
	in, err := executiveSummaryInputFromQuery(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	summary, err := h.reports.ExecutiveSummary(r.Context(), in)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, summary)
}

// HandleLiveness はプロセスが応答可能かだけを返します。
func (h *ReportHandler) HandleLiveness(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleReadiness は名簿ソースへの疎通を確認します。
func (h *ReportHandler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	if h.ready == nil {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.ready.Ping(ctx); err != nil {
		WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func executiveSummaryInputFromQuery(r *http.Request) (report.ExecutiveSummaryInput, error) {
	var in report.ExecutiveSummaryInput
	q := r.URL.Query()

	asOf, err := report.ParseAsOf(q.Get("as_of"))
	if err != nil {
		return in, err
	}
	in.AsOf = asOf

	if raw := strings.TrimSpace(q.Get("trailing_years")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return in, report.ErrInvalidTrailingYears
		}
		in.TrailingYears = n
	}

	return in, nil
}
