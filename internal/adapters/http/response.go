package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ogurasousui/workforce-kpi/internal/core/employee"
	"github.com/ogurasousui/workforce-kpi/internal/core/report"
)

// ErrorResponse はエラー時のレスポンスボディです。
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// WriteJSON は status と JSON ボディを書き込みます。
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError はユースケースのエラーを HTTP ステータスに変換して書き込みます。
func WriteError(w http.ResponseWriter, err error) {
	status, code := statusFor(err)
	WriteJSON(w, status, ErrorResponse{Error: err.Error(), Code: code})
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, report.ErrInvalidAsOf),
		errors.Is(err, report.ErrInvalidTrailingYears):
		return http.StatusBadRequest, "INVALID_ARGUMENT"
	case errors.Is(err, employee.ErrRosterNotFound):
		return http.StatusNotFound, "ROSTER_NOT_FOUND"
	case errors.Is(err, employee.ErrRosterUnavailable):
		return http.StatusServiceUnavailable, "ROSTER_UNAVAILABLE"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "DEADLINE_EXCEEDED"
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable, "CANCELED"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}
