package handler

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/ogurasousui/workforce-kpi/internal/core/employee"
	"github.com/ogurasousui/workforce-kpi/internal/core/report"
)

func toStatusError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, report.ErrInvalidAsOf),
		errors.Is(err, report.ErrInvalidTrailingYears):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, employee.ErrRosterNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, employee.ErrRosterUnavailable):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
