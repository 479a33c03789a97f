package handler

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/ogurasousui/workforce-kpi/internal/core/report"
)

// ReportService_GetExecutiveSummary_FullMethodName は GetExecutiveSummary の完全メソッド名です。
const ReportService_GetExecutiveSummary_FullMethodName = "/workforce.v1.ReportService/GetExecutiveSummary"

// ReportServiceServer は workforce.v1.ReportService のサーバー側インターフェースです。
// リクエストとレスポンスは google.protobuf.Struct でやり取りします。
type ReportServiceServer interface {
	GetExecutiveSummary(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// ReportService_ServiceDesc は ReportService の grpc.ServiceDesc です。
var ReportService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "workforce.v1.ReportService",
	HandlerType: (*ReportServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetExecutiveSummary",
			Handler:    reportServiceGetExecutiveSummaryHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "workforce/v1/report.proto",
}

// RegisterReportServiceServer はサーバーに ReportService を登録します。
func RegisterReportServiceServer(s grpc.ServiceRegistrar, srv ReportServiceServer) {
	s.RegisterService(&ReportService_ServiceDesc, srv)
}

func reportServiceGetExecutiveSummaryHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ReportServiceServer).GetExecutiveSummary(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ReportService_GetExecutiveSummary_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ReportServiceServer).GetExecutiveSummary(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// ReportHandler は gRPC 層からレポートユースケースを呼び出すアダプタです。
type ReportHandler struct {
	reports report.UseCase
}

var _ ReportServiceServer = (*ReportHandler)(nil)

// NewReportHandler は ReportHandler を生成します。
func NewReportHandler(reports report.UseCase) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// GetExecutiveSummary は {"as_of": "YYYY-MM-DD", "trailing_years": n} を受け取り、経営サマリを返します。
func (h *ReportHandler) GetExecutiveSummary(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	in, err := executiveSummaryInputFromStruct(req)
	if err != nil {
		return nil, toStatusError(err)
	}

	summary, err := h.reports.ExecutiveSummary(ctx, in)
	if err != nil {
		return nil, toStatusError(err)
	}

	resp, err := summaryToStruct(summary)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return resp, nil
}

func executiveSummaryInputFromStruct(req *structpb.Struct) (report.ExecutiveSummaryInput, error) {
	var in report.ExecutiveSummaryInput
	fields := req.GetFields()

	if v, ok := fields["as_of"]; ok {
		raw, isString := v.GetKind().(*structpb.Value_StringValue)
		if !isString {
			return in, fmt.Errorf("as_of must be a string: %w", report.ErrInvalidAsOf)
		}
		asOf, err := report.ParseAsOf(raw.StringValue)
		if err != nil {
			return in, err
		}
		in.AsOf = asOf
	}

	if v, ok := fields["trailing_years"]; ok {
		raw, isNumber := v.GetKind().(*structpb.Value_NumberValue)
		if !isNumber || raw.NumberValue != float64(int(raw.NumberValue)) {
			return in, fmt.Errorf("trailing_years must be an integer: %w", report.ErrInvalidTrailingYears)
		}
		in.TrailingYears = int(raw.NumberValue)
		if in.TrailingYears < 0 {
			return in, fmt.Errorf("trailing_years %d: %w", in.TrailingYears, report.ErrInvalidTrailingYears)
		}
	}

	return in, nil
}

func summaryToStruct(summary *report.ExecutiveSummary) (*structpb.Struct, error) {
	b, err := json.Marshal(summary)
	if err != nil {
		return nil, fmt.Errorf("marshal summary: %w", err)
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(b, out); err != nil {
		return nil, fmt.Errorf("convert summary: %w", err)
	}
	return out, nil
}
