package server

import (
	"context"
	"errors"
	"fmt"
	"net"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/ogurasousui/workforce-kpi/internal/adapters/grpc/handler"
	"github.com/ogurasousui/workforce-kpi/internal/core/report"
)

// Server は gRPC サーバーのライフサイクルを管理します。
type Server struct {
	listenAddr string
	grpcServer *grpc.Server
	logger     *zap.Logger
}

// New は指定されたアドレスで待ち受ける gRPC サーバーを構築し、ReportService を登録します。
// ロギングとパニック回復のインターセプタは常に先頭に挿入されます。
func New(listenAddr string, reports report.UseCase, logger *zap.Logger, opts ...grpc.ServerOption) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	serverOpts := append([]grpc.ServerOption{
		grpc.ChainUnaryInterceptor(
			RequestIDUnaryInterceptor(),
			LoggingUnaryInterceptor(logger),
			RecoveryUnaryInterceptor(logger),
		),
	}, opts...)

	srv := grpc.NewServer(serverOpts...)
	handler.RegisterReportServiceServer(srv, handler.NewReportHandler(reports))

	return &Server{
		listenAddr: listenAddr,
		grpcServer: srv,
		logger:     logger,
	}
}

// Run はサーバーを起動し、コンテキストがキャンセルされると GracefulStop します。
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.listenAddr, err)
	}
	return s.Serve(ctx, lis)
}

// Serve は既存のリスナーで待ち受けます。
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	go func() {
		<-ctx.Done()
		s.grpcServer.GracefulStop()
	}()

	s.logger.Info("grpc server listening", zap.String("addr", lis.Addr().String()))
	if err := s.grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("serve gRPC: %w", err)
	}

	return nil
}

// GracefulStop はサーバーを安全に停止します。
func (s *Server) GracefulStop() {
	s.grpcServer.GracefulStop()
}
