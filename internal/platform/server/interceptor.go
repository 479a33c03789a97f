package server

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// RequestIDMetadataKey はリクエスト ID を運ぶメタデータキーです。
const RequestIDMetadataKey = "x-request-id"

type requestIDKey struct{}

// RequestIDFromContext はコンテキストのリクエスト ID を返します。
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// RequestIDUnaryInterceptor は受信メタデータの x-request-id を引き継ぎ、無ければ採番します。
// 採番した ID はレスポンスヘッダにも返します。
func RequestIDUnaryInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, _ *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		var id string
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if values := md.Get(RequestIDMetadataKey); len(values) > 0 {
				id = values[0]
			}
		}
		if id == "" {
			id = uuid.NewString()
		}
		_ = grpc.SetHeader(ctx, metadata.Pairs(RequestIDMetadataKey, id))
		return next(context.WithValue(ctx, requestIDKey{}, id), req)
	}
}

// LoggingUnaryInterceptor はメソッド名・ステータス・所要時間を記録します。
func LoggingUnaryInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := next(ctx, req)

		code := status.Code(err)
		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.String("request_id", RequestIDFromContext(ctx)),
			zap.String("code", code.String()),
			zap.Duration("elapsed", time.Since(start)),
		}

		switch code {
		case codes.OK:
			logger.Info("grpc request", fields...)
		case codes.Internal, codes.Unknown, codes.Unavailable:
			logger.Error("grpc request failed", append(fields, zap.Error(err))...)
		default:
			logger.Warn("grpc request rejected", append(fields, zap.Error(err))...)
		}
		return resp, err
	}
}

// RecoveryUnaryInterceptor はハンドラのパニックを Internal エラーに変換します。
func RecoveryUnaryInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("grpc handler panicked",
					zap.String("method", info.FullMethod),
					zap.Any("panic", r),
					zap.ByteString("stack", debug.Stack()),
				)
				resp, err = nil, status.Error(codes.Internal, "internal error")
			}
		}()
		return next(ctx, req)
	}
}
