package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	httpadapter "github.com/ogurasousui/workforce-kpi/internal/adapters/http"
	"github.com/ogurasousui/workforce-kpi/internal/platform/bootstrap"
	"github.com/ogurasousui/workforce-kpi/internal/platform/config"
	"github.com/ogurasousui/workforce-kpi/internal/platform/logging"
	"github.com/ogurasousui/workforce-kpi/internal/platform/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env は任意です。存在しなければ環境変数だけを使います。
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "assets/local.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("server stopped with error", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	opts, err := bootstrap.ReportOptions(cfg.Report)
	if err != nil {
		return err
	}

	src, err := bootstrap.OpenRosterSource(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer src.Close()

	reports := bootstrap.NewReportService(src, opts, logger)

	errCh := make(chan error, 2)

	grpcServer := server.New(cfg.Server.ListenAddr, reports, logger.Named("grpc"))
	go func() {
		errCh <- grpcServer.Run(ctx)
	}()

	var httpServer *http.Server
	if cfg.HTTP.ListenAddr != "" {
		var ready httpadapter.HealthChecker
		if src.Pinger != nil {
			ready = src.Pinger
		}
		httpServer = &http.Server{
			Addr:              cfg.HTTP.ListenAddr,
			Handler:           httpadapter.NewRouter(httpadapter.NewReportHandler(reports, ready), logger.Named("http")),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info("http server listening", zap.String("addr", cfg.HTTP.ListenAddr))
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
				return
			}
			errCh <- nil
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case runErr = <-errCh:
		if runErr != nil {
			logger.Error("listener failed", zap.Error(runErr))
		}
	}

	grpcServer.GracefulStop()
	if httpServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("http shutdown", zap.Error(err))
		}
	}

	return runErr
}
