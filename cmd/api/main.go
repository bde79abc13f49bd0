package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Lqint/RMBSVolReport/internal/api"
	"github.com/Lqint/RMBSVolReport/internal/config"
	"github.com/Lqint/RMBSVolReport/internal/domain"
	"github.com/Lqint/RMBSVolReport/internal/observability"
	"github.com/Lqint/RMBSVolReport/internal/store"
	"github.com/Lqint/RMBSVolReport/internal/store/postgres"
	httptransport "github.com/Lqint/RMBSVolReport/internal/transport/http"
)

func main() {
	cfg := config.Load()
	logger := log.New(os.Stderr, "[report-api] ", log.LstdFlags)

	if err := observability.InitSentry(observability.SentryConfig{
		DSN:         cfg.SentryDSN,
		Environment: cfg.Environment,
		ServerName:  "report-api",
	}, logger); err != nil {
		logger.Printf("sentry disabled: %v", err)
	}
	defer observability.FlushSentry(2 * time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var source store.Source
	switch cfg.RecordsBackend {
	case config.BackendPostgres:
		pool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			logger.Fatalf("failed to connect to postgres: %v", err)
		}
		defer pool.Close()
		source = postgres.NewSource(pool)
	default:
		source = store.NewCSVSource(cfg.CSVPath)
	}

	st := store.New(source, cfg.OrgStatsPath, store.WithLogger(logger))
	if err := st.Reload(ctx); err != nil {
		logger.Fatalf("initial load failed: %v", err)
	}

	service := domain.NewService(domain.DefaultRules(), cfg.ImageBasePath)
	handler := api.NewHandler(service, st, logger)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle(cfg.ImageBasePath+"/", http.StripPrefix(cfg.ImageBasePath+"/", http.FileServer(http.Dir(cfg.PhotoDir))))

	chain := httptransport.RequestID(
		httptransport.Logging(logger,
			httptransport.CORS(cfg.CORSOrigin,
				httptransport.Recover(logger, mux))))

	server := httptransport.NewServer(httptransport.ServerConfig{
		Address:      cfg.HTTPAddress,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}, chain)

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Printf("annual report service listening on %s", cfg.HTTPAddress)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server error: %v", err)
		}
	}()

	<-shutdownCh
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	}
}
