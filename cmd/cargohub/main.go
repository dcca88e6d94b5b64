package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cargohub/cargohub/internal/app"
	"github.com/cargohub/cargohub/internal/auth"
	"github.com/cargohub/cargohub/internal/keys"
	"github.com/cargohub/cargohub/internal/observability"
	"github.com/cargohub/cargohub/internal/platform/db"
	"github.com/cargohub/cargohub/internal/warehouses"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	authRepo := auth.NewRepository(dbpool)
	authService := auth.NewService(authRepo)
	tokenIssuer := auth.NewTokenIssuer(cfg.TokenSecret, cfg.TokenTTL)
	tokenHandler := auth.NewHandler(logger, authService, tokenIssuer)

	keysRepo := keys.NewRepository(dbpool)
	keysService := keys.NewService(keysRepo)
	keysHandler := keys.NewHandler(logger, keysService, authService)

	warehousesRepo := warehouses.NewRepository(dbpool)
	warehousesService := warehouses.NewService(warehousesRepo)
	warehousesHandler := warehouses.NewHandler(logger, warehousesService, authService)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:            logger,
		Config:            cfg,
		AuthService:       authService,
		TokenHandler:      tokenHandler,
		KeysHandler:       keysHandler,
		WarehousesHandler: warehousesHandler,
		Metrics:           metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
