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

	"github.com/api-sage/accounts-payable/internal/adapter/http/controller"
	"github.com/api-sage/accounts-payable/internal/adapter/http/middleware"
	"github.com/api-sage/accounts-payable/internal/adapter/http/router"
	"github.com/api-sage/accounts-payable/internal/adapter/repository/postgres"
	"github.com/api-sage/accounts-payable/internal/config"
	"github.com/api-sage/accounts-payable/internal/importer"
	"github.com/api-sage/accounts-payable/internal/scheduler"
	"github.com/api-sage/accounts-payable/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	hour, minute, err := cfg.OverdueRunTime()
	if err != nil {
		log.Fatalf("parse overdue run time: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	migrateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := postgres.RunMigrations(migrateCtx, cfg.DatabaseDSN, cfg.MigrationsDir); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	db, err := postgres.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	accountRepo := postgres.NewAccountRepository(db)
	accountService := usecase.NewAccountService(accountRepo, importer.NewCSVAccountImporter())
	accountController := controller.NewAccountController(accountService)

	var authMiddleware func(http.Handler) http.Handler
	if cfg.BasicAuthUser != "" && cfg.BasicAuthPassword != "" {
		authMiddleware = middleware.BasicAuth(cfg.BasicAuthUser, cfg.BasicAuthPassword)
	}

	mux := router.New(accountController, authMiddleware)

	overdue := scheduler.New(accountRepo, hour, minute)
	go overdue.Run(ctx)

	server := &http.Server{Addr: cfg.HTTPAddr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Printf("listening on %s", cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("serve http: %v", err)
	}
}
