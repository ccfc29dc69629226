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

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/goldbench/repairshop/apps/api/internal/business/dashboard"
	"github.com/goldbench/repairshop/apps/api/internal/platform/auth"
	"github.com/goldbench/repairshop/apps/api/internal/platform/config"
	firestoreclient "github.com/goldbench/repairshop/apps/api/internal/platform/firestore"
	apirouter "github.com/goldbench/repairshop/apps/api/internal/platform/http"
	"github.com/goldbench/repairshop/apps/api/internal/platform/logging"
	"github.com/goldbench/repairshop/apps/api/internal/platform/securitycode"
	"github.com/goldbench/repairshop/apps/api/internal/repository"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load(".env.local", ".env")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load: %v", err)
	}

	logger, err := logging.New(cfg.Debug())
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	gin.SetMode(cfg.GinMode)

	firestoreClient, credsSource, err := firestoreclient.New(ctx, cfg)
	if err != nil {
		logger.Fatal("firestore init", zap.Error(err))
	}
	defer firestoreClient.Close()

	if err := firestoreclient.Ping(ctx, firestoreClient); err != nil {
		logger.Fatal("firestore ping", zap.Error(err))
	}
	logger.Info("connected to Firestore",
		zap.String("project", cfg.FirebaseProjectID),
		zap.String("credentials", credsSource),
	)

	repairRepo := repository.NewRepairRepository(firestoreClient)
	invoiceRepo := repository.NewInvoiceRepository(firestoreClient)
	statsRepo := repository.NewStatsRepository(firestoreClient)

	router := apirouter.NewRouter(apirouter.Deps{
		Repairs:        repairRepo,
		Stats:          statsRepo,
		Refresher:      dashboard.NewRefresher(repairRepo, invoiceRepo, statsRepo, logger.Named("dashboard")),
		Settings:       repository.NewSettingsRepository(firestoreClient),
		Invoices:       invoiceRepo,
		DesignRequests: repository.NewDesignRequestRepository(firestoreClient),
		Codes:          securitycode.NewStore(cfg.SecurityCodeTTL),
		Tokens:         auth.NewIssuer(cfg.AuthSigningKey, cfg.AuthIssuer),
		Logger:         logger.Named("http"),
		AllowedOrigins: cfg.AllowedOrigins,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()
	logger.Info("server listening", zap.String("port", cfg.Port))

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server exited")
}
