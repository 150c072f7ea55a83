package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/mistermo/internal/api"
	"github.com/example/mistermo/internal/auth"
	"github.com/example/mistermo/internal/config"
	"github.com/example/mistermo/internal/core"
	"github.com/example/mistermo/internal/db"
	"github.com/example/mistermo/internal/middleware"
	"github.com/example/mistermo/internal/sheets"
)

func main() {
	// --- 1. Load .env and configuration ---
	dotEnvErr := config.LoadDotEnv(os.Getenv("GIN_MODE"))

	appConfig, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to load application configuration: %v", err)
	}

	// --- 2. Initialize Logger (Zap) ---
	zapLogger, err := newLogger(appConfig)
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to initialize Zap logger: %v", err)
	}
	defer zapLogger.Sync()
	if dotEnvErr != nil {
		zapLogger.Debug("No .env file loaded", zap.Error(dotEnvErr))
	}
	zapLogger.Info("Application configuration loaded.", zap.String("storage", appConfig.StorageBackend))

	// --- 3. Storage ---
	initCtx, cancelInitCtx := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelInitCtx()

	store, err := openStore(initCtx, appConfig, zapLogger)
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to open storage", zap.Error(err))
	}
	defer store.Close()

	// --- 4. Onboarding mirror ---
	mirror := newOnboardingMirror(initCtx, appConfig, zapLogger)

	// --- 5. Services ---
	userService := core.NewUserService(store.Users, newVerifier(appConfig), zapLogger)
	progressService := core.NewProgressService(store.Progress, nil)
	onboardingService := core.NewOnboardingService(store.Onboarding, core.OnboardingConfig{
		Mirror:        mirror,
		MirrorTimeout: appConfig.SheetTimeout,
	}, zapLogger)
	zapLogger.Info("Core services initialized.", zap.String("verifier", appConfig.AuthVerifier))

	// --- 6. Gin engine and middleware ---
	if appConfig.IsRelease() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()

	metrics := middleware.NewMetrics()
	router.Use(middleware.RequestLogger(zapLogger))
	router.Use(middleware.RecoveryMiddleware(zapLogger))
	router.Use(middleware.CORSMiddleware(appConfig))
	router.Use(metrics.Middleware())
	if appConfig.ClientURL == "" {
		zapLogger.Warn("CLIENT_URL is not configured; CORS allows every origin.")
	}

	api.SetupRoutes(router, zapLogger, metrics.Handler(zapLogger), userService, progressService, onboardingService)

	// --- 7. HTTP server ---
	serverAddr := fmt.Sprintf(":%s", appConfig.Port)
	httpServer := &http.Server{
		Addr:              serverAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	zapLogger.Info("Starting HTTP server...", zap.String("address", serverAddr), zap.String("ginMode", gin.Mode()))
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// --- 8. Graceful shutdown ---
	quitChannel := make(chan os.Signal, 1)
	signal.Notify(quitChannel, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quitChannel
	zapLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exiting gracefully.")
}

func newLogger(appConfig *config.Config) (*zap.Logger, error) {
	if appConfig.IsRelease() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func openStore(ctx context.Context, appConfig *config.Config, logger *zap.Logger) (*db.Store, error) {
	switch appConfig.StorageBackend {
	case config.StorageFirestore:
		client, err := db.NewFirestoreClient(ctx, appConfig, logger)
		if err != nil {
			return nil, err
		}
		return db.NewFirestoreStore(client), nil
	default:
		gdb, err := db.OpenSQLite(appConfig.DatabasePath)
		if err != nil {
			return nil, err
		}
		logger.Info("SQLite database ready", zap.String("path", appConfig.DatabasePath))
		return db.NewSQLiteStore(gdb), nil
	}
}

func newVerifier(appConfig *config.Config) auth.InitDataVerifier {
	if appConfig.AuthVerifier == config.VerifierHMAC {
		return auth.NewHMACVerifier(appConfig.BotToken, appConfig.InitDataMaxAge)
	}
	return auth.NewStubVerifier()
}

// newOnboardingMirror returns the spreadsheet mirror, or a no-op mirror when
// the sheet is not configured or the client cannot be built.
func newOnboardingMirror(ctx context.Context, appConfig *config.Config, logger *zap.Logger) core.OnboardingMirror {
	if !appConfig.SheetsEnabled() {
		logger.Warn("Google Sheets mirror disabled: SHEET_ID is not set")
		return core.NoopMirror{}
	}

	appender, err := sheets.NewAppender(ctx, sheets.Config{
		SpreadsheetID:   appConfig.SheetID,
		CredentialsFile: appConfig.GSheetsCredentialsFile,
		Range:           appConfig.SheetRange,
	})
	if err != nil {
		logger.Warn("Google Sheets mirror disabled", zap.Error(err))
		return core.NoopMirror{}
	}

	logger.Info("Google Sheets mirror enabled", zap.String("sheet_id", appConfig.SheetID))
	return core.NewSheetMirror(appender)
}
