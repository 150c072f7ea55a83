package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	tgbot "github.com/go-telegram/bot"
	"go.uber.org/zap"

	"github.com/example/mistermo/internal/bot"
	"github.com/example/mistermo/internal/config"
)

func main() {
	_ = config.LoadDotEnv(os.Getenv("GIN_MODE"))

	appConfig, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to load application configuration: %v", err)
	}

	newLogger := zap.NewDevelopment
	if appConfig.IsRelease() {
		newLogger = zap.NewProduction
	}
	zapLogger, err := newLogger()
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to initialize Zap logger: %v", err)
	}
	defer zapLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler := bot.NewHandler(appConfig.WebAppURL, zapLogger)

	b, err := tgbot.New(appConfig.BotToken, tgbot.WithDefaultHandler(handler.Ignore))
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to create Telegram bot", zap.Error(err))
	}
	handler.Register(b)

	zapLogger.Info("Bot polling started", zap.String("web_app_url", appConfig.WebAppURL))
	b.Start(ctx)
	zapLogger.Info("Bot stopped")
}
