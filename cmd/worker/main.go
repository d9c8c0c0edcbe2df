package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"nbprates-service/internal/bootstrap"
	"nbprates-service/internal/config"
	"nbprates-service/internal/infrastructure/logx"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func init() { _ = godotenv.Load() }

func main() {
	log := logx.L()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	if len(cfg.Watchlist) == 0 {
		log.Fatal("no currencies to refresh (WATCHLIST)")
	}
	app, err := bootstrap.Init(ctx, cfg, log)
	if err != nil {
		log.Fatal("init worker", zap.Error(err))
	}
	defer app.Close()

	app.Refresher.Start(ctx)
}
