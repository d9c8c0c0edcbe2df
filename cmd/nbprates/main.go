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
	logger := logx.L()
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var app *bootstrap.App
	load := func(ctx context.Context) (services, error) {
		a, err := bootstrap.Init(ctx, config.Load(), logger)
		if err != nil {
			return services{}, err
		}
		app = a
		return services{rates: a.Rates, currencies: a.Currencies}, nil
	}

	err := newRootCmd(load).ExecuteContext(ctx)
	if app != nil {
		app.Close()
	}
	if err != nil {
		logger.Error("command failed", zap.Error(err))
		os.Exit(1)
	}
}
