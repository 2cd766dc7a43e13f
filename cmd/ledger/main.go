package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"Audilog/internal/ledger"
	"Audilog/pkg/config"
	"Audilog/pkg/kit"
	"Audilog/pkg/kv"
)

func main() {
	service := "ledger"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	_ = godotenv.Load()

	cfg, err := config.LoadLedger()
	if err != nil {
		log.Fatal("load config failed", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	store, err := kv.Open(ctx, kv.Options{
		Driver:      cfg.Storage.Driver,
		FilePath:    cfg.Storage.FilePath,
		PostgresDSN: cfg.Storage.PostgresDSN,
		RedisURL:    cfg.Storage.RedisURL,
	})
	cancel()
	if err != nil {
		log.Fatal("open storage failed", zap.Error(err))
	}

	s := &ledger.Server{
		Ledger: ledger.NewService(store),
		Log:    log,
	}

	h := ledger.NewHandler(s, ledger.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       prometheus.NewRegistry(),
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsToken:   cfg.Metrics.Token,
	})

	if err := kit.RunHTTPServer(":"+cfg.Port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}
