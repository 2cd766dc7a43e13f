package main

import (
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"Audilog/internal/gateway"
	"Audilog/pkg/config"
	"Audilog/pkg/kit"
)

func main() {
	service := "gateway"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	_ = godotenv.Load()

	cfg, err := config.LoadGateway()
	if err != nil {
		log.Fatal("load config failed", zap.Error(err))
	}

	h, err := gateway.NewHandler(
		gateway.Deps{
			LedgerURL:     cfg.LedgerURL,
			StorefrontURL: cfg.StorefrontURL,
		},
		gateway.HTTPDeps{
			Log:            log,
			Service:        service,
			Registry:       prometheus.NewRegistry(),
			MetricsEnabled: cfg.Metrics.Enabled,
			MetricsToken:   cfg.Metrics.Token,
		},
	)
	if err != nil {
		log.Fatal("init gateway handler failed", zap.Error(err))
	}

	if err := kit.RunHTTPServer(":"+cfg.Port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}
