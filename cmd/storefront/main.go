package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"Audilog/internal/storefront"
	"Audilog/pkg/config"
	"Audilog/pkg/kit"
	"Audilog/pkg/kv"
)

func main() {
	service := "storefront"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	_ = godotenv.Load()

	cfg, err := config.LoadStorefront()
	if err != nil {
		log.Fatal("load config failed", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := kv.Open(ctx, kv.Options{
		Driver:      cfg.Storage.Driver,
		FilePath:    cfg.Storage.FilePath,
		PostgresDSN: cfg.Storage.PostgresDSN,
		RedisURL:    cfg.Storage.RedisURL,
	})
	if err != nil {
		log.Fatal("open storage failed", zap.Error(err))
	}

	cart, err := storefront.NewCartStore(ctx, store)
	if err != nil {
		log.Fatal("load cart failed", zap.Error(err))
	}

	s := &storefront.Server{
		Catalog: storefront.NewCatalog(),
		Cart:    cart,
		Orders:  storefront.NewOrderStore(),
		Prefs:   storefront.NewPrefs(store),
		Storage: store,
		Log:     log,
	}

	h := storefront.NewHandler(s, storefront.HTTPDeps{
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
