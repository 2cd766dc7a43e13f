package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"Audilog/pkg/kit"
)

type Deps struct {
	LedgerURL     string
	StorefrontURL string
}

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string
}

const (
	readyTimeout      = 2 * time.Second
	readyProbeTimeout = 700 * time.Millisecond
	audilogPrefix     = "/audilog"
)

var readyClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        50,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     30 * time.Second,
	},
}

func NewHandler(deps Deps, httpDeps HTTPDeps) (http.Handler, error) {
	ledgerProxy, err := NewReverseProxy(deps.LedgerURL, audilogPrefix)
	if err != nil {
		return nil, err
	}
	storeProxy, err := NewReverseProxy(deps.StorefrontURL, "")
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(kit.Recoverer)
	r.Use(kit.Logging(httpDeps.Log))

	if httpDeps.Registry != nil {
		metrics := kit.NewMetrics(httpDeps.Registry)
		r.Use(metrics.Middleware(httpDeps.Service, kit.RoutePatternOrPath))

		if httpDeps.MetricsEnabled {
			r.With(kit.MetricsAuth(httpDeps.MetricsToken)).
				Handle("/metrics", promhttp.HandlerFor(httpDeps.Registry, promhttp.HandlerOpts{}))
		}
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", readyz(deps, httpDeps.Log))

	r.Handle(audilogPrefix, ledgerProxy)
	r.Handle(audilogPrefix+"/*", ledgerProxy)
	r.Handle("/*", storeProxy)

	return r, nil
}

func readyz(deps Deps, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		if err := checkReady(ctx, deps.LedgerURL+"/readyz"); err != nil {
			if log != nil {
				log.Warn("readyz failed: ledger", zap.Error(err))
			}
			kit.WriteError(w, r, http.StatusServiceUnavailable, "ledger not ready", nil)
			return
		}

		if err := checkReady(ctx, deps.StorefrontURL+"/readyz"); err != nil {
			if log != nil {
				log.Warn("readyz failed: storefront", zap.Error(err))
			}
			kit.WriteError(w, r, http.StatusServiceUnavailable, "storefront not ready", nil)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

func checkReady(ctx context.Context, url string) error {
	cctx, cancel := context.WithTimeout(ctx, readyProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(cctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := readyClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status=%d", resp.StatusCode)
	}
	return nil
}
