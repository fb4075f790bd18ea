package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"MiniShop/internal/catalog"
	"MiniShop/internal/config"
	"MiniShop/internal/shop"
	"MiniShop/internal/storefront"
	"MiniShop/pkg/kit"
)

const (
	service          = "storefront"
	catalogLoadLimit = 10 * time.Second
)

func main() {
	cfg, err := config.Load(os.Getenv("SHOP_CONFIG"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}

	log, err := kit.NewLogger(service, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "init logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	src, closer, err := catalog.OpenSource(cfg.Catalog.File, cfg.Catalog.DSN, cfg.Catalog.URL)
	if err != nil {
		log.Fatal("open catalog source failed", zap.Error(err))
	}
	defer func() { _ = closer.Close() }()

	lctx, cancel := context.WithTimeout(ctx, catalogLoadLimit)
	cat, err := catalog.Load(lctx, src)
	cancel()
	if err != nil {
		log.Fatal("load catalog failed", zap.Error(err))
	}
	log.Info("catalog loaded", zap.Int("products", cat.Len()))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	ctl := shop.NewController(cat,
		shop.WithNoticeTTL(cfg.Cart.NoticeTTL),
		shop.WithMetrics(shop.NewMetrics(reg)),
		shop.WithLogger(log),
	)

	httpDeps := storefront.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsToken:   cfg.Metrics.Token,
	}
	if cfg.Cart.RateLimit > 0 {
		httpDeps.CartLimiter = kit.NewIPRateLimiter(cfg.Cart.RateLimit, time.Minute)
	}

	h := storefront.NewHandler(storefront.Deps{
		Catalog: cat,
		Source:  src,
		Shop:    ctl,
	}, httpDeps)

	if err := kit.RunHTTPServer(ctx, cfg.Addr(), h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}
