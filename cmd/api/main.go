package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/zenskecarape/storefront-api/api/controllers"
	"github.com/zenskecarape/storefront-api/api/routes"
	cartsvc "github.com/zenskecarape/storefront-api/internal/cart"
	catalogsvc "github.com/zenskecarape/storefront-api/internal/catalog"
	"github.com/zenskecarape/storefront-api/internal/cms"
	contactsvc "github.com/zenskecarape/storefront-api/internal/contact"
	"github.com/zenskecarape/storefront-api/internal/mailer"
	ordersvc "github.com/zenskecarape/storefront-api/internal/orders"
	revalidatesvc "github.com/zenskecarape/storefront-api/internal/revalidate"
	"github.com/zenskecarape/storefront-api/pkg/config"
	"github.com/zenskecarape/storefront-api/pkg/db"
	"github.com/zenskecarape/storefront-api/pkg/logger"
	"github.com/zenskecarape/storefront-api/pkg/metrics"
	"github.com/zenskecarape/storefront-api/pkg/migrate"
	"github.com/zenskecarape/storefront-api/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront-api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	cmsClient, err := cms.New(cfg.CMS, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cms client", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)
	domainMetrics := metrics.NewStorefrontMetrics(registry)

	mail := mailer.New(cfg.Mail, domainMetrics, logg)

	catalogService := catalogsvc.NewService(cmsClient, redisClient, cfg.Catalog, domainMetrics, logg)
	cartService := cartsvc.NewService(cartsvc.NewRedisRepository(redisClient, cfg.Cart.TTL, logg), logg)

	contactService, err := contactsvc.NewService(contactsvc.NewRepository(dbClient.DB()), mail, domainMetrics, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create contact service", err)
		os.Exit(1)
	}

	ordersService, err := ordersvc.NewService(dbClient, ordersvc.NewRepository(dbClient.DB()), mail, domainMetrics, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	revalidateService := revalidatesvc.NewService(cfg.Webhook.RevalidateSecret, redisClient, domainMetrics, logg)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting storefront api")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:      cfg,
			Logger:      logg,
			Redis:       redisClient,
			HTTPMetrics: httpMetrics,
			Registry:    registry,
			HealthChecks: map[string]controllers.Pinger{
				"db":    dbClient,
				"redis": redisClient,
				"cms":   cmsClient,
			},
			Catalog:    catalogService,
			Cart:       cartService,
			Contact:    contactService,
			Orders:     ordersService,
			Revalidate: revalidateService,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-stop:
		logg.Info(ctx, "shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(shutdownCtx, "graceful shutdown failed", err)
		}
	}
}
