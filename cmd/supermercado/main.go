package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Jurgensen-SJB/supermercado/internal/api"
	"github.com/Jurgensen-SJB/supermercado/internal/cart"
	"github.com/Jurgensen-SJB/supermercado/internal/checkout"
	"github.com/Jurgensen-SJB/supermercado/internal/config"
	"github.com/Jurgensen-SJB/supermercado/internal/metrics"
	"github.com/Jurgensen-SJB/supermercado/internal/prefs"
	"github.com/Jurgensen-SJB/supermercado/internal/session"
	"github.com/Jurgensen-SJB/supermercado/internal/storage"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Local storage setup
	store, err := newStore(cfg)
	if err != nil {
		slog.Error("❌ Error opening local storage", "error", err.Error())
		os.Exit(1)
	}

	httpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   cfg.API.Timeout,
	}

	apiClient := api.NewClient(cfg.API.BaseURL, httpClient)
	cartStore := cart.NewStore(store)
	sessions := session.NewManager(apiClient, store, cartStore)
	wizard := checkout.NewWizard(cartStore, apiClient, sessions)
	preferences := prefs.NewManager(store)

	// rendering layers hang off these events; here a log line stands in
	cartStore.Subscribe(func() {
		if count, err := cartStore.Count(context.Background()); err == nil {
			slog.Info("Cart changed", slog.Int("badge", count))
		}
	})
	wizard.Subscribe(func(event checkout.Event) {
		slog.Info("Checkout state changed",
			slog.String("event", event.Kind),
			slog.Int("step", int(event.Step)))
	})

	slog.Info("storefront initialized",
		slog.String("env", cfg.Env),
		slog.String("api", cfg.API.BaseURL),
		slog.String("storage", cfg.LocalStorage.Backend))

	ctx := context.Background()

	// Drop cart items whose products left the catalog since last run
	if err := cartStore.Reconcile(ctx, apiClient.GetProduct); err != nil {
		slog.Warn("⚠️ Cart reconciliation skipped", slog.String("error", err.Error()))
	}

	if count, err := cartStore.Count(ctx); err == nil {
		slog.Info("🛒 Cart restored", slog.Int("items", count))
	}

	slog.Info("🎨 Preferences restored",
		slog.String("theme", preferences.Theme(ctx)),
		slog.Bool("eco_mode", preferences.EcoMode(ctx)))

	slog.Info("👤 Session restored",
		slog.Bool("logged_in", sessions.IsLoggedIn(ctx)),
		slog.Bool("admin", sessions.IsAdmin(ctx)))

	// Optional metrics endpoint
	var metricsServer *http.Server

	if cfg.Metrics.Addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())

		metricsServer = &http.Server{
			Addr:    cfg.Metrics.Addr,
			Handler: mux,
		}

		go func() {
			slog.Info("🚀 Metrics server starting", slog.String("address", cfg.Metrics.Addr))

			if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
				slog.Error("❌ Failed to start metrics server", slog.Any("error", err.Error()))
			}
		}()
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop...")

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("⚠️ Metrics server shutdown encountered an issue", slog.String("error", err.Error()))
		}
	}

	slog.Info("✅ Storefront shut down gracefully.")
}

func newStore(cfg *config.Config) (storage.Store, error) {
	if cfg.LocalStorage.Backend == "redis" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisConnect.Host,
			Username: cfg.RedisConnect.Username,
			Password: cfg.RedisConnect.Password,
			DB:       cfg.RedisConnect.DB,
		})

		return storage.NewRedisStore(client, "supermercado"), nil
	}

	return storage.NewFileStore(cfg.LocalStorage.Dir)
}
