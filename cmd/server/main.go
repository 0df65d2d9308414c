package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ignite/campaign-insights/internal/analysis"
	"github.com/ignite/campaign-insights/internal/api"
	"github.com/ignite/campaign-insights/internal/api/ui"
	"github.com/ignite/campaign-insights/internal/catalog"
	"github.com/ignite/campaign-insights/internal/config"
	"github.com/ignite/campaign-insights/internal/pkg/logger"
	"github.com/ignite/campaign-insights/internal/session"
	"github.com/ignite/campaign-insights/internal/source"
	"github.com/ignite/campaign-insights/internal/trendfeed"
	"github.com/ignite/campaign-insights/internal/view"
)

// checkPortAvailable verifies that the target port is not already in use.
// This prevents confusion from stale processes occupying the port.
func checkPortAvailable(host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("port %d is already in use (addr %s): %v\n"+
			"  Hint: Run 'lsof -i :%d' to find the blocking process", port, addr, err, port)
	}
	ln.Close()
	return nil
}

func connectRedis(ctx context.Context, redisURL string) *redis.Client {
	if redisURL == "" {
		log.Println("Redis not configured, analysis locks are process-local")
		return nil
	}
	var client *redis.Client
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		client = redis.NewClient(&redis.Options{Addr: redisURL})
	} else {
		client = redis.NewClient(opts)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Printf("Warning: Redis connection failed (%s): %v, falling back to process-local locks", redisURL, err)
		client.Close()
		return nil
	}
	log.Printf("Redis connected: %s", client.Options().Addr)
	return client
}

func main() {
	log.Println("╔════════════════════════════════════════════════════════════╗")
	log.Println("║  IGNITE Campaign Insights (cmd/server/main.go)            ║")
	log.Println("║  Multi-chain campaign analysis with browser dashboard     ║")
	log.Println("╚════════════════════════════════════════════════════════════╝")

	configPath := "config/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		configPath = v
	}
	cfg, err := config.LoadFromEnv(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.SetLevel(logger.ParseLevel(cfg.Log.Level))
	if cfg.Log.RedactPII != nil {
		logger.SetRedactPII(*cfg.Log.RedactPII)
	}

	host := cfg.Server.GetHost()
	if err := checkPortAvailable(host, cfg.Server.Port); err != nil {
		log.Fatalf("Pre-flight check FAILED: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	redisClient := connectRedis(ctx, cfg.Redis.URL)
	if redisClient != nil {
		defer redisClient.Close()
	}

	opts := []analysis.Option{analysis.WithLatencies(analysis.DefaultLatencies(cfg.Analysis.LatencyScale))}
	if feed := trendfeed.New(cfg.Trends); feed != nil {
		opts = append(opts, analysis.WithTrendSignals(feed))
		log.Printf("Trend chain enriched from %s", cfg.Trends.FeedURL)
	}
	orchestrator := analysis.New(opts...)

	src, err := source.New(cfg.Analysis, orchestrator)
	if err != nil {
		log.Fatalf("Failed to initialize analysis source: %v", err)
	}
	log.Printf("Analysis source: %s", cfg.Analysis.Source)

	var catalogOpts []catalog.LoadOption
	if lister, ok := src.(catalog.Lister); ok {
		catalogOpts = append(catalogOpts, catalog.WithLister(lister))
	}
	cat, err := catalog.Load(ctx, cfg.Catalog, catalogOpts...)
	if err != nil {
		log.Fatalf("Failed to load sample campaigns: %v", err)
	}
	log.Printf("Sample catalog loaded: %d campaigns (%s)", cat.Len(), cfg.Catalog.Source)

	page, err := ui.New()
	if err != nil {
		log.Fatalf("Failed to parse page template: %v", err)
	}

	registry := session.NewRegistry(
		cfg.Session.IdleTimeout(),
		session.NewControllerFactory(view.ConfigFrom(cfg.View, cfg.Analysis), src, redisClient, cfg.Redis.LockTTL()),
	)
	go registry.Run(ctx)

	handlers := api.NewHandlers(src, cat, registry, page, cfg.Session)
	health := api.NewHealthChecker(redisClient, registry, cat)
	server := api.NewServer(cfg.Server, handlers, health)

	// Setup graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	registry.Close()

	log.Println("Server stopped")
}
