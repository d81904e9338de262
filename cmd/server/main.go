// Command main is the entry point for the MIR Nexus backend server.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nexus/internal/assistant"
	"nexus/internal/cache"
	"nexus/internal/config"
	"nexus/internal/middleware"
	"nexus/internal/observability"
	"nexus/internal/repository"
	"nexus/internal/server"

	"github.com/joho/godotenv"
)

// @title MIR Nexus API
// @version 1.0
// @description Community hub of the MIR church: members, feed, department agendas, children's registry and assistant.

// @host localhost:8375
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: .env not loaded: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.SetLogger(middleware.Logger)
	middleware.InitMiddleware(cfg.SessionSecret)

	shutdownTracing, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:    "nexus-api",
		ServiceVersion: "1.0.0",
		Environment:    cfg.Env,
		Enabled:        cfg.TracingEnabled,
		Exporter:       cfg.TracingExporter,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SamplerRatio:   cfg.TracingSampler,
	})
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}

	kv, closeKV, err := repository.OpenKV(cfg)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.StoreDriver, err)
	}
	store := repository.NewStore(kv)

	ctx := context.Background()
	gen, err := assistant.NewGenerator(ctx, cfg.GeminiAPIKey, cfg.AssistantModel)
	if err != nil {
		log.Fatalf("Failed to create assistant client: %v", err)
	}

	cache.InitRedis(cfg.RedisURL)

	srv, err := server.NewServerWithDeps(ctx, cfg, store, cache.GetClient(), gen)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
		if err := closeKV(); err != nil {
			log.Printf("Store close error: %v", err)
		}
		if err := shutdownTracing(ctx); err != nil {
			log.Printf("Tracing shutdown error: %v", err)
		}
	}()

	if err := srv.Start(); err != nil {
		log.Fatal(err)
	}
	<-done
}
