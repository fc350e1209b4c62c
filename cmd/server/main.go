package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nathanyu/boarding-optimizer/internal/config"
	"github.com/nathanyu/boarding-optimizer/internal/handler"
	"github.com/nathanyu/boarding-optimizer/internal/middleware"
	"github.com/nathanyu/boarding-optimizer/internal/queue"
	"github.com/nathanyu/boarding-optimizer/internal/seatmap"
	"github.com/nathanyu/boarding-optimizer/internal/sequencer"
	"github.com/nathanyu/boarding-optimizer/internal/telemetry"
)

const serviceName = "boarding-optimizer"

func main() {
	cfg := config.Load()

	telemetry.InitLogger(serviceName)

	cleanup, err := telemetry.InitTracer(serviceName)
	if err != nil {
		log.Printf("Warning: failed to initialize tracer: %v", err)
	} else {
		defer cleanup()
	}

	log.Println("Starting boarding optimizer service...")

	// --- Core components ---

	// One shared seat-distance resolver backs the sequencer; benchmark
	// endpoints reset it between trials.
	resolver := seatmap.NewResolver()
	seq := sequencer.NewSequencer(resolver)

	// Optional fan-out of computed sequences over NATS.
	var publisher *queue.Publisher
	if cfg.NATS.URL != "" {
		p, err := queue.NewPublisher(cfg.NATS.URL, cfg.NATS.Subject)
		if err != nil {
			log.Printf("Warning: NATS unavailable, sequence events disabled: %v", err)
		} else {
			publisher = p
			defer publisher.Close()
			log.Printf("Publishing sequence events to %q", cfg.NATS.Subject)
		}
	}

	// --- HTTP Server ---

	gin.SetMode(cfg.GinMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())
	r.Use(middleware.Tracing())
	r.Use(middleware.Metrics())

	h := handler.NewHandler(seq, resolver, publisher)
	h.RegisterRoutes(r)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	// --- Metrics Server ---

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.MetricsPort),
		Handler: metricsMux,
	}

	// Start servers
	go func() {
		log.Printf("Metrics server listening on :%d", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("metrics server error: %v", err)
		}
	}()

	go func() {
		log.Printf("HTTP server listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server error: %v", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}
	if err := metricsSrv.Shutdown(ctx); err != nil {
		log.Printf("Metrics server shutdown error: %v", err)
	}

	log.Println("Boarding optimizer service stopped.")
}
