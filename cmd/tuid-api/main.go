package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/lzjever/mbos-tuid/internal/api"
	"github.com/lzjever/mbos-tuid/internal/minter"
	"github.com/lzjever/mbos-tuid/internal/observability"
	"github.com/lzjever/mbos-tuid/internal/store"
)

func main() {
	var cfg api.Config
	if err := envconfig.Process("", &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, _ := observability.NewLogger(cfg.LogLevel)
	defer log.Sync()

	// Replace global logger
	zap.ReplaceGlobals(log)

	reg := prometheus.DefaultRegisterer
	observability.RegisterAll(reg)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	machineID, releaseLease := resolveMachineID(ctx, cfg, log)
	defer releaseLease()

	m, err := minter.New(minter.Mode(cfg.Mode), machineID,
		observability.MinterLogger(log, cfg.Mode, machineID))
	if err != nil {
		log.Fatal("minter init failed", zap.Error(err))
	}
	log.Info("minter ready", zap.String("mode", cfg.Mode), zap.Uint8("machine_id", machineID))

	// Main API server
	apiHandler := api.NewAPI(m, cfg.MaxBatch, log)
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      apiHandler.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Metrics server
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	metricsSrv := &http.Server{
		Addr:    cfg.MetricsAddr,
		Handler: mux,
	}

	go func() {
		log.Info("metrics server starting", zap.String("addr", cfg.MetricsAddr))
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		log.Info("API server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("API server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down API server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)
	_ = metricsSrv.Shutdown(shutdownCtx)

	log.Info("API server stopped")
}

// resolveMachineID returns the configured machine ID, or leases one from the
// database when none is configured. The returned func releases the lease on
// shutdown (a no-op for configured IDs).
func resolveMachineID(ctx context.Context, cfg api.Config, log *zap.Logger) (byte, func()) {
	if cfg.MachineID >= 0 {
		if cfg.MachineID > 255 {
			log.Fatal("machine id out of range", zap.Int("machine_id", cfg.MachineID))
		}
		return byte(cfg.MachineID), func() {}
	}

	if cfg.DBDSN == "" {
		log.Fatal("either TUID_MACHINE_ID or TUID_DB_DSN must be set")
	}

	pool, err := store.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		log.Fatal("db connect failed", zap.Error(err))
	}

	leases := store.NewLeases(pool, cfg.LeaseTTL)
	if err := leases.Migrate(ctx); err != nil {
		log.Fatal("lease migration failed", zap.Error(err))
	}

	hostname, _ := os.Hostname()
	owner := hostname + "-" + uuid.New().String()[:8]

	machineID, err := leases.Acquire(ctx, owner)
	if err != nil {
		log.Fatal("machine id lease failed", zap.Error(err))
	}
	log.Info("machine id leased", zap.Uint8("machine_id", machineID), zap.String("owner", owner))

	go heartbeatLoop(ctx, leases, machineID, owner, cfg.LeaseTTL, log)

	return machineID, func() {
		releaseCtx, releaseCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer releaseCancel()
		if err := leases.Release(releaseCtx, machineID, owner); err != nil {
			log.Warn("lease release failed", zap.Error(err))
		}
		pool.Close()
	}
}

// heartbeatLoop keeps the machine-ID lease alive. A lost lease is fatal:
// another instance could be minting with the same machine ID.
func heartbeatLoop(ctx context.Context, leases *store.Leases, machineID byte, owner string, ttl time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(ttl / 3)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := leases.Heartbeat(ctx, machineID, owner); err != nil {
				if errors.Is(err, store.ErrLeaseLost) {
					log.Fatal("machine id lease lost", zap.Uint8("machine_id", machineID))
				}
				observability.LeaseHeartbeatFailures.Inc()
				log.Warn("lease heartbeat failed", zap.Error(err))
			}
		}
	}
}
