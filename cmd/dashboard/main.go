// cmd/dashboard/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"pragati-dashboard/internal/backend"
	"pragati-dashboard/internal/common/auth"
	"pragati-dashboard/internal/common/config"
	"pragati-dashboard/internal/common/database"
	"pragati-dashboard/internal/common/logger"
	"pragati-dashboard/internal/common/observability"
	"pragati-dashboard/internal/components/notifications"
	"pragati-dashboard/internal/components/reports"
	"pragati-dashboard/internal/components/submission"
	"pragati-dashboard/internal/components/triage"
)

// dashboard holds the constructed component services for the lifetime of
// the process.
type dashboard struct {
	submission    *submission.Service
	triage        *triage.Service
	notifications *notifications.Service
	reports       *reports.Service
}

func (d *dashboard) enabledComponents() []string {
	var names []string
	if d.submission != nil {
		names = append(names, submission.Component)
	}
	if d.triage != nil {
		names = append(names, triage.Component)
	}
	if d.notifications != nil {
		names = append(names, notifications.Component)
	}
	if d.reports != nil {
		names = append(names, reports.Component)
	}
	return names
}

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting dashboard...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("dashboard")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		// Test the connection with context
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	sessions := auth.NewStore(redis)

	backendClient := backend.NewClient(
		cfg.Backend.BaseURL,
		time.Duration(cfg.Backend.Timeout)*time.Millisecond,
		log,
	)
	zapLog.Info("Backend client initialized", zap.String("baseURL", cfg.Backend.BaseURL))

	// --- Build dashboard components ---
	dash := &dashboard{}

	if cfg.Components[submission.Component].Enabled {
		svc, err := submission.NewService(
			submission.ServiceDependencies{Logger: log, Backend: backendClient, Sessions: sessions},
			&submission.Config{
				Enabled: true,
				Timeout: time.Duration(cfg.Components[submission.Component].Timeout) * time.Millisecond,
			},
		)
		if err != nil {
			zapLog.Fatal("failed to create submission service", zap.Error(err))
		}
		dash.submission = svc
		zapLog.Info("component ready", zap.String("component", submission.Component))
	}

	if cfg.Components[triage.Component].Enabled {
		svc, err := triage.NewService(
			triage.ServiceDependencies{Logger: log, Backend: backendClient, Sessions: sessions},
			&triage.Config{
				Enabled:     true,
				Timeout:     time.Duration(cfg.Components[triage.Component].Timeout) * time.Millisecond,
				ForwardOnly: cfg.Triage.ForwardOnly,
			},
		)
		if err != nil {
			zapLog.Fatal("failed to create triage service", zap.Error(err))
		}
		dash.triage = svc
		zapLog.Info("component ready", zap.String("component", triage.Component))
	}

	if cfg.Components[notifications.Component].Enabled {
		svc, err := notifications.NewService(
			notifications.ServiceDependencies{Logger: log, Backend: backendClient, Sessions: sessions},
			&notifications.Config{
				Enabled: true,
				Timeout: time.Duration(cfg.Components[notifications.Component].Timeout) * time.Millisecond,
			},
		)
		if err != nil {
			zapLog.Fatal("failed to create notifications service", zap.Error(err))
		}
		dash.notifications = svc
		zapLog.Info("component ready", zap.String("component", notifications.Component))
	}

	if cfg.Components[reports.Component].Enabled {
		repCfg := reports.DefaultConfig()
		repCfg.Timeout = time.Duration(cfg.Components[reports.Component].Timeout) * time.Millisecond
		svc, err := reports.NewService(
			reports.ServiceDependencies{Logger: log, Backend: backendClient, Sessions: sessions},
			repCfg,
		)
		if err != nil {
			zapLog.Fatal("failed to create reports service", zap.Error(err))
		}
		dash.reports = svc
		zapLog.Info("component ready", zap.String("component", reports.Component))
	}

	zapLog.Info("All components initialized", zap.Strings("components", dash.enabledComponents()))

	// --- Health & Metrics Server ---
	metricsServer := &http.Server{Addr: cfg.Metrics.ListenAddr}
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			status := "ready"
			code := http.StatusOK
			if err := redis.Ping(r.Context()); err != nil {
				status = "degraded"
				code = http.StatusServiceUnavailable
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(code)
			json.NewEncoder(w).Encode(map[string]string{
				"status": status,
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/components", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]interface{}{
				"components": dash.enabledComponents(),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening", zap.String("addr", cfg.Metrics.ListenAddr))
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping dashboard...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Health/Metrics server shutdown failed", zap.Error(err))
	}

	zapLog.Info("Dashboard stopped gracefully")
}
