package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	oauth2handler "authgate/internal/oauth2/handler"
	oauth2metrics "authgate/internal/oauth2/metrics"
	oauth2service "authgate/internal/oauth2/service"
	"authgate/internal/oauth2/store"
	"authgate/internal/oauth2/store/memory"
	"authgate/internal/oauth2/store/postgres"
	"authgate/internal/platform/config"
	"authgate/internal/platform/httpserver"
	"authgate/internal/platform/logger"
	platformredis "authgate/internal/platform/redis"
	"authgate/internal/registry"
	"authgate/internal/session"
	"authgate/pkg/platform/audit"
)

// auditBuffer bounds the async audit inbox; overflow drops events rather
// than blocking the authorization flow.
const auditBuffer = 1024

// main wires dependencies and keeps the server lifecycle small. Business
// logic lives in internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := run(cfg, log); err != nil {
		log.Error("fatal", "error", err.Error())
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	clients, err := registry.LoadFile(cfg.RegistryPath)
	if err != nil {
		return err
	}

	oauth2Store, closeStore, err := buildOAuth2Store(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	userSessions, err := buildUserSessionStore(cfg)
	if err != nil {
		return err
	}

	sink, err := buildAuditPublisher(cfg, log)
	if err != nil {
		return err
	}
	publisher := audit.NewAsyncPublisher(sink, auditBuffer, log)
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Warn("audit publisher close failed", "error", err.Error())
		}
	}()

	svc := oauth2service.New(
		clients,
		oauth2Store,
		userSessions,
		oauth2service.OpaqueTokenSource{},
		publisher,
		oauth2metrics.New(),
		log,
	)

	router := chi.NewRouter()
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	oauth2handler.New(svc, log, []byte(cfg.SessionSigningKey)).Register(router)

	srv := httpserver.New(cfg.Addr, router)

	metricsRouter := chi.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.Handler())
	metricsSrv := httpserver.New(cfg.MetricsAddr, metricsRouter)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if err := publisher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		log.Info("starting authgate", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		log.Info("serving metrics", "addr", cfg.MetricsAddr)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		_ = metricsSrv.Shutdown(shutdownCtx)
		return srv.Shutdown(shutdownCtx)
	})

	return group.Wait()
}

// buildOAuth2Store picks PostgreSQL when configured, the in-memory store
// otherwise (development only: state does not survive a restart).
func buildOAuth2Store(cfg config.Server) (store.Store, func(), error) {
	if cfg.PostgresDSN == "" {
		return memory.New(), func() {}, nil
	}
	db, err := sql.Open("postgres", cfg.PostgresDSN)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return postgres.New(db), func() { _ = db.Close() }, nil
}

func buildUserSessionStore(cfg config.Server) (oauth2service.UserSessionStore, error) {
	if cfg.RedisURL == "" {
		return session.NewInMemoryStore(), nil
	}
	client, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	return session.NewRedisStore(client.Client), nil
}

func buildAuditPublisher(cfg config.Server, log *slog.Logger) (audit.Publisher, error) {
	if len(cfg.KafkaBrokers) == 0 {
		log.Info("kafka not configured, audit events stay in memory")
		return audit.NewMemoryPublisher(), nil
	}
	return audit.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaAuditTopic)
}
