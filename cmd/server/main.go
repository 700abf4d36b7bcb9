package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"respass/internal/issuecode"
	jwttoken "respass/internal/jwt_token"
	jwthandler "respass/internal/jwt_token/handler"
	"respass/internal/notify"
	parcelhandler "respass/internal/parcel/handler"
	parcelservice "respass/internal/parcel/service"
	parcelstore "respass/internal/parcel/store"
	"respass/internal/platform/config"
	"respass/internal/platform/httpserver"
	"respass/internal/platform/kafka"
	"respass/internal/platform/logger"
	"respass/internal/platform/metrics"
	"respass/internal/platform/postgres"
	"respass/internal/platform/redis"
	residenthandler "respass/internal/resident/handler"
	residentservice "respass/internal/resident/service"
	residentstore "respass/internal/resident/store"
	"respass/internal/siteconfig"
	httptransport "respass/internal/transport/http"
	"respass/pkg/platform/tx"
)

const (
	shutdownTimeout = 10 * time.Second
	topicPartitions = 3
	topicReplicas   = 1
)

// main wires dependencies, serves the router and shuts down on SIGINT or
// SIGTERM. Business logic lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.Verbose)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		return err
	}

	publicKey, err := jwttoken.ParsePublicKey(cfg.JWT.PublicKeyPEM)
	if err != nil {
		return fmt.Errorf("JWT_PUBLIC_KEY: %w", err)
	}
	privateKey, err := jwttoken.ParsePrivateKey(cfg.JWT.PrivateKeyPEM)
	if err != nil {
		return fmt.Errorf("JWT_PRIVATE_KEY: %w", err)
	}

	rdb, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
	}

	notifier, closeNotifier, err := newNotifier(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeNotifier()
	notifier = notify.WithTimeout(notifier, cfg.CollaboratorTimeout)

	m := metrics.New()
	runner := tx.NewRunner(pool, cfg.CollaboratorTimeout)
	verifier := jwttoken.NewVerifier(publicKey)

	issuerOpts := []jwttoken.IssuerOption{
		jwttoken.WithDeliverer(notifier, cfg.Workflow.TokenDelivery),
		jwttoken.WithMetrics(m),
	}
	deps := httptransport.Deps{
		Logger:    log,
		Validator: jwttoken.NewStaffValidatorAdapter(verifier),
		Metrics:   promhttp.Handler(),
		Health: []httptransport.HealthCheck{
			{Name: "postgres", Check: pool.Ping},
		},
	}

	if rdb != nil {
		codes := issuecode.NewService(issuecode.NewRedisStore(rdb), log)
		issuerOpts = append(issuerOpts, jwttoken.WithIssueCodeRecorder(codes))
		site := siteconfig.NewHandler(siteconfig.NewService(siteconfig.NewRedisStore(rdb)), log)

		deps.Public = append(deps.Public, issuecode.NewHandler(codes, log), site)
		deps.Staff = append(deps.Staff, site)
		deps.Health = append(deps.Health, httptransport.HealthCheck{Name: "redis", Check: rdb.Health})
	} else {
		log.Warn("REDIS_URL not set; issue-code check and site config are disabled")
	}

	parcels := parcelhandler.New(parcelservice.New(
		parcelstore.NewPostgres(pool),
		newParcelPostgresTx(runner),
		notifier,
		verifier,
		parcelservice.Workflows{ParcelArrived: cfg.Workflow.ParcelArrived, NoMatch: cfg.Workflow.NoMatch},
		log,
		parcelservice.WithMetrics(m),
	), log)
	residents := residenthandler.New(residentservice.New(
		residentstore.NewPostgres(pool),
		newResidentPostgresTx(runner),
		notifier,
		log,
		residentservice.WithMetrics(m),
	), log)
	tokens := jwthandler.New(jwttoken.NewIssuer(privateKey, log, issuerOpts...), log)

	deps.Public = append(deps.Public, parcels)
	deps.Staff = append(deps.Staff, parcels, residents, tokens)

	handler := otelhttp.NewHandler(httptransport.NewRouter(deps), "respass")
	srv := httpserver.New(cfg.Addr, handler, cfg.CollaboratorTimeout)
	errCh := make(chan error, 1)
	go func() {
		log.Info("starting respass", "addr", cfg.Addr, "notify_backend", cfg.Notify.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// newNotifier builds the configured notification backend and its closer.
func newNotifier(ctx context.Context, cfg config.Server, log *slog.Logger) (notify.Notifier, func(), error) {
	switch cfg.Notify.Backend {
	case config.NotifyBackendKnock:
		if cfg.Notify.KnockSecret == "" {
			return nil, nil, errors.New("KNOCK_SECRET_KEY is not set")
		}
		client := notify.NewKnockClient(cfg.Notify.KnockBaseURL, cfg.Notify.KnockSecret,
			&http.Client{Timeout: cfg.CollaboratorTimeout}, log)
		return client, func() {}, nil
	case config.NotifyBackendKafka:
		cl, err := kafka.NewClient(cfg.Kafka)
		if err != nil {
			return nil, nil, err
		}
		if err := kafka.EnsureTopic(ctx, cl, cfg.Kafka.NotifyTopic, topicPartitions, topicReplicas); err != nil {
			cl.Close()
			return nil, nil, err
		}
		return notify.NewKafkaNotifier(cl, cfg.Kafka.NotifyTopic), cl.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown NOTIFY_BACKEND %q", cfg.Notify.Backend)
	}
}
