package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"looview/internal/audit"
	"looview/internal/geocoding"
	"looview/internal/geocoding/cache"
	geocodinghandler "looview/internal/geocoding/handler"
	"looview/internal/geocoding/google"
	geocodingmetrics "looview/internal/geocoding/metrics"
	jwttoken "looview/internal/jwt_token"
	"looview/internal/locale"
	"looview/internal/platform/config"
	"looview/internal/platform/httpserver"
	"looview/internal/platform/kafka"
	"looview/internal/platform/logger"
	"looview/internal/platform/metrics"
	"looview/internal/platform/postgres"
	"looview/internal/platform/redis"
	"looview/internal/toilet/builder"
	toilethandler "looview/internal/toilet/handler"
	toiletmetrics "looview/internal/toilet/metrics"
	"looview/internal/toilet/normalizer"
	"looview/internal/toilet/photo"
	"looview/internal/toilet/registry"
	toiletservice "looview/internal/toilet/service"
	"looview/internal/toilet/store"
	httptransport "looview/internal/transport/http"
	"looview/pkg/platform/circuit"
)

const (
	shutdownTimeout = 10 * time.Second
	auditCapacity   = 256
	draftTTL        = 30 * time.Minute
	janitorInterval = time.Minute
)

// main wires dependencies and runs the HTTP server alongside the audit
// worker and the draft janitor until a signal arrives.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	catalog, err := locale.Bundled(cfg.Defaults.Locale)
	if err != nil {
		return err
	}

	httpMetrics := metrics.New()
	toiletMetrics := toiletmetrics.New()
	geoMetrics := geocodingmetrics.New()

	routerOpts := []httptransport.Option{httptransport.WithMetricsEndpoint()}

	db, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	toilets, err := openStore(ctx, db, cfg.SeedDemoData, log)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
		routerOpts = append(routerOpts, httptransport.WithHealthCheck("postgres", db.PingContext))
	}

	provider, redisClient, err := openGeocoder(ctx, cfg, log, geoMetrics)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		routerOpts = append(routerOpts, httptransport.WithHealthCheck("redis", redisClient.Health))
	}

	adapter := geocoding.NewAdapter(provider,
		geocoding.WithLogger(log),
		geocoding.WithMetrics(geoMetrics),
		geocoding.WithTimeout(cfg.Geocode.Timeout),
	)
	previews := photo.New(photo.WithGauge(toiletMetrics))
	center := geocoding.Point{Lat: cfg.Defaults.MapCenterLat, Lng: cfg.Defaults.MapCenterLng}
	sessions := geocoding.NewSessions(adapter, previews, center,
		geocoding.WithSessionsLogger(log),
		geocoding.WithSessionsMetrics(geoMetrics),
	)

	publisher := audit.NewPublisher(auditCapacity, audit.WithPublisherLogger(log))
	sinks := []audit.Sink{audit.NewMemoryStore()}
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
		if err != nil {
			return err
		}
		defer producer.Close()
		if err := producer.EnsureTopic(ctx, 1, 1); err != nil {
			log.WarnContext(ctx, "kafka topic not ensured", "error", err, "topic", cfg.Kafka.Topic)
		}
		sinks = append(sinks, audit.NewGuardedSink(producer, circuit.New("kafka"), log))
	}
	worker := audit.NewWorker(publisher.Outbox(), log, sinks...)

	b := builder.New(registry.Features, registry.ToiletTypes, builder.WithCountryCode(cfg.Defaults.CountryCode))
	n := normalizer.New(registry.Features, registry.ToiletTypes)
	svc := toiletservice.New(toilets, b, n, catalog,
		toiletservice.WithLogger(log),
		toiletservice.WithAuditPublisher(publisher),
		toiletservice.WithMetrics(toiletMetrics),
	)

	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTAudience)
	validator := jwttoken.NewIdentityValidator(jwtService)

	router := httptransport.NewRouter(log, catalog, validator, routerOpts...).Handler(
		toilethandler.New(svc, sessions, catalog, log, httpMetrics,
			toilethandler.WithMapDefaults(center, cfg.Defaults.CountryCode),
		),
		geocodinghandler.New(adapter, sessions, catalog, log, httpMetrics),
	)
	srv := httpserver.New(cfg.Addr, router)

	log.InfoContext(ctx, "starting looview",
		"addr", cfg.Addr,
		"geocoder", adapter.Available(),
		"postgres", db != nil,
		"kafka", len(cfg.Kafka.Brokers) > 0,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return httpserver.Run(gctx, srv, log, shutdownTimeout) })
	g.Go(func() error { return worker.Run(gctx) })
	g.Go(func() error { return sessions.RunJanitor(gctx, janitorInterval, draftTTL) })
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// openStore picks the Postgres document store when a database is
// configured and the in-memory store otherwise.
func openStore(ctx context.Context, db *sql.DB, seed bool, log *slog.Logger) (toiletservice.Store, error) {
	now := time.Now()
	if db == nil {
		log.InfoContext(ctx, "using in-memory toilet store", "seeded", seed)
		if seed {
			return store.NewInMemory(store.DemoRecords(now)...), nil
		}
		return store.NewInMemory(), nil
	}
	pg := store.NewPostgres(db)
	if err := pg.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	if seed {
		if err := pg.Import(ctx, store.DemoRecords(now)); err != nil {
			return nil, err
		}
	}
	return pg, nil
}

// openGeocoder builds the provider chain. A missing API key runs the
// adapter without a provider so lookups report unavailable.
func openGeocoder(ctx context.Context, cfg config.Server, log *slog.Logger, m *geocodingmetrics.Metrics) (geocoding.Provider, *redis.Client, error) {
	gp, err := google.New(cfg.Geocode.GoogleMapsAPIKey, google.WithRegion(cfg.Defaults.CountryCode))
	if errors.Is(err, geocoding.ErrUnavailable) {
		log.WarnContext(ctx, "geocoding disabled: no Google Maps API key")
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	client, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	if client == nil {
		return gp, nil, nil
	}
	return cache.New(gp, client, cfg.Geocode.CacheTTL, cache.WithLogger(log), cache.WithMetrics(m)), client, nil
}
