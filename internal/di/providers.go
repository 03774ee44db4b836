package di

import (
	"context"
	"fmt"
	"time"

	"RiskDash/internal/domain/repository"
	"RiskDash/internal/handler/api"
	internalrepo "RiskDash/internal/repository"
	"RiskDash/internal/service/backend"
	"RiskDash/internal/service/ratelimit"
	"RiskDash/internal/services/mockanalysis"
	"RiskDash/internal/services/presentation"
	"RiskDash/internal/usecase"
	"RiskDash/pkg/cache"
	pkgch "RiskDash/pkg/clickhouse"
	"RiskDash/pkg/config"
	xhttp "RiskDash/pkg/http"
	pkgkafka "RiskDash/pkg/kafka"
	applogger "RiskDash/pkg/logger"
	"RiskDash/pkg/metrics"
	"RiskDash/pkg/server"
)

// ProvideKafkaProducer creates a Kafka producer, or nil when Kafka is disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatching(cfg.Kafka.Producer.BatchSize, cfg.Kafka.Producer.BatchBytes, cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideLogger builds the app logger. The collector keeps recent entries
// for the admin log fallback and ships aggregates to Kafka when available.
func ProvideLogger(cfg *config.Config, producer *pkgkafka.Producer) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	if cfg.Logging.Collect.Enabled {
		cc := &applogger.CollectionConfig{
			TimeInterval:   cfg.Logging.Collect.Interval,
			CountThreshold: cfg.Logging.Collect.Threshold,
			RecentCapacity: cfg.Logging.Collect.RecentCapacity,
			Topic:          cfg.Logging.Collect.Topic,
		}
		if producer != nil {
			cc.Publisher = producer
		}
		l.AddCollector(cc)
	}
	return l, nil
}

// ProvideLogCollector exposes the logger's collector (nil when collection is off).
func ProvideLogCollector(l *applogger.Logger) *applogger.LogCollector {
	return l.Collector()
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideClickHouseClient connects and creates the history schema, or
// returns nil when ClickHouse is disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.ClickHouse.Enabled {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithAddr(cfg.ClickHouse.Host, cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.InitSchema(ctx, internalrepo.AnalysisRunsSchema); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return client, nil
}

// ProvideCache selects the snapshot cache backend.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if cfg.Cache.Type != "redis" {
		return cache.NewMemoryCache(
			cache.WithMemoryMaxSize(cfg.Cache.MaxSize),
			cache.WithMemoryCleanup(cfg.Cache.CleanupInterval),
			cache.WithMemoryDefaultTTL(cfg.Cache.SnapshotTTL),
		), nil
	}
	rc, err := cache.NewRedisCache(
		cache.WithRedisAddr(cfg.Cache.Redis.Host, cfg.Cache.Redis.Port),
		cache.WithRedisAuth(cfg.Cache.Redis.Password, cfg.Cache.Redis.DB),
		cache.WithRedisPool(cfg.Cache.Redis.PoolSize, cfg.Cache.Redis.PoolSize/2, 5*time.Second),
		cache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return cache.NewLayeredCache(rc, cache.WithLayeredMemory(cfg.Cache.MaxSize, time.Minute)), nil
}

func ProvideSnapshotStore(c cache.Service, cfg *config.Config) repository.SnapshotStore {
	return internalrepo.NewCacheSnapshotStore(c, cfg.Cache.SnapshotTTL)
}

func ProvideBackend(cfg *config.Config, l *applogger.Logger, m repository.Metrics) repository.MarketBackend {
	return backend.New(backend.Config{
		BaseURL:       cfg.Backend.BaseURL,
		Timeout:       cfg.Backend.Timeout,
		RetryAttempts: cfg.Backend.RetryAttempts,
		RetryBackoff:  cfg.Backend.RetryBackoff,
	}, backend.WithLogger(l), backend.WithMetrics(m))
}

func ProvideResolver(cfg *config.Config, l *applogger.Logger) *mockanalysis.Resolver {
	return mockanalysis.New(mockanalysis.WithDelay(cfg.Analysis.MockDelay), mockanalysis.WithLogger(l))
}

func ProvideConvention(cfg *config.Config) presentation.Convention {
	return presentation.Convention(cfg.Display.Convention).Or(presentation.ConventionChinese)
}

// ProvideAnalysisHistory returns the ClickHouse store, or nil without ClickHouse.
func ProvideAnalysisHistory(ch *pkgch.Client, l *applogger.Logger) repository.AnalysisHistory {
	if ch == nil {
		return nil
	}
	store := internalrepo.NewCHAnalysisStore(ch)
	store.SetLogger(l)
	return store
}

// ProvideAnalysisSink fans completed runs out to every configured store.
func ProvideAnalysisSink(
	cfg *config.Config,
	mb repository.MarketBackend,
	history repository.AnalysisHistory,
	producer *pkgkafka.Producer,
) repository.AnalysisSink {
	var sinks []repository.AnalysisSink
	if cfg.Analysis.SaveRemote {
		sinks = append(sinks, internalrepo.NewBackendAnalysisSink(mb))
	}
	if history != nil {
		sinks = append(sinks, history)
	}
	if producer != nil {
		sinks = append(sinks, internalrepo.NewKafkaAnalysisPublisher(producer, cfg.Kafka.EventsTopic))
	}
	return internalrepo.NewFanoutSink(sinks...)
}

func ProvideAnalysisSessions(
	resolver *mockanalysis.Resolver,
	sink repository.AnalysisSink,
	snapshots repository.SnapshotStore,
	l *applogger.Logger,
	m repository.Metrics,
) *usecase.AnalysisSessions {
	return usecase.NewAnalysisSessions(resolver, l, m,
		usecase.WithSink(sink),
		usecase.WithSnapshots(snapshots),
	)
}

func ProvideAssetViewService(
	mb repository.MarketBackend,
	snapshots repository.SnapshotStore,
	resolver *mockanalysis.Resolver,
	conv presentation.Convention,
	l *applogger.Logger,
	m repository.Metrics,
) *usecase.AssetViewService {
	return usecase.NewAssetViewService(mb, snapshots, resolver, conv, l, m)
}

func ProvideSearchService(mb repository.MarketBackend, resolver *mockanalysis.Resolver, l *applogger.Logger, m repository.Metrics) *usecase.SearchService {
	return usecase.NewSearchService(mb, resolver, l, m)
}

func ProvideRateLimiter(cfg *config.Config) *ratelimit.Limiter {
	return ratelimit.New(cfg.Analysis.RateLimit.Capacity, cfg.Analysis.RateLimit.RefillPerSec)
}

// ProvideKafkaConsumer subscribes to backend asset updates, or returns nil
// when Kafka is disabled.
func ProvideKafkaConsumer(cfg *config.Config, l *applogger.Logger, h *usecase.AssetUpdatesHandler) (*pkgkafka.Consumer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
		pkgkafka.WithConsumerLogger(l),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	consumer.RegisterHandler(h)
	return consumer, nil
}

func ProvideAssetUpdatesHandler(cfg *config.Config, snapshots repository.SnapshotStore, l *applogger.Logger) *usecase.AssetUpdatesHandler {
	return usecase.NewAssetUpdatesHandler(cfg.Kafka.UpdatesTopic, snapshots, l)
}

// ProvideHTTPServer registers every handler on one echo server.
func ProvideHTTPServer(
	cfg *config.Config,
	l *applogger.Logger,
	dashboard *api.DashboardHandler,
	analysis *api.AnalysisHandler,
	pres *api.PresentationHandler,
) *xhttp.Server {
	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	return xhttp.NewServer([]xhttp.Handler{dashboard, analysis, pres},
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithSlowThreshold(cfg.Server.SlowThreshold),
		xhttp.WithCORS(cfg.Server.CORS),
		xhttp.WithMetricsPath(metricsPath),
		xhttp.WithLogger(l),
	)
}

// ProvideApp assembles the application lifecycle.
func ProvideApp(
	l *applogger.Logger,
	srv *xhttp.Server,
	sessions *usecase.AnalysisSessions,
	consumer *pkgkafka.Consumer,
	producer *pkgkafka.Producer,
	ch *pkgch.Client,
	c cache.Service,
) *server.App {
	opts := []server.Option{server.WithLogger(l), server.WithCloser("cache", c)}
	if consumer != nil {
		opts = append(opts, server.WithConsumer(consumer))
	}
	if producer != nil {
		opts = append(opts, server.WithCloser("kafka producer", producer))
	}
	if ch != nil {
		opts = append(opts, server.WithCloser("clickhouse", ch))
	}
	return server.New(srv, sessions, opts...)
}
