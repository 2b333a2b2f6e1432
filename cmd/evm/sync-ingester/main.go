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

	"github.com/goodnatureofminers/ledgersync/internal/evm/ethereum"
	"github.com/goodnatureofminers/ledgersync/internal/evm/model"
	"github.com/goodnatureofminers/ledgersync/internal/evm/repository/sqlstore"
	"github.com/goodnatureofminers/ledgersync/internal/evm/service/ingester"
	"github.com/goodnatureofminers/ledgersync/internal/metrics"
	"github.com/goodnatureofminers/ledgersync/internal/telemetry"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const (
	serviceName     = "ledgersync-sync-ingester"
	shutdownTimeout = 5 * time.Second
)

type config struct {
	RPCURL          string        `long:"rpc-url" env:"LEDGERSYNC_RPC_URL" description:"ledger node endpoint: http(s)://, ws(s):// or an IPC socket path" default:"ws://127.0.0.1:8546"`
	RPCRateLimit    int           `long:"rpc-rate-limit" env:"LEDGERSYNC_RPC_RATE_LIMIT" description:"max RPC requests per second, 0 disables the limit" default:"0"`
	PollInterval    time.Duration `long:"poll-interval" env:"LEDGERSYNC_POLL_INTERVAL" description:"new block filter poll interval for HTTP endpoints" default:"2s"`
	DBDialect       string        `long:"db-dialect" env:"LEDGERSYNC_DB_DIALECT" description:"database dialect" choice:"mysql" choice:"sqlite" default:"mysql"`
	DBDSN           string        `long:"db-dsn" env:"LEDGERSYNC_DB_DSN" description:"database DSN" required:"true"`
	SkipMigrations  bool          `long:"skip-migrations" env:"LEDGERSYNC_SKIP_MIGRATIONS" description:"do not apply pending schema migrations at startup"`
	Network         model.Network `long:"network" env:"LEDGERSYNC_NETWORK" description:"network name used in logs and metrics" default:"mainnet"`
	StartBlock      uint64        `long:"start-block" env:"LEDGERSYNC_START_BLOCK" description:"first block to fetch when the store is empty" default:"0"`
	NotFoundMaxWait time.Duration `long:"not-found-max-wait" env:"LEDGERSYNC_NOT_FOUND_MAX_WAIT" description:"how long one block lookup is retried while the ledger does not know it, 0 waits forever" default:"0"`
	ProgressEvery   uint64        `long:"progress-every" env:"LEDGERSYNC_PROGRESS_EVERY" description:"backfilled blocks between progress reports" default:"100"`
	MetricsAddr     string        `long:"metrics-addr" env:"LEDGERSYNC_METRICS_ADDR" description:"address for metrics server" default:":2112"`
	OTLPEndpoint    string        `long:"otlp-endpoint" env:"LEDGERSYNC_OTLP_ENDPOINT" description:"OTLP/HTTP trace collector, tracing is disabled when empty"`
	LogLevel        string        `long:"log-level" env:"LEDGERSYNC_LOG_LEVEL" description:"log level" choice:"debug" choice:"info" choice:"warn" choice:"error" default:"info"`
	LogFile         string        `long:"log-file" env:"LEDGERSYNC_LOG_FILE" description:"also write JSON logs to this rotated file"`
}

func main() {
	dotEnvErr := loadDotEnv(".env")

	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		os.Exit(2)
	}

	logger, err := newLogger(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()
	if dotEnvErr != nil {
		logger.Warn("failed to load .env file", zap.Error(dotEnvErr))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		if stoppedByShutdown(ctx, err) {
			logger.Info("sync ingester stopped")
			return
		}
		logger.Fatal("sync ingester failed", zap.Error(err))
	}
}

func parseConfig(args []string) (config, error) {
	cfg := config{}
	if _, err := flags.ParseArgs(&cfg, args); err != nil {
		return config{}, err
	}
	return cfg, nil
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

// stoppedByShutdown reports whether run ended because the process was asked to stop.
func stoppedByShutdown(ctx context.Context, err error) bool {
	return errors.Is(err, context.Canceled) && ctx.Err() != nil
}

// run returns only after every resource it opened is released.
func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	startMetricsServer(ctx, cfg.MetricsAddr, logger)

	shutdownTracer, err := telemetry.InitTracer(ctx, serviceName, cfg.OTLPEndpoint)
	if err != nil {
		return fmt.Errorf("init tracer: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracer(shutdownCtx); err != nil {
			logger.Warn("failed to shutdown tracer", zap.Error(err))
		}
	}()

	dialect := sqlstore.Dialect(cfg.DBDialect)
	if !cfg.SkipMigrations {
		applied, err := sqlstore.MigrateUp(dialect, cfg.DBDSN)
		if err != nil {
			return fmt.Errorf("migrate schema: %w", err)
		}
		logger.Info("schema is up to date", zap.Bool("applied", applied))
	}

	db, err := sqlstore.Open(ctx, dialect, cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	repo, err := sqlstore.NewRepository(db, dialect, metrics.NewSQLRepository(cfg.DBDialect))
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("init repository: %w", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Warn("failed to close store", zap.Error(err))
		}
	}()

	client, err := ethereum.Dial(ctx, cfg.RPCURL)
	if err != nil {
		return err
	}
	rpc := ethereum.NewRPCClient(client, cfg.RPCRateLimit, metrics.NewRPCClient(cfg.Network))
	defer rpc.Close()

	source, err := ethereum.NewLedgerSource(rpc, ethereum.FeedModeFor(cfg.RPCURL), cfg.PollInterval, logger.Named("ledgerSource"))
	if err != nil {
		return fmt.Errorf("init ledger source: %w", err)
	}

	svc, err := ingester.NewSyncEngineService(
		repo,
		source,
		ethereum.NewNormalizer(),
		metrics.NewSyncEngine(cfg.Network),
		cfg.Network,
		logger.Named("syncEngine"),
		ingester.Config{
			StartBlock:      cfg.StartBlock,
			NotFoundMaxWait: cfg.NotFoundMaxWait,
			ProgressEvery:   cfg.ProgressEvery,
		},
	)
	if err != nil {
		return err
	}
	return svc.Run(ctx)
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()
}
