// Command trlscoped is the TRL scoring service.
// It serves the scoring API over the cached submission dataset and records
// refresh runs in Postgres.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/aresleonardo123/dashboard-trl/internal/api"
	"github.com/aresleonardo123/dashboard-trl/internal/cache"
	"github.com/aresleonardo123/dashboard-trl/internal/history"
	"github.com/aresleonardo123/dashboard-trl/internal/logging"
	"github.com/aresleonardo123/dashboard-trl/internal/pipeline"
	"github.com/aresleonardo123/dashboard-trl/internal/platform"
	"github.com/aresleonardo123/dashboard-trl/internal/source"
	"github.com/aresleonardo123/dashboard-trl/internal/storage"
	"github.com/aresleonardo123/dashboard-trl/internal/webhook"
	"github.com/aresleonardo123/dashboard-trl/pkg/config"
)

type serviceConfig struct {
	Port           string `mapstructure:"port"`
	DatabaseURL    string `mapstructure:"database_url"`
	RedisAddr      string `mapstructure:"redis_addr"`
	StorageBackend string `mapstructure:"storage_backend"`
	StoragePath    string `mapstructure:"storage_path"`
	Bucket         string `mapstructure:"bucket"`
	Prefix         string `mapstructure:"prefix"`
	Region         string `mapstructure:"region"`
	Endpoint       string `mapstructure:"endpoint"`
	AccessKey      string `mapstructure:"access_key"`
	SecretKey      string `mapstructure:"secret_key"`
	APIKey         string `mapstructure:"api_key"`
	FormPassword   string `mapstructure:"form_password"`
	WebhookSecret  string `mapstructure:"webhook_secret"`
	FormID         string `mapstructure:"form_id"`
	ConfigPath     string `mapstructure:"config"`
	RefreshOnStart bool   `mapstructure:"refresh_on_start"`
	Debug          bool   `mapstructure:"debug"`
}

// loadConfig reads TRL_* environment variables over the defaults.
func loadConfig() (serviceConfig, error) {
	v := viper.New()
	v.SetDefault("port", "8080")
	v.SetDefault("database_url", "")
	v.SetDefault("redis_addr", "")
	v.SetDefault("storage_backend", "local")
	v.SetDefault("storage_path", "/tmp/trlscope-data")
	v.SetDefault("bucket", "")
	v.SetDefault("prefix", "")
	v.SetDefault("region", "us-east-1")
	v.SetDefault("endpoint", "")
	v.SetDefault("access_key", "")
	v.SetDefault("secret_key", "")
	v.SetDefault("api_key", "")
	v.SetDefault("form_password", "")
	v.SetDefault("webhook_secret", "")
	v.SetDefault("form_id", "")
	v.SetDefault("config", "")
	v.SetDefault("refresh_on_start", false)
	v.SetDefault("debug", false)

	v.SetEnvPrefix("TRL")
	v.AutomaticEnv()

	var cfg serviceConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("unmarshaling service config: %w", err)
	}

	switch cfg.StorageBackend {
	case "local", "s3", "gcs":
	default:
		return cfg, fmt.Errorf("invalid storage backend %q (want local, s3 or gcs)", cfg.StorageBackend)
	}
	if cfg.StorageBackend != "local" && cfg.Bucket == "" {
		return cfg, fmt.Errorf("TRL_BUCKET is required for the %s backend", cfg.StorageBackend)
	}
	return cfg, nil
}

func newStorage(ctx context.Context, cfg serviceConfig) (storage.Client, error) {
	switch cfg.StorageBackend {
	case "s3":
		return storage.NewS3Storage(ctx, storage.S3Config{
			Bucket:    cfg.Bucket,
			Prefix:    cfg.Prefix,
			Region:    cfg.Region,
			Endpoint:  cfg.Endpoint,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
		})
	case "gcs":
		return storage.NewGCSStorage(ctx, cfg.Bucket, cfg.Prefix)
	default:
		return storage.NewLocalStorage(cfg.StoragePath), nil
	}
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "building logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	if err := run(cfg, logger); err != nil {
		logger.Fatal("trlscoped exited", zap.Error(err))
	}
}

func run(cfg serviceConfig, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scoringCfg := config.DefaultConfig()
	if cfg.ConfigPath != "" {
		loaded, err := config.Load(cfg.ConfigPath)
		if err != nil {
			return fmt.Errorf("loading scoring config: %w", err)
		}
		scoringCfg = loaded
	}

	store, err := newStorage(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	// Run history is optional; without a database the API omits /runs.
	var (
		recorder pipeline.RunRecorder
		lister   api.RunReader
	)
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()

		if err := db.PingContext(ctx); err != nil {
			return fmt.Errorf("ping database: %w", err)
		}
		if err := platform.AutoMigrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		if files, err := platform.MigrationFiles(); err == nil {
			logger.Info("database migrated", zap.Strings("migrations", files))
		}
		runs := history.NewService(db)
		recorder, lister = runs, runs
	}

	var rowCache cache.RowCache = cache.NewMemoryRowsFromEnv()
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("ping redis: %w", err)
		}
		rowCache = cache.NewRedisRows(client, 0)
	}

	var remote source.Source
	if scoringCfg.Source.FormURL != "" {
		remote = source.NewGravityForms(source.GravityFormsConfig{
			URL:        scoringCfg.Source.FormURL,
			Username:   scoringCfg.Source.Username,
			Password:   cfg.FormPassword,
			PageSize:   scoringCfg.Source.PageSize,
			MaxRetries: scoringCfg.Source.MaxRetries,
			Timeout:    time.Duration(scoringCfg.Source.Timeout) * time.Second,
		}, logger.Named("gravityforms"))
	}

	rows := source.NewCached(store, remote, scoringCfg.Source.DatasetKey, logger.Named("source"))
	dict := source.DictionaryLoader{Store: store, ID: "dictionary", Path: scoringCfg.Source.DictionaryPath}
	svc := pipeline.NewService(scoringCfg, dict, rows, rowCache, recorder, logger.Named("pipeline"))

	if cfg.RefreshOnStart {
		if _, err := svc.Refresh(ctx, pipeline.TriggerStartup); err != nil {
			logger.Warn("startup refresh failed", zap.Error(err))
		}
	}

	apiMux := http.NewServeMux()
	api.NewHandler(svc, lister, logger.Named("api")).RegisterRoutes(apiMux)

	// Webhooks authenticate by signature, not by API key.
	mux := http.NewServeMux()
	mux.Handle("/", api.APIKeyAuth(cfg.APIKey)(apiMux))
	if cfg.WebhookSecret != "" {
		mux.Handle("POST /api/v1/webhooks/submission",
			webhook.NewHandler([]byte(cfg.WebhookSecret), cfg.FormID, svc, logger.Named("webhook")))
	}

	var handler http.Handler = mux
	handler = api.CORS(handler)
	handler = api.RequestLog(logger.Named("http"))(handler)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting trlscoped", zap.String("port", cfg.Port), zap.String("storage", cfg.StorageBackend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
