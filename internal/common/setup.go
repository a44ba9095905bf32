package common

import (
	"context"
	"log"
	"strings"

	"memecoin-client-go/internal/api"
	"memecoin-client-go/internal/config"
	"memecoin-client-go/internal/database"
	"memecoin-client-go/internal/metrics"
	"memecoin-client-go/internal/stream"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Services struct {
	Logger    *zap.Logger
	Config    *config.Config
	API       *api.Client
	DbService *database.Service // nil when the journal is disabled
	Metrics   *metrics.Collector
}

// InitializeLogger builds a production logger at level and installs it as
// the zap global logger
func InitializeLogger(level string) (*zap.Logger, func()) {
	zapCfg := zap.NewProductionConfig()
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	zapCfg.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := zapCfg.Build()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	restore := zap.ReplaceGlobals(logger)

	cleanup := func() {
		if err := logger.Sync(); err != nil {
			if !isIgnorableSyncError(err) {
				log.Printf("Failed to sync logger: %v\n", err)
			}
		}
		restore()
	}

	return logger, cleanup
}

func InitializeServices(ctx context.Context, logger *zap.Logger, cfg *config.Config) (*Services, error) {
	collector := metrics.NewCollector()

	var dbService *database.Service
	if cfg.Database.Path != "" {
		var err error
		dbService, err = database.NewService(ctx, logger, cfg.Database.Path)
		if err != nil {
			return nil, err
		}
	} else {
		logger.Info("Local journal disabled")
	}

	client := api.NewClient(cfg.API, logger, collector)
	if cfg.Auth.Token != "" {
		client.SetToken(cfg.Auth.Token)
	}

	logger.Info("API client ready",
		zap.String("base_url", cfg.API.BaseURL),
		zap.Bool("token_preset", cfg.Auth.Token != ""))

	return &Services{
		Logger:    logger,
		Config:    cfg,
		API:       client,
		DbService: dbService,
		Metrics:   collector,
	}, nil
}

// NewStreamClient builds a WebSocket client from the stream settings,
// authenticated with the REST client's current token
func (cs *Services) NewStreamClient() *stream.Client {
	cfg := cs.Config
	return stream.NewClient(stream.Options{
		URL:               cfg.API.WSURL,
		Token:             cs.API.Token(),
		UserAgent:         cfg.API.UserAgent,
		HandshakeTimeout:  cfg.API.Timeout,
		ReadTimeout:       cfg.Stream.ReadTimeout,
		PingInterval:      cfg.Stream.PingInterval,
		Reconnect:         cfg.Stream.Reconnect,
		ReconnectDelay:    cfg.Retry.BaseDelay,
		MaxReconnectDelay: cfg.Retry.BaseDelay * 60,
	}, cs.Logger, cs.Metrics)
}

// RetryPolicy converts the retry settings into an api.RetryPolicy that
// gives up on client errors
func (cs *Services) RetryPolicy() api.RetryPolicy {
	policy := api.DefaultRetryPolicy()
	policy.MaxAttempts = cs.Config.Retry.MaxAttempts
	policy.BaseDelay = cs.Config.Retry.BaseDelay
	policy.ShouldRetry = api.IsRetryable
	return policy
}

func (cs *Services) Close() {
	if cs.DbService != nil {
		cs.DbService.Close()
	}
}

func isIgnorableSyncError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "sync /dev/stderr: inappropriate ioctl for device") ||
		strings.Contains(msg, "sync /dev/stdout: inappropriate ioctl for device")
}
