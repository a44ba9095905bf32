package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// Service is the local SQLite journal of coins, price history and stream events
type Service struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewService(ctx context.Context, logger *zap.Logger, dbPath string) (*Service, error) {
	logger.Info("Opening SQLite database", zap.String("file", dbPath))
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_synchronous=NORMAL&_cache_size=1000")
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %v", err)
	}

	// Set connection timeouts and limits
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(30 * time.Second)

	// Test connection with timeout
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to ping database: %v", err)
	}

	service := &Service{db: db, logger: logger}
	if err := service.initSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to initialize schema: %v", err)
	}

	logger.Info("Database service initialized successfully")
	return service, nil
}

func (s *Service) Close() {
	if err := s.db.Close(); err != nil {
		s.logger.Warn("Failed to close database", zap.Error(err))
	}
}

func (s *Service) initSchema(ctx context.Context) error {
	schema := `
	-- Coins seen through the API
	CREATE TABLE IF NOT EXISTS coins (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		symbol TEXT NOT NULL,
		network TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		price TEXT NOT NULL DEFAULT '0',
		market_cap TEXT NOT NULL DEFAULT '0',
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_coins_symbol ON coins(symbol);

	-- Price history samples, one per coin and timestamp
	CREATE TABLE IF NOT EXISTS price_points (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		coin_id INTEGER NOT NULL,
		ts TIMESTAMP NOT NULL,
		price TEXT NOT NULL,
		volume TEXT NOT NULL DEFAULT '0',
		market_cap TEXT NOT NULL DEFAULT '0',
		UNIQUE(coin_id, ts)
	);

	CREATE INDEX IF NOT EXISTS idx_price_points_coin_ts ON price_points(coin_id, ts);

	-- Raw WebSocket events
	CREATE TABLE IF NOT EXISTS stream_events (
		id TEXT PRIMARY KEY,
		type TEXT NOT NULL,
		coin_id TEXT NOT NULL DEFAULT '',
		payload TEXT NOT NULL DEFAULT '',
		received_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_stream_events_type ON stream_events(type);
	CREATE INDEX IF NOT EXISTS idx_stream_events_received_at ON stream_events(received_at);
	`

	_, err := s.db.ExecContext(ctx, schema)
	return err
}
