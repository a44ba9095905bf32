package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"memecoin-client-go/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// UpsertCoin stores the latest view of a coin, replacing any previous row
func (s *Service) UpsertCoin(ctx context.Context, coin models.Coin) error {
	if coin.Id <= 0 {
		return fmt.Errorf("coin id is required")
	}

	updatedAt := coin.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, queryUpsertCoin,
		coin.Id, coin.Name, coin.Symbol, coin.Network, coin.ContractAddress,
		coin.Price.String(), coin.MarketCap.String(), updatedAt.UTC())
	if err != nil {
		s.logger.Error("Failed to upsert coin", zap.Int64("coin_id", coin.Id), zap.Error(err))
		return fmt.Errorf("unable to upsert coin: %v", err)
	}

	s.logger.Debug("Coin stored", zap.Int64("coin_id", coin.Id), zap.String("symbol", coin.Symbol))
	return nil
}

// GetCoin returns the stored coin, or nil when it has never been stored
func (s *Service) GetCoin(ctx context.Context, coinId int64) (*models.Coin, error) {
	var coin models.Coin
	var priceStr, marketCapStr string

	err := s.db.QueryRowContext(ctx, queryGetCoin, coinId).Scan(
		&coin.Id, &coin.Name, &coin.Symbol, &coin.Network, &coin.ContractAddress,
		&priceStr, &marketCapStr, &coin.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to query coin: %v", err)
	}

	coin.Price, err = decimal.NewFromString(priceStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stored price '%s': %v", priceStr, err)
	}
	coin.MarketCap, err = decimal.NewFromString(marketCapStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stored market cap '%s': %v", marketCapStr, err)
	}

	return &coin, nil
}
