package database

import (
	"context"
	"fmt"
	"time"

	"memecoin-client-go/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// StorePriceHistory inserts points for a coin in one transaction. Points
// already stored for the same timestamp are skipped; the number of new rows
// is returned.
func (s *Service) StorePriceHistory(ctx context.Context, coinId int64, points []models.PricePoint) (int, error) {
	if len(points) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, queryInsertPricePoint)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %v", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, p := range points {
		result, err := stmt.ExecContext(ctx, coinId, p.Timestamp.UTC(),
			p.Price.String(), p.Volume.String(), p.MarketCap.String())
		if err != nil {
			return 0, fmt.Errorf("failed to insert price point: %v", err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to check rows affected: %v", err)
		}
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %v", err)
	}

	s.logger.Info("Price history stored",
		zap.Int64("coin_id", coinId),
		zap.Int("received", len(points)),
		zap.Int("inserted", inserted))

	return inserted, nil
}

// GetPriceHistory returns the stored points of a coin at or after since,
// oldest first
func (s *Service) GetPriceHistory(ctx context.Context, coinId int64, since time.Time) ([]models.PricePoint, error) {
	rows, err := s.db.QueryContext(ctx, queryGetPriceHistory, coinId, since.UTC())
	if err != nil {
		s.logger.Error("Failed to query price history", zap.Int64("coin_id", coinId), zap.Error(err))
		return nil, fmt.Errorf("unable to query price history: %v", err)
	}
	defer rows.Close()

	var points []models.PricePoint
	for rows.Next() {
		var p models.PricePoint
		var priceStr, volumeStr, marketCapStr string
		if err := rows.Scan(&p.Timestamp, &priceStr, &volumeStr, &marketCapStr); err != nil {
			return nil, fmt.Errorf("unable to scan price point: %v", err)
		}

		if p.Price, err = decimal.NewFromString(priceStr); err != nil {
			return nil, fmt.Errorf("failed to parse stored price '%s': %v", priceStr, err)
		}
		if p.Volume, err = decimal.NewFromString(volumeStr); err != nil {
			return nil, fmt.Errorf("failed to parse stored volume '%s': %v", volumeStr, err)
		}
		if p.MarketCap, err = decimal.NewFromString(marketCapStr); err != nil {
			return nil, fmt.Errorf("failed to parse stored market cap '%s': %v", marketCapStr, err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating price points: %v", err)
	}

	return points, nil
}
