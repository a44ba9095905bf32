package scenarios

import (
	"context"
	"fmt"
	"io"

	"memecoin-client-go/internal/common"
	"memecoin-client-go/internal/models"
	"memecoin-client-go/internal/stats"

	"go.uber.org/zap"
)

// DataAnalysis pulls a month of daily prices for the largest coin, journals
// them and prints descriptive statistics
func DataAnalysis(ctx context.Context, s *common.Services, w io.Writer) error {
	if _, err := login(ctx, s); err != nil {
		return err
	}

	coins, err := s.API.GetCoins(ctx, models.CoinQuery{
		Limit:     20,
		SortBy:    "marketCap",
		SortOrder: models.SortDesc,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Loaded %d coins\n", len(coins.Data))
	if len(coins.Data) == 0 {
		return nil
	}

	top := coins.Data[0]
	history, err := s.API.GetPriceHistory(ctx, top.Id, models.PriceHistoryQuery{Timeframe: "30d", Interval: "1d"})
	if err != nil {
		return err
	}

	if s.DbService != nil {
		journalCoins(ctx, s, []models.Coin{top})
		inserted, err := s.DbService.StorePriceHistory(ctx, top.Id, history.Data)
		if err != nil {
			s.Logger.Warn("Failed to journal price history", zap.Int64("coin_id", top.Id), zap.Error(err))
		} else {
			s.Metrics.JournalWrites("price_points", inserted)
			fmt.Fprintf(w, "Stored %d new price points\n", inserted)
		}
	}

	summary, err := stats.Summarize(history.Data)
	if err != nil {
		return fmt.Errorf("price analysis for %s: %w", top.Name, err)
	}

	fmt.Fprintf(w, "\nPrice analysis for %s:\n", top.Name)
	fmt.Fprintf(w, "Average price: %s\n", money(summary.Average))
	fmt.Fprintf(w, "Price volatility (std): %s\n", money(summary.StdDev))
	fmt.Fprintf(w, "Max price: %s\n", money(summary.Max))
	fmt.Fprintf(w, "Min price: %s\n", money(summary.Min))
	fmt.Fprintf(w, "Change over period: %s%%\n", summary.Change.StringFixed(2))
	return nil
}
