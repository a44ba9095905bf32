package scenarios

import (
	"context"
	"fmt"
	"io"

	"memecoin-client-go/internal/common"
	"memecoin-client-go/internal/models"
)

// Basic logs in and lists the ten largest coins by market cap
func Basic(ctx context.Context, s *common.Services, w io.Writer) error {
	auth, err := login(ctx, s)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Login successful: %t\n", auth.Success)

	coins, err := s.API.GetCoins(ctx, models.CoinQuery{
		Page:      1,
		Limit:     10,
		SortBy:    "marketCap",
		SortOrder: models.SortDesc,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Found %d coins\n", len(coins.Data))
	for _, coin := range coins.Data {
		fmt.Fprintf(w, "- %s (%s): %s\n", common.Truncate(coin.Name, 40), coin.Symbol, coin.Network)
	}

	journalCoins(ctx, s, coins.Data)
	return nil
}
