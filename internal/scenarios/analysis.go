package scenarios

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"memecoin-client-go/internal/common"
	"memecoin-client-go/internal/models"
	"memecoin-client-go/internal/stats"
)

// Analysis looks up dogecoin and prints its risk factors and a week of
// hourly price statistics
func Analysis(ctx context.Context, s *common.Services, w io.Writer) error {
	if _, err := login(ctx, s); err != nil {
		return err
	}

	results, err := s.API.SearchCoins(ctx, "dogecoin")
	if err != nil {
		return err
	}
	if len(results.Data) == 0 {
		fmt.Fprintln(w, "No coins found")
		return nil
	}

	coin := results.Data[0]
	fmt.Fprintf(w, "Analyzing: %s (%s)\n", coin.Name, coin.Symbol)

	details, err := s.API.GetCoinById(ctx, coin.Id)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Contract verified: %t\n", details.Data.ContractVerified)

	risk, err := s.API.GetRiskAssessment(ctx, coin.Id)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Risk score: %g\n", risk.Data.OverallScore)
	fmt.Fprintln(w, "Risk factors:")
	names := make([]string, 0, len(risk.Data.Factors))
	for name := range risk.Data.Factors {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  - %s: %g/100\n", name, risk.Data.Factors[name].Score)
	}

	history, err := s.API.GetPriceHistory(ctx, coin.Id, models.PriceHistoryQuery{Timeframe: "7d", Interval: "1h"})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Price history: %d data points\n", len(history.Data))

	summary, err := stats.Summarize(history.Data)
	if errors.Is(err, stats.ErrNoData) {
		fmt.Fprintln(w, "No price data to analyze")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Price stats - Avg: %s, Max: %s, Min: %s\n",
		money(summary.Average), money(summary.Max), money(summary.Min))
	return nil
}
