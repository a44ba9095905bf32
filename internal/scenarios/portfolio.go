package scenarios

import (
	"context"
	"fmt"
	"io"

	"memecoin-client-go/internal/common"
	"memecoin-client-go/internal/models"

	"github.com/shopspring/decimal"
)

// Portfolio adds a holding of coin 1 and then revises its amount and
// average price
func Portfolio(ctx context.Context, s *common.Services, w io.Writer) error {
	if _, err := login(ctx, s); err != nil {
		return err
	}

	portfolio, err := s.API.GetPortfolio(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Current portfolio items: %d\n", len(portfolio.Data))

	added, err := s.API.AddToPortfolio(ctx, models.NewPortfolioItem{
		CoinId:   1,
		Amount:   decimal.NewFromInt(1000),
		AvgPrice: decimal.RequireFromString("0.08"),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Added to portfolio: %d\n", added.Data.Id)

	_, err = s.API.UpdatePortfolioItem(ctx, added.Data.Id, models.PortfolioItemUpdate{
		Amount:   dec("1500"),
		AvgPrice: dec("0.075"),
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "Portfolio item updated")
	return nil
}
