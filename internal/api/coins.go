package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"memecoin-client-go/internal/models"
)

// GetCoins returns a page of coins
func (c *Client) GetCoins(ctx context.Context, query models.CoinQuery) (*Response[[]models.Coin], error) {
	return call[[]models.Coin](ctx, c, request{
		method: http.MethodGet,
		route:  "/coins",
		path:   "/coins",
		query:  query.Values(),
	})
}

func (c *Client) GetCoinById(ctx context.Context, coinId int64) (*Response[models.Coin], error) {
	return call[models.Coin](ctx, c, request{
		method: http.MethodGet,
		route:  "/coins/{id}",
		path:   fmt.Sprintf("/coins/%d", coinId),
	})
}

// GetCoinByAddress looks a coin up by its contract address
func (c *Client) GetCoinByAddress(ctx context.Context, address string) (*Response[models.Coin], error) {
	if address == "" {
		return nil, fmt.Errorf("address is required")
	}
	return call[models.Coin](ctx, c, request{
		method: http.MethodGet,
		route:  "/coins/address/{address}",
		path:   "/coins/address/" + url.PathEscape(address),
	})
}

func (c *Client) CreateCoin(ctx context.Context, coin models.NewCoin) (*Response[models.Coin], error) {
	return call[models.Coin](ctx, c, request{
		method: http.MethodPost,
		route:  "/coins",
		path:   "/coins",
		body:   coin,
	})
}

// SearchCoins matches coins by name or symbol
func (c *Client) SearchCoins(ctx context.Context, q string) (*Response[[]models.Coin], error) {
	return call[[]models.Coin](ctx, c, request{
		method: http.MethodGet,
		route:  "/coins/search",
		path:   "/coins/search",
		query:  url.Values{"q": []string{q}},
	})
}

func (c *Client) GetPriceHistory(ctx context.Context, coinId int64, query models.PriceHistoryQuery) (*Response[[]models.PricePoint], error) {
	return call[[]models.PricePoint](ctx, c, request{
		method: http.MethodGet,
		route:  "/coins/{id}/price-history",
		path:   fmt.Sprintf("/coins/%d/price-history", coinId),
		query:  query.Values(),
	})
}

func (c *Client) GetRiskAssessment(ctx context.Context, coinId int64) (*Response[models.RiskAssessment], error) {
	return call[models.RiskAssessment](ctx, c, request{
		method: http.MethodGet,
		route:  "/risk-assessment/{id}",
		path:   fmt.Sprintf("/risk-assessment/%d", coinId),
	})
}
