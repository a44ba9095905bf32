package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"memecoin-client-go/internal/models"
)

func (c *Client) GetPortfolio(ctx context.Context) (*Response[[]models.PortfolioItem], error) {
	return call[[]models.PortfolioItem](ctx, c, request{
		method: http.MethodGet,
		route:  "/portfolio",
		path:   "/portfolio",
	})
}

func (c *Client) AddToPortfolio(ctx context.Context, item models.NewPortfolioItem) (*Response[models.PortfolioItem], error) {
	return call[models.PortfolioItem](ctx, c, request{
		method: http.MethodPost,
		route:  "/portfolio",
		path:   "/portfolio",
		body:   item,
	})
}

func (c *Client) UpdatePortfolioItem(ctx context.Context, itemId int64, update models.PortfolioItemUpdate) (*Response[models.PortfolioItem], error) {
	return call[models.PortfolioItem](ctx, c, request{
		method: http.MethodPut,
		route:  "/portfolio/{id}",
		path:   fmt.Sprintf("/portfolio/%d", itemId),
		body:   update,
	})
}

func (c *Client) RemoveFromPortfolio(ctx context.Context, itemId int64) (*Response[json.RawMessage], error) {
	return call[json.RawMessage](ctx, c, request{
		method: http.MethodDelete,
		route:  "/portfolio/{id}",
		path:   fmt.Sprintf("/portfolio/%d", itemId),
	})
}
