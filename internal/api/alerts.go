package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"memecoin-client-go/internal/models"
)

func (c *Client) GetAlerts(ctx context.Context) (*Response[[]models.Alert], error) {
	return call[[]models.Alert](ctx, c, request{
		method: http.MethodGet,
		route:  "/alerts",
		path:   "/alerts",
	})
}

func (c *Client) CreateAlert(ctx context.Context, alert models.NewAlert) (*Response[models.Alert], error) {
	return call[models.Alert](ctx, c, request{
		method: http.MethodPost,
		route:  "/alerts",
		path:   "/alerts",
		body:   alert,
	})
}

func (c *Client) UpdateAlert(ctx context.Context, alertId int64, update models.AlertUpdate) (*Response[models.Alert], error) {
	return call[models.Alert](ctx, c, request{
		method: http.MethodPut,
		route:  "/alerts/{id}",
		path:   fmt.Sprintf("/alerts/%d", alertId),
		body:   update,
	})
}

func (c *Client) DeleteAlert(ctx context.Context, alertId int64) (*Response[json.RawMessage], error) {
	return call[json.RawMessage](ctx, c, request{
		method: http.MethodDelete,
		route:  "/alerts/{id}",
		path:   fmt.Sprintf("/alerts/%d", alertId),
	})
}
