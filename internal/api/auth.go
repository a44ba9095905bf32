package api

import (
	"context"
	"fmt"
	"net/http"

	"memecoin-client-go/internal/models"

	"go.uber.org/zap"
)

// Register creates an account and keeps the returned token
func (c *Client) Register(ctx context.Context, user models.NewUser) (*Response[models.AuthResult], error) {
	if user.Email == "" || user.Password == "" {
		return nil, fmt.Errorf("email and password are required")
	}

	resp, err := call[models.AuthResult](ctx, c, request{
		method: http.MethodPost,
		route:  "/auth/register",
		path:   "/auth/register",
		body:   user,
	})
	if err != nil {
		return nil, err
	}
	c.keepToken(resp)
	return resp, nil
}

// Login authenticates and keeps the returned JWT for later calls
func (c *Client) Login(ctx context.Context, email, password string) (*Response[models.AuthResult], error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required")
	}

	resp, err := call[models.AuthResult](ctx, c, request{
		method: http.MethodPost,
		route:  "/auth/login",
		path:   "/auth/login",
		body: map[string]string{
			"email":    email,
			"password": password,
		},
	})
	if err != nil {
		return nil, err
	}
	c.keepToken(resp)
	return resp, nil
}

func (c *Client) keepToken(resp *Response[models.AuthResult]) {
	if !resp.Success || resp.Data.Token == "" {
		return
	}
	c.SetToken(resp.Data.Token)
	c.logger.Info("Authenticated",
		zap.Int64("user_id", resp.Data.User.Id),
		zap.String("email", resp.Data.User.Email))
}

func (c *Client) GetProfile(ctx context.Context) (*Response[models.User], error) {
	return call[models.User](ctx, c, request{
		method: http.MethodGet,
		route:  "/auth/profile",
		path:   "/auth/profile",
	})
}

func (c *Client) UpdatePreferences(ctx context.Context, prefs models.Preferences) (*Response[models.User], error) {
	return call[models.User](ctx, c, request{
		method: http.MethodPut,
		route:  "/auth/preferences",
		path:   "/auth/preferences",
		body:   prefs,
	})
}
