package scenarios

import (
	"context"
	"errors"
	"fmt"
	"io"

	"memecoin-client-go/internal/api"
	"memecoin-client-go/internal/common"
	"memecoin-client-go/internal/models"
)

// ErrorHandling shows how rejected credentials, validation failures and
// transient failures surface through the client
func ErrorHandling(ctx context.Context, s *common.Services, w io.Writer) error {
	_, err := s.API.Login(ctx, "invalid@email.com", "wrongpassword")
	switch {
	case err == nil:
		fmt.Fprintln(w, "Login with invalid credentials unexpectedly succeeded")
	case api.IsUnauthorized(err):
		fmt.Fprintln(w, "Authentication failed - invalid credentials")
	default:
		fmt.Fprintf(w, "Login error: %v\n", err)
	}

	// symbol only: the server requires the other fields
	_, err = s.API.CreateCoin(ctx, models.NewCoin{Symbol: "TEST"})
	var httpErr *api.HTTPError
	switch {
	case err == nil:
		fmt.Fprintln(w, "Incomplete coin was unexpectedly accepted")
	case api.IsValidation(err) && errors.As(err, &httpErr):
		fmt.Fprintf(w, "Validation error: %s\n", httpErr.Details())
	default:
		fmt.Fprintf(w, "Coin creation error: %v\n", err)
	}

	coins, err := api.Retry(ctx, s.RetryPolicy(), s.Logger,
		func(ctx context.Context) (*api.Response[[]models.Coin], error) {
			return s.API.GetCoins(ctx, models.CoinQuery{Limit: 5})
		})
	if err != nil {
		return fmt.Errorf("final error: %w", err)
	}
	fmt.Fprintf(w, "Successfully retrieved %d coins with retry logic\n", len(coins.Data))
	return nil
}
