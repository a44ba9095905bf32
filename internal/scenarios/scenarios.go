package scenarios

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"memecoin-client-go/internal/api"
	"memecoin-client-go/internal/common"
	"memecoin-client-go/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Scenario is one narrated walk through the API. Output for the user goes to
// w; diagnostics go to the logger.
type Scenario func(ctx context.Context, s *common.Services, w io.Writer) error

type entry struct {
	name  string
	title string
	run   Scenario
}

var registry = []entry{
	{"basic", "Basic Example", Basic},
	{"portfolio", "Portfolio Example", Portfolio},
	{"alerts", "Alert Example", Alerts},
	{"stream", "WebSocket Example", Stream},
	{"analysis", "Advanced Analysis Example", Analysis},
	{"errors", "Error Handling Example", ErrorHandling},
	{"data", "Data Analysis Example", DataAnalysis},
}

// All returns the scenario names in run order
func All() []string {
	names := make([]string, 0, len(registry))
	for _, e := range registry {
		names = append(names, e.name)
	}
	return names
}

func lookup(name string) (entry, bool) {
	for _, e := range registry {
		if e.name == name {
			return e, true
		}
	}
	return entry{}, false
}

// Run executes the named scenarios in order. A failing scenario is logged
// and the next one still runs; the failures are returned together.
func Run(ctx context.Context, s *common.Services, names []string, w io.Writer) error {
	selected := make([]entry, 0, len(names))
	for _, name := range names {
		e, ok := lookup(strings.TrimSpace(name))
		if !ok {
			return fmt.Errorf("unknown scenario %q (available: %s)", name, strings.Join(All(), ", "))
		}
		selected = append(selected, e)
	}

	fmt.Fprintln(w, "Starting Meme Coin Analyzer API Examples")
	fmt.Fprintln(w)

	var errs error
	for _, e := range selected {
		if ctx.Err() != nil {
			errs = multierr.Append(errs, ctx.Err())
			break
		}

		common.PrintHeader(w, e.title, common.DefaultWidth)
		start := time.Now()
		if err := e.run(ctx, s, w); err != nil {
			s.Logger.Error("Scenario failed", zap.String("scenario", e.name), zap.Error(err))
			fmt.Fprintf(w, "Error in %s: %v\n", strings.ToLower(e.title), err)
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", e.name, err))
		} else {
			s.Logger.Info("Scenario completed",
				zap.String("scenario", e.name),
				zap.Duration("elapsed", time.Since(start)))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "Examples completed")
	return errs
}

func login(ctx context.Context, s *common.Services) (*api.Response[models.AuthResult], error) {
	resp, err := s.API.Login(ctx, s.Config.Auth.Email, s.Config.Auth.Password)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	return resp, nil
}

// journalCoins stores coins in the local journal when one is configured
func journalCoins(ctx context.Context, s *common.Services, coins []models.Coin) {
	if s.DbService == nil {
		return
	}
	stored := 0
	for _, coin := range coins {
		if err := s.DbService.UpsertCoin(ctx, coin); err != nil {
			s.Logger.Warn("Failed to journal coin", zap.Int64("coin_id", coin.Id), zap.Error(err))
			continue
		}
		stored++
	}
	s.Metrics.JournalWrites("coins", stored)
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(6)
}
