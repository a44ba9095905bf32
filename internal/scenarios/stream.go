package scenarios

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"memecoin-client-go/internal/common"
	"memecoin-client-go/internal/stream"

	"go.uber.org/zap"
)

// Printer serializes writes from the receive goroutine and the caller
type Printer struct {
	mu sync.Mutex
	w  io.Writer
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) Printf(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, format, args...)
}

// Stream follows the real-time channels for the configured duration
func Stream(ctx context.Context, s *common.Services, w io.Writer) error {
	if _, err := login(ctx, s); err != nil {
		return err
	}

	out := NewPrinter(w)
	client := s.NewStreamClient()
	RegisterHandlers(client, s, out)

	connected, err := client.Connect(ctx)
	if err != nil || !connected {
		out.Printf("Failed to connect to WebSocket\n")
		if err == nil {
			err = stream.ErrNotConnected
		}
		return err
	}
	out.Printf("WebSocket connected successfully\n")

	if err := common.DefaultWatchlist().Subscribe(client); err != nil {
		client.Disconnect()
		return err
	}

	timer := time.NewTimer(s.Config.Stream.Duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	case <-client.Done():
		s.Logger.Warn("WebSocket closed before the end of the session")
	}

	client.Disconnect()
	out.Printf("WebSocket connection closed\n")
	return nil
}

// RegisterHandlers prints the four server message types to out and journals
// them when a database is configured
func RegisterHandlers(client *stream.Client, s *common.Services, out *Printer) {
	journal := func(ctx context.Context, msg stream.Message) {
		if s.DbService == nil {
			return
		}
		if _, err := s.DbService.RecordEvent(ctx, msg); err != nil {
			s.Logger.Warn("Failed to journal event", zap.String("type", msg.Type), zap.Error(err))
			return
		}
		s.Metrics.JournalWrites("stream_events", 1)
	}

	client.OnMessage(stream.TypePriceUpdate, func(ctx context.Context, msg stream.Message) {
		journal(ctx, msg)
		update, err := stream.Decode[stream.PriceUpdate](msg)
		if err != nil {
			s.Logger.Warn("Bad price update", zap.Error(err))
			return
		}
		out.Printf("Price update for coin %s: $%s\n", update.CoinId, update.Price)
	})

	client.OnMessage(stream.TypeWhaleMovement, func(ctx context.Context, msg stream.Message) {
		journal(ctx, msg)
		movement, err := stream.Decode[stream.WhaleMovement](msg)
		if err != nil {
			s.Logger.Warn("Bad whale movement", zap.Error(err))
			return
		}
		out.Printf("Whale movement detected: %s tokens\n", movement.Amount)
	})

	client.OnMessage(stream.TypePortfolioUpdate, func(ctx context.Context, msg stream.Message) {
		journal(ctx, msg)
		update, err := stream.Decode[stream.PortfolioUpdate](msg)
		if err != nil {
			s.Logger.Warn("Bad portfolio update", zap.Error(err))
			return
		}
		out.Printf("Portfolio value updated: $%s\n", update.TotalValue)
	})

	client.OnMessage(stream.TypeAlertTriggered, func(ctx context.Context, msg stream.Message) {
		journal(ctx, msg)
		alert, err := stream.Decode[stream.AlertTriggered](msg)
		if err != nil {
			s.Logger.Warn("Bad alert notification", zap.Error(err))
			return
		}
		out.Printf("Alert triggered: %s\n", alert.Message)
	})
}
