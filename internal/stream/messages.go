package stream

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Server-to-client message types
const (
	TypePriceUpdate     = "price_update"
	TypeWhaleMovement   = "whale_movement"
	TypePortfolioUpdate = "portfolio_update"
	TypeAlertTriggered  = "alert_triggered"
)

// Client-to-server message types
const (
	TypeAuth      = "auth"
	TypeSubscribe = "subscribe"
)

const (
	ChannelPriceUpdates     = "price_updates"
	ChannelWhaleMovements   = "whale_movements"
	ChannelPortfolioUpdates = "portfolio_updates"
)

// Message is the {type, data} envelope of every server frame. Raw keeps
// the frame as received.
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
	Raw  []byte          `json:"-"`
}

type authMessage struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

type subscribeMessage struct {
	Type    string `json:"type"`
	Channel string `json:"channel"`
	CoinId  string `json:"coinId,omitempty"`
}

type PriceUpdate struct {
	CoinId    json.Number     `json:"coinId"`
	Symbol    string          `json:"symbol,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Change24h decimal.Decimal `json:"change24h"`
	Volume24h decimal.Decimal `json:"volume24h"`
	Timestamp Timestamp       `json:"timestamp"`
}

type WhaleMovement struct {
	CoinId    json.Number     `json:"coinId"`
	Amount    decimal.Decimal `json:"amount"`
	ValueUsd  decimal.Decimal `json:"valueUsd"`
	From      string          `json:"from"`
	To        string          `json:"to"`
	TxHash    string          `json:"txHash"`
	Timestamp Timestamp       `json:"timestamp"`
}

type PortfolioUpdate struct {
	TotalValue decimal.Decimal `json:"totalValue"`
	Change24h  decimal.Decimal `json:"change24h"`
	Timestamp  Timestamp       `json:"timestamp"`
}

type AlertTriggered struct {
	AlertId   json.Number `json:"alertId"`
	CoinId    json.Number `json:"coinId"`
	AlertType string      `json:"alertType"`
	Message   string      `json:"message"`
	Timestamp Timestamp   `json:"timestamp"`
}

// Timestamp accepts either an RFC 3339 string or a Unix epoch number.
// Numbers of 1e12 and above are read as milliseconds, smaller ones as seconds.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) || bytes.Equal(data, []byte(`""`)) {
		t.Time = time.Time{}
		return nil
	}
	if data[0] == '"' {
		return t.Time.UnmarshalJSON(data)
	}

	n, err := json.Number(data).Float64()
	if err != nil {
		return fmt.Errorf("invalid timestamp %s: %w", data, err)
	}
	if math.Abs(n) >= 1e12 {
		t.Time = time.UnixMilli(int64(n)).UTC()
	} else {
		sec, frac := math.Modf(n)
		t.Time = time.Unix(int64(sec), int64(frac*1e9)).UTC()
	}
	return nil
}

// Decode unmarshals the data field of msg into T
func Decode[T any](msg Message) (T, error) {
	var v T
	if len(msg.Data) == 0 {
		return v, fmt.Errorf("%s message has no data", msg.Type)
	}
	if err := json.Unmarshal(msg.Data, &v); err != nil {
		return v, fmt.Errorf("unable to decode %s data: %w", msg.Type, err)
	}
	return v, nil
}
