package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"memecoin-client-go/internal/stream"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Event is a journaled WebSocket message
type Event struct {
	Id         string
	Type       string
	CoinId     string
	Payload    json.RawMessage
	ReceivedAt time.Time
}

// RecordEvent journals msg. The coin id is taken from data.coinId when the
// payload carries one.
func (s *Service) RecordEvent(ctx context.Context, msg stream.Message) (*Event, error) {
	if msg.Type == "" {
		return nil, fmt.Errorf("message type is required")
	}

	event := &Event{
		Id:         uuid.New().String(),
		Type:       msg.Type,
		CoinId:     coinIdOf(msg.Data),
		Payload:    msg.Data,
		ReceivedAt: time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx, queryInsertEvent,
		event.Id, event.Type, event.CoinId, string(event.Payload), event.ReceivedAt)
	if err != nil {
		s.logger.Error("Failed to record event", zap.String("type", msg.Type), zap.Error(err))
		return nil, fmt.Errorf("unable to insert event: %v", err)
	}

	s.logger.Debug("Event recorded",
		zap.String("id", event.Id),
		zap.String("type", event.Type),
		zap.String("coin_id", event.CoinId))
	return event, nil
}

func coinIdOf(data json.RawMessage) string {
	if len(data) == 0 {
		return ""
	}
	var v struct {
		CoinId json.Number `json:"coinId"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return ""
	}
	return v.CoinId.String()
}

// GetRecentEvents returns up to limit events, newest first. An empty
// msgType matches every type.
func (s *Service) GetRecentEvents(ctx context.Context, msgType string, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, queryGetRecentEvents, msgType, msgType, limit)
	if err != nil {
		return nil, fmt.Errorf("unable to query events: %v", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var payload string
		if err := rows.Scan(&e.Id, &e.Type, &e.CoinId, &payload, &e.ReceivedAt); err != nil {
			return nil, fmt.Errorf("unable to scan event: %v", err)
		}
		if payload != "" {
			e.Payload = json.RawMessage(payload)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %v", err)
	}

	return events, nil
}

func (s *Service) CountEventsByType(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, queryCountEventsByType)
	if err != nil {
		return nil, fmt.Errorf("unable to count events: %v", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var msgType string
		var n int
		if err := rows.Scan(&msgType, &n); err != nil {
			return nil, fmt.Errorf("unable to scan event count: %v", err)
		}
		counts[msgType] = n
	}
	return counts, rows.Err()
}
