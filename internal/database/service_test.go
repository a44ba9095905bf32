package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"memecoin-client-go/internal/models"
	"memecoin-client-go/internal/stream"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func setupTestDB(t *testing.T) (*Service, func()) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)

	service := &Service{db: db, logger: zap.NewNop()}
	if err := service.initSchema(context.Background()); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	cleanup := func() {
		db.Close()
	}

	return service, cleanup
}

func TestNewService_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	service, err := NewService(context.Background(), zap.NewNop(), path)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	defer service.Close()

	// schema creation is idempotent
	if err := service.initSchema(context.Background()); err != nil {
		t.Errorf("Re-running schema failed: %v", err)
	}
}

func TestUpsertCoin(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	coin := models.Coin{
		Id:              1,
		Name:            "Dogecoin",
		Symbol:          "DOGE",
		Network:         "ethereum",
		ContractAddress: "0xabc",
		Price:           decimal.RequireFromString("0.0825"),
		MarketCap:       decimal.RequireFromString("11500000000"),
	}
	if err := service.UpsertCoin(ctx, coin); err != nil {
		t.Fatalf("UpsertCoin failed: %v", err)
	}

	coin.Price = decimal.RequireFromString("0.09")
	if err := service.UpsertCoin(ctx, coin); err != nil {
		t.Fatalf("Second UpsertCoin failed: %v", err)
	}

	stored, err := service.GetCoin(ctx, 1)
	if err != nil {
		t.Fatalf("GetCoin failed: %v", err)
	}
	if stored == nil {
		t.Fatal("Expected stored coin")
	}
	if stored.Symbol != "DOGE" || stored.ContractAddress != "0xabc" {
		t.Errorf("Unexpected coin %+v", stored)
	}
	if !stored.Price.Equal(decimal.RequireFromString("0.09")) {
		t.Errorf("Expected updated price 0.09, got %s", stored.Price)
	}
	if stored.UpdatedAt.IsZero() {
		t.Error("Expected updated_at to be set")
	}
}

func TestGetCoin_NotFound(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	coin, err := service.GetCoin(context.Background(), 42)
	if err != nil {
		t.Fatalf("GetCoin failed: %v", err)
	}
	if coin != nil {
		t.Errorf("Expected nil coin, got %+v", coin)
	}
}

func TestUpsertCoin_RequiresId(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	if err := service.UpsertCoin(context.Background(), models.Coin{Name: "x"}); err == nil {
		t.Error("Expected error for coin without id")
	}
}

func TestStorePriceHistory_SkipsDuplicates(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	points := []models.PricePoint{
		{Timestamp: base, Price: decimal.RequireFromString("0.08"), Volume: decimal.NewFromInt(1000)},
		{Timestamp: base.Add(time.Hour), Price: decimal.RequireFromString("0.081")},
		{Timestamp: base.Add(2 * time.Hour), Price: decimal.RequireFromString("0.079")},
	}

	inserted, err := service.StorePriceHistory(ctx, 1, points)
	if err != nil {
		t.Fatalf("StorePriceHistory failed: %v", err)
	}
	if inserted != 3 {
		t.Errorf("Expected 3 inserted, got %d", inserted)
	}

	// overlapping window: one new point
	more := append(points[1:], models.PricePoint{Timestamp: base.Add(3 * time.Hour), Price: decimal.RequireFromString("0.085")})
	inserted, err = service.StorePriceHistory(ctx, 1, more)
	if err != nil {
		t.Fatalf("Second StorePriceHistory failed: %v", err)
	}
	if inserted != 1 {
		t.Errorf("Expected 1 inserted, got %d", inserted)
	}

	// same timestamps for another coin are distinct rows
	inserted, err = service.StorePriceHistory(ctx, 2, points[:1])
	if err != nil {
		t.Fatalf("StorePriceHistory for coin 2 failed: %v", err)
	}
	if inserted != 1 {
		t.Errorf("Expected 1 inserted for coin 2, got %d", inserted)
	}

	history, err := service.GetPriceHistory(ctx, 1, time.Time{})
	if err != nil {
		t.Fatalf("GetPriceHistory failed: %v", err)
	}
	if len(history) != 4 {
		t.Fatalf("Expected 4 points, got %d", len(history))
	}
	if !history[0].Timestamp.Equal(base) || !history[3].Timestamp.Equal(base.Add(3*time.Hour)) {
		t.Errorf("Expected oldest first, got %v .. %v", history[0].Timestamp, history[3].Timestamp)
	}
	if !history[0].Volume.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("Expected volume 1000, got %s", history[0].Volume)
	}
}

func TestGetPriceHistory_Since(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var points []models.PricePoint
	for i := 0; i < 5; i++ {
		points = append(points, models.PricePoint{
			Timestamp: base.Add(time.Duration(i) * time.Hour),
			Price:     decimal.NewFromInt(int64(i + 1)),
		})
	}
	if _, err := service.StorePriceHistory(ctx, 7, points); err != nil {
		t.Fatalf("StorePriceHistory failed: %v", err)
	}

	history, err := service.GetPriceHistory(ctx, 7, base.Add(3*time.Hour))
	if err != nil {
		t.Fatalf("GetPriceHistory failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("Expected 2 points, got %d", len(history))
	}
	if !history[0].Price.Equal(decimal.NewFromInt(4)) {
		t.Errorf("Expected first price 4, got %s", history[0].Price)
	}
}

func TestStorePriceHistory_Empty(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	inserted, err := service.StorePriceHistory(context.Background(), 1, nil)
	if err != nil || inserted != 0 {
		t.Errorf("Expected no-op, got %d, %v", inserted, err)
	}
}

func TestRecordEvent(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	messages := []stream.Message{
		{Type: stream.TypePriceUpdate, Data: json.RawMessage(`{"coinId":1,"price":0.08}`)},
		{Type: stream.TypePriceUpdate, Data: json.RawMessage(`{"coinId":"2","price":0.09}`)},
		{Type: stream.TypeWhaleMovement, Data: json.RawMessage(`{"coinId":1,"amount":5000000}`)},
		{Type: stream.TypePortfolioUpdate, Data: json.RawMessage(`{"totalValue":120.5}`)},
	}
	for _, msg := range messages {
		event, err := service.RecordEvent(ctx, msg)
		if err != nil {
			t.Fatalf("RecordEvent failed: %v", err)
		}
		if event.Id == "" {
			t.Error("Expected event id")
		}
	}

	events, err := service.GetRecentEvents(ctx, stream.TypePriceUpdate, 10)
	if err != nil {
		t.Fatalf("GetRecentEvents failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("Expected 2 price events, got %d", len(events))
	}
	if events[0].CoinId != "2" || events[1].CoinId != "1" {
		t.Errorf("Expected newest first with coin ids 2, 1; got %s, %s", events[0].CoinId, events[1].CoinId)
	}

	all, err := service.GetRecentEvents(ctx, "", 3)
	if err != nil {
		t.Fatalf("GetRecentEvents failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected limit of 3, got %d", len(all))
	}
	if all[0].Type != stream.TypePortfolioUpdate || all[0].CoinId != "" {
		t.Errorf("Unexpected newest event %+v", all[0])
	}

	counts, err := service.CountEventsByType(ctx)
	if err != nil {
		t.Fatalf("CountEventsByType failed: %v", err)
	}
	if counts[stream.TypePriceUpdate] != 2 || counts[stream.TypeWhaleMovement] != 1 || counts[stream.TypePortfolioUpdate] != 1 {
		t.Errorf("Unexpected counts %v", counts)
	}
}

func TestRecordEvent_RequiresType(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	if _, err := service.RecordEvent(context.Background(), stream.Message{}); err == nil {
		t.Error("Expected error for message without type")
	}
}
