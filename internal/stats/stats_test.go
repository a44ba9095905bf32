package stats

import (
	"errors"
	"testing"
	"time"

	"memecoin-client-go/internal/models"

	"github.com/shopspring/decimal"
)

func point(offset time.Duration, price string) models.PricePoint {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return models.PricePoint{
		Timestamp: base.Add(offset),
		Price:     decimal.RequireFromString(price),
	}
}

func TestSummarize_Empty(t *testing.T) {
	_, err := Summarize(nil)
	if !errors.Is(err, ErrNoData) {
		t.Errorf("Expected ErrNoData, got %v", err)
	}
}

func TestSummarize_SinglePoint(t *testing.T) {
	s, err := Summarize([]models.PricePoint{point(0, "0.08")})
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	if s.Count != 1 {
		t.Errorf("Expected count 1, got %d", s.Count)
	}
	if !s.Average.Equal(decimal.RequireFromString("0.08")) {
		t.Errorf("Expected average 0.08, got %s", s.Average)
	}
	if !s.StdDev.IsZero() {
		t.Errorf("Expected zero std dev, got %s", s.StdDev)
	}
	if !s.Change.IsZero() {
		t.Errorf("Expected zero change, got %s", s.Change)
	}
}

func TestSummarize_UnorderedSeries(t *testing.T) {
	// 2, 4, 4, 4, 5, 5, 7, 9 has mean 5 and sample std dev sqrt(32/7)
	points := []models.PricePoint{
		point(3*time.Hour, "4"),
		point(0, "2"),
		point(7*time.Hour, "9"),
		point(1*time.Hour, "4"),
		point(2*time.Hour, "4"),
		point(5*time.Hour, "5"),
		point(4*time.Hour, "5"),
		point(6*time.Hour, "7"),
	}

	s, err := Summarize(points)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	if s.Count != 8 {
		t.Errorf("Expected count 8, got %d", s.Count)
	}
	if !s.Average.Equal(decimal.NewFromInt(5)) {
		t.Errorf("Expected average 5, got %s", s.Average)
	}
	if !s.Max.Equal(decimal.NewFromInt(9)) || !s.Min.Equal(decimal.NewFromInt(2)) {
		t.Errorf("Expected max 9 and min 2, got %s and %s", s.Max, s.Min)
	}

	want := decimal.RequireFromString("2.138089935")
	if s.StdDev.Sub(want).Abs().GreaterThan(decimal.RequireFromString("0.000001")) {
		t.Errorf("Expected std dev ~%s, got %s", want, s.StdDev)
	}

	// first is 2, last is 9
	if !s.Change.Equal(decimal.NewFromInt(350)) {
		t.Errorf("Expected change 350%%, got %s", s.Change)
	}
	if !points[0].Price.Equal(decimal.NewFromInt(4)) {
		t.Error("Summarize must not reorder the input")
	}
}

func TestSummarize_Decline(t *testing.T) {
	s, err := Summarize([]models.PricePoint{
		point(0, "0.10"),
		point(time.Hour, "0.08"),
	})
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if !s.Change.Equal(decimal.NewFromInt(-20)) {
		t.Errorf("Expected change -20%%, got %s", s.Change)
	}
}

func TestSummarize_ZeroFirstPrice(t *testing.T) {
	s, err := Summarize([]models.PricePoint{
		point(0, "0"),
		point(time.Hour, "1"),
	})
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if !s.Change.IsZero() {
		t.Errorf("Expected zero change when first price is zero, got %s", s.Change)
	}
}
