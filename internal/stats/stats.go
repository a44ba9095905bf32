package stats

import (
	"errors"
	"math"
	"sort"

	"memecoin-client-go/internal/models"

	"github.com/shopspring/decimal"
)

var ErrNoData = errors.New("no price data")

var hundred = decimal.NewFromInt(100)

// PriceStats summarizes a price series. Change is the percentage move from
// the earliest to the latest point; it is zero when the first price is zero.
type PriceStats struct {
	Count   int
	Average decimal.Decimal
	Max     decimal.Decimal
	Min     decimal.Decimal
	StdDev  decimal.Decimal
	Change  decimal.Decimal
	First   models.PricePoint
	Last    models.PricePoint
}

// Summarize computes PriceStats over points. The input slice is not modified.
func Summarize(points []models.PricePoint) (PriceStats, error) {
	if len(points) == 0 {
		return PriceStats{}, ErrNoData
	}

	sorted := make([]models.PricePoint, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	s := PriceStats{
		Count: len(sorted),
		Max:   sorted[0].Price,
		Min:   sorted[0].Price,
		First: sorted[0],
		Last:  sorted[len(sorted)-1],
	}

	sum := decimal.Zero
	for _, p := range sorted {
		sum = sum.Add(p.Price)
		if p.Price.GreaterThan(s.Max) {
			s.Max = p.Price
		}
		if p.Price.LessThan(s.Min) {
			s.Min = p.Price
		}
	}
	n := decimal.NewFromInt(int64(s.Count))
	s.Average = sum.Div(n)

	if s.Count > 1 {
		squares := decimal.Zero
		for _, p := range sorted {
			d := p.Price.Sub(s.Average)
			squares = squares.Add(d.Mul(d))
		}
		variance := squares.Div(decimal.NewFromInt(int64(s.Count - 1)))
		s.StdDev = decimal.NewFromFloat(math.Sqrt(variance.InexactFloat64()))
	}

	if !s.First.Price.IsZero() {
		s.Change = s.Last.Price.Sub(s.First.Price).Div(s.First.Price).Mul(hundred)
	}

	return s, nil
}
