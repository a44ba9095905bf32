package models

import (
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// The analyzer API exchanges prices and amounts as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Coin represents a tracked meme coin
type Coin struct {
	Id               int64           `json:"id"`
	Name             string          `json:"name"`
	Symbol           string          `json:"symbol"`
	Network          string          `json:"network"`
	ContractAddress  string          `json:"contractAddress,omitempty"`
	Price            decimal.Decimal `json:"price"`
	MarketCap        decimal.Decimal `json:"marketCap"`
	Volume24h        decimal.Decimal `json:"volume24h"`
	PriceChange24h   decimal.Decimal `json:"priceChange24h"`
	ContractVerified bool            `json:"contractVerified"`
	CreatedAt        time.Time       `json:"createdAt,omitempty"`
	UpdatedAt        time.Time       `json:"updatedAt,omitempty"`
}

// NewCoin is the payload for registering a coin. The server validates
// required fields; empty values are omitted.
type NewCoin struct {
	Name            string `json:"name,omitempty"`
	Symbol          string `json:"symbol,omitempty"`
	Network         string `json:"network,omitempty"`
	ContractAddress string `json:"contractAddress,omitempty"`
	Decimals        int    `json:"decimals,omitempty"`
	Description     string `json:"description,omitempty"`
}

// CoinQuery holds the list filters and pagination for GET /coins
type CoinQuery struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
	Network   string
}

const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Values encodes the non-zero fields as query parameters
func (q CoinQuery) Values() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.SortBy != "" {
		v.Set("sortBy", q.SortBy)
	}
	if q.SortOrder != "" {
		v.Set("sortOrder", q.SortOrder)
	}
	if q.Network != "" {
		v.Set("network", q.Network)
	}
	return v
}

// PricePoint is a single sample of a coin's price history
type PricePoint struct {
	Timestamp time.Time       `json:"timestamp"`
	Price     decimal.Decimal `json:"price"`
	Volume    decimal.Decimal `json:"volume"`
	MarketCap decimal.Decimal `json:"marketCap"`
}

// PriceHistoryQuery selects the window and sampling of a price history
type PriceHistoryQuery struct {
	Timeframe string
	Interval  string
}

func (q PriceHistoryQuery) Values() url.Values {
	v := url.Values{}
	if q.Timeframe != "" {
		v.Set("timeframe", q.Timeframe)
	}
	if q.Interval != "" {
		v.Set("interval", q.Interval)
	}
	return v
}

// RiskAssessment is the analyzer's scoring of a coin
type RiskAssessment struct {
	CoinId          int64                 `json:"coinId"`
	OverallScore    float64               `json:"overallScore"`
	RiskLevel       string                `json:"riskLevel"`
	Factors         map[string]RiskFactor `json:"factors"`
	Recommendations []string              `json:"recommendations,omitempty"`
	AssessedAt      time.Time             `json:"assessedAt,omitempty"`
}

type RiskFactor struct {
	Score       float64 `json:"score"`
	Weight      float64 `json:"weight,omitempty"`
	Description string  `json:"description,omitempty"`
}

// Pagination accompanies list responses
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}
