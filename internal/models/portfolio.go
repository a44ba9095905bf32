package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PortfolioItem is a holding in the user's portfolio
type PortfolioItem struct {
	Id           int64           `json:"id"`
	CoinId       int64           `json:"coinId"`
	Amount       decimal.Decimal `json:"amount"`
	AvgPrice     decimal.Decimal `json:"avgPrice"`
	CurrentPrice decimal.Decimal `json:"currentPrice"`
	Value        decimal.Decimal `json:"value"`
	ProfitLoss   decimal.Decimal `json:"profitLoss"`
	Coin         *Coin           `json:"coin,omitempty"`
	CreatedAt    time.Time       `json:"createdAt,omitempty"`
	UpdatedAt    time.Time       `json:"updatedAt,omitempty"`
}

type NewPortfolioItem struct {
	CoinId   int64           `json:"coinId"`
	Amount   decimal.Decimal `json:"amount"`
	AvgPrice decimal.Decimal `json:"avgPrice"`
}

// PortfolioItemUpdate carries a partial update; nil fields are left unchanged
type PortfolioItemUpdate struct {
	Amount   *decimal.Decimal `json:"amount,omitempty"`
	AvgPrice *decimal.Decimal `json:"avgPrice,omitempty"`
}
