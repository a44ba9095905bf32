package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	AlertPriceAbove    = "price_above"
	AlertPriceBelow    = "price_below"
	AlertVolumeSpike   = "volume_spike"
	AlertWhaleMovement = "whale_movement"
)

const (
	NotifyEmail = "email"
	NotifyPush  = "push"
)

type Alert struct {
	Id                  int64          `json:"id"`
	CoinId              int64          `json:"coinId"`
	Type                string         `json:"type"`
	Condition           AlertCondition `json:"condition"`
	NotificationMethods []string       `json:"notificationMethods"`
	IsActive            bool           `json:"isActive"`
	TriggeredAt         *time.Time     `json:"triggeredAt,omitempty"`
	CreatedAt           time.Time      `json:"createdAt,omitempty"`
}

// AlertCondition holds the threshold relevant to the alert type
type AlertCondition struct {
	TargetPrice     *decimal.Decimal `json:"targetPrice,omitempty"`
	VolumeThreshold *decimal.Decimal `json:"volumeThreshold,omitempty"`
	PercentChange   *decimal.Decimal `json:"percentChange,omitempty"`
}

type NewAlert struct {
	CoinId              int64          `json:"coinId"`
	Type                string         `json:"type"`
	Condition           AlertCondition `json:"condition"`
	NotificationMethods []string       `json:"notificationMethods"`
}

type AlertUpdate struct {
	Condition           *AlertCondition `json:"condition,omitempty"`
	NotificationMethods []string        `json:"notificationMethods,omitempty"`
	IsActive            *bool           `json:"isActive,omitempty"`
}
