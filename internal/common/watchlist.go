package common

import (
	"fmt"
	"os"

	"memecoin-client-go/internal/stream"

	"gopkg.in/yaml.v2"
)

// WatchEntry is one coin to follow on the stream. An empty CoinId subscribes
// to the channel without a coin filter.
type WatchEntry struct {
	CoinId   string   `yaml:"coin_id"`
	Symbol   string   `yaml:"symbol"`
	Channels []string `yaml:"channels"`
}

type Watchlist struct {
	Coins []WatchEntry `yaml:"coins"`
}

var knownChannels = map[string]bool{
	stream.ChannelPriceUpdates:     true,
	stream.ChannelWhaleMovements:   true,
	stream.ChannelPortfolioUpdates: true,
}

// DefaultWatchlist follows coin 1 prices and whale movements plus the
// portfolio channel
func DefaultWatchlist() Watchlist {
	return Watchlist{Coins: []WatchEntry{
		{CoinId: "1", Channels: []string{stream.ChannelPriceUpdates, stream.ChannelWhaleMovements}},
		{Channels: []string{stream.ChannelPortfolioUpdates}},
	}}
}

func LoadWatchlist(path string) (Watchlist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Watchlist{}, fmt.Errorf("unable to read %s: %w", path, err)
	}

	var list Watchlist
	if err := yaml.Unmarshal(data, &list); err != nil {
		return Watchlist{}, fmt.Errorf("unable to parse %s: %v", path, err)
	}

	for i, entry := range list.Coins {
		if len(entry.Channels) == 0 {
			return Watchlist{}, fmt.Errorf("watchlist entry at index %d has no channels", i)
		}
		for _, ch := range entry.Channels {
			if !knownChannels[ch] {
				return Watchlist{}, fmt.Errorf("watchlist entry at index %d has unknown channel %q", i, ch)
			}
		}
	}

	return list, nil
}

// Subscribe sends one subscription per entry and channel
func (w Watchlist) Subscribe(client *stream.Client) error {
	for _, entry := range w.Coins {
		for _, ch := range entry.Channels {
			if err := client.Subscribe(ch, entry.CoinId); err != nil {
				return fmt.Errorf("unable to subscribe to %s for coin %q: %w", ch, entry.CoinId, err)
			}
		}
	}
	return nil
}
