package database

const (
	queryUpsertCoin = `
		INSERT INTO coins (id, name, symbol, network, address, price, market_cap, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			symbol = excluded.symbol,
			network = excluded.network,
			address = excluded.address,
			price = excluded.price,
			market_cap = excluded.market_cap,
			updated_at = excluded.updated_at`

	queryGetCoin = `
		SELECT id, name, symbol, network, address, price, market_cap, updated_at
		FROM coins
		WHERE id = ?`

	queryInsertPricePoint = `
		INSERT OR IGNORE INTO price_points (coin_id, ts, price, volume, market_cap)
		VALUES (?, ?, ?, ?, ?)`

	queryGetPriceHistory = `
		SELECT ts, price, volume, market_cap
		FROM price_points
		WHERE coin_id = ? AND ts >= ?
		ORDER BY ts ASC`

	queryInsertEvent = `
		INSERT INTO stream_events (id, type, coin_id, payload, received_at)
		VALUES (?, ?, ?, ?, ?)`

	queryGetRecentEvents = `
		SELECT id, type, coin_id, payload, received_at
		FROM stream_events
		WHERE (? = '' OR type = ?)
		ORDER BY received_at DESC, rowid DESC
		LIMIT ?`

	queryCountEventsByType = `
		SELECT type, COUNT(*)
		FROM stream_events
		GROUP BY type`
)
