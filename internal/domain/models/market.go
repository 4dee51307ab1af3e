package models

import "time"

// MarketSnapshot holds raw market inputs for trend analysis. Optional fields
// follow the same nil-means-unknown convention as CompanyFinancials.
type MarketSnapshot struct {
	Symbol             string   `json:"symbol,omitempty"`
	CurrentPrice       *float64 `json:"current_price,omitempty"`
	PriceChange        *float64 `json:"price_change,omitempty"`
	PriceChangePercent *float64 `json:"price_change_percent,omitempty"`
	Volume             *float64 `json:"volume,omitempty"`
	VolumeChange       *float64 `json:"volume_change,omitempty"`
	MovingAverage20    *float64 `json:"moving_average_20,omitempty"`
	MovingAverage50    *float64 `json:"moving_average_50,omitempty"`
	RSI                *float64 `json:"rsi,omitempty"`
	MACD               *float64 `json:"macd,omitempty"`
	BollingerUpper     *float64 `json:"bollinger_upper,omitempty"`
	BollingerLower     *float64 `json:"bollinger_lower,omitempty"`
	FearGreedIndex     *float64 `json:"fear_greed_index,omitempty"`
	VIX                *float64 `json:"vix,omitempty"`
	InterestRate       *float64 `json:"interest_rate,omitempty"`
	InflationRate      *float64 `json:"inflation_rate,omitempty"`
	GDPGrowth          *float64 `json:"gdp_growth,omitempty"`
	UnemploymentRate   *float64 `json:"unemployment_rate,omitempty"`
	SectorPerformance  *float64 `json:"sector_performance,omitempty"`
	IndustryTrend      *float64 `json:"industry_trend,omitempty"`

	Extensions map[string]float64 `json:"extensions,omitempty"`
}

// NewsItem is one headline attached to a trend analysis request.
type NewsItem struct {
	Headline string `json:"headline"`
	Content  string `json:"content"`
}

// Quote is a single tick from the live market feed.
type Quote struct {
	Symbol    string
	Timestamp int64 // unix seconds
	Price     float64
	Volume    float64
}

// SnapshotAt tags a snapshot with the time the feed last updated it.
type SnapshotAt struct {
	Snapshot  MarketSnapshot
	UpdatedAt time.Time
}
