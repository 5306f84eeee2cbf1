package model

import "time"

// AssetGrowthPoint is one day's snapshot of a single asset.
// AccumulatedReturn is the running realized P&L minus fees and is independent of
// the current position size. Profit = MarketTotal - InvestedTotal + AccumulatedReturn.
type AssetGrowthPoint struct {
	Date              time.Time `json:"date"`
	Units             float64   `json:"units"`
	InvestedTotal     float64   `json:"investedTotal"`
	MarketTotal       float64   `json:"marketTotal"`
	AccumulatedReturn float64   `json:"accumulatedReturn"`
	Profit            float64   `json:"profit"`
}

// AssetGrowth is the dated value series of one symbol.
type AssetGrowth struct {
	Symbol string             `json:"symbol"`
	Points []AssetGrowthPoint `json:"points"`
}

// PortfolioGrowthPoint is one trading day's snapshot of a whole account.
type PortfolioGrowthPoint struct {
	Date              time.Time `json:"date"`
	BreakEvenValue    float64   `json:"breakEvenValue"`
	MarketTotalValue  float64   `json:"marketTotalValue"`
	TotalBalanceValue float64   `json:"totalBalanceValue"`
}

// PortfolioGrowthMaterialized is a stored PortfolioGrowthPoint for an account.
type PortfolioGrowthMaterialized struct {
	AccountID    string
	Point        PortfolioGrowthPoint
	CalculatedAt time.Time
}

// ChangeWindow is the performance delta over one named lookback period.
type ChangeWindow struct {
	Value        float64 `json:"value"`
	ValuePercent float64 `json:"valuePercent"`
}

// ChangeWindows maps a window name to its delta. A nil entry means no data point
// exists at or before the lookback boundary and encodes as JSON null.
type ChangeWindows map[string]*ChangeWindow

// Change window names, ordered from shortest to longest.
const (
	Window1Day   = "1_day"
	Window1Week  = "1_week"
	Window2Week  = "2_week"
	Window3Week  = "3_week"
	Window1Month = "1_month"
	Window3Month = "3_month"
	Window6Month = "6_month"
	Window1Year  = "1_year"
	WindowTotal  = "total"
)

// WindowNames lists every change window in display order.
var WindowNames = []string{
	Window1Day, Window1Week, Window2Week, Window3Week,
	Window1Month, Window3Month, Window6Month, Window1Year, WindowTotal,
}
