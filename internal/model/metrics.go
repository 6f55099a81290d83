package model

import "github.com/shopspring/decimal"

// CampaignMetrics is the KPI snapshot computed once from the final
// reconciled set.
type CampaignMetrics struct {
	NumGifts     int
	ResponseRate float64
	AvgGift      decimal.Decimal
	TotalIncome  decimal.Decimal
	Cost         decimal.Decimal
	NetIncome    decimal.Decimal
}
