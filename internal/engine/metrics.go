package engine

import (
	"github.com/shopspring/decimal"

	"github.com/appealworks/giftmatch/internal/common"
	"github.com/appealworks/giftmatch/internal/model"
)

// ComputeMetrics derives the campaign KPI snapshot from the reconciled
// set. It is a pure function of its inputs; zero contacts or zero
// transactions make the rates undefined and fail the run instead of
// silently producing NaN.
func ComputeMetrics(records []model.ReconciledRecord, totalContacts, totalTransactions int, costPerContact decimal.Decimal) (model.CampaignMetrics, error) {
	if totalContacts == 0 {
		return model.CampaignMetrics{}, &common.DegenerateInputError{
			Reason: "no contacts loaded, response rate is undefined",
		}
	}
	if totalTransactions == 0 {
		return model.CampaignMetrics{}, &common.DegenerateInputError{
			Reason: "no transactions loaded, gift metrics are undefined",
		}
	}

	numGifts := 0
	total := decimal.Zero
	for _, r := range records {
		if r.HasGift() {
			numGifts++
			total = total.Add(r.Amount())
		}
	}

	avg := decimal.Zero
	if numGifts > 0 {
		avg = total.Div(decimal.NewFromInt(int64(numGifts)))
	}
	cost := costPerContact.Mul(decimal.NewFromInt(int64(totalContacts)))

	return model.CampaignMetrics{
		NumGifts:     numGifts,
		ResponseRate: float64(numGifts) / float64(totalContacts),
		AvgGift:      avg,
		TotalIncome:  total,
		Cost:         cost,
		NetIncome:    total.Sub(cost),
	}, nil
}
