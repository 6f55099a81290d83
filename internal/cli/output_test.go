package cli

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appealworks/giftmatch/internal/common"
	"github.com/appealworks/giftmatch/internal/engine"
	"github.com/appealworks/giftmatch/internal/model"
)

func sampleResult() *engine.Result {
	claimed := int64(42)
	return &engine.Result{
		Metrics: model.CampaignMetrics{
			NumGifts:     25,
			ResponseRate: 0.0926,
			AvgGift:      decimal.RequireFromString("52.80"),
			TotalIncome:  decimal.NewFromInt(1320),
			Cost:         decimal.NewFromInt(810),
			NetIncome:    decimal.NewFromInt(510),
		},
		Unmatched: []model.Transaction{
			{Row: 7, URN: &claimed, First: "Pat", Last: "Low", Amount: decimal.NewFromInt(15), HasAmount: true},
			{Row: 9, First: "Kim", Last: "Day"},
		},
		Suggestions: []model.Suggestion{
			{OriginalURN: &claimed, CandidateURN: 3, Distance: 6.5, Accepted: false},
		},
		Warnings: []common.Warning{"2 transactions could not be matched to a contact"},
	}
}

func TestRenderReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderReport(&buf, sampleResult()))
	out := buf.String()

	// KPI summary columns and values.
	assert.Contains(t, out, "num_gifts")
	assert.Contains(t, out, "net_income")
	assert.Contains(t, out, "25")
	assert.Contains(t, out, "0.0926")
	assert.Contains(t, out, "52.80")
	assert.Contains(t, out, "810.00")
	assert.Contains(t, out, "510.00")

	// Unmatched table: claimed URN shown, absent one dashed, absent
	// amount dashed.
	assert.Contains(t, out, "Unmatched transactions")
	assert.Contains(t, out, "42")
	assert.Contains(t, out, "Pat Low")
	assert.Contains(t, out, "Kim Day")

	// Suggestions table.
	assert.Contains(t, out, "Fuzzy candidate suggestions")
	assert.Contains(t, out, "6.5")

	// Warnings trail the report.
	assert.Contains(t, out, "could not be matched")
}

func TestRenderReport_NoOptionalSections(t *testing.T) {
	res := &engine.Result{
		Metrics: model.CampaignMetrics{
			NumGifts:     1,
			ResponseRate: 1,
			AvgGift:      decimal.NewFromInt(10),
			TotalIncome:  decimal.NewFromInt(10),
			Cost:         decimal.NewFromInt(3),
			NetIncome:    decimal.NewFromInt(7),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, RenderReport(&buf, res))
	out := buf.String()

	assert.Contains(t, out, "Campaign summary")
	assert.NotContains(t, out, "Unmatched transactions")
	assert.NotContains(t, out, "Fuzzy candidate suggestions")
	assert.NotContains(t, out, "warning:")
}
