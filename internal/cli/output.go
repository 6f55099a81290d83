package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/appealworks/giftmatch/internal/engine"
	"github.com/appealworks/giftmatch/internal/model"
)

// RenderReport writes the full reconciliation report: the KPI summary,
// the unmatched-transactions table, the optional fuzzy suggestions
// table, and any accumulated data quality warnings.
func RenderReport(w io.Writer, res *engine.Result) error {
	if err := renderSummary(w, res.Metrics); err != nil {
		return err
	}
	if err := renderUnmatched(w, res.Unmatched); err != nil {
		return err
	}
	if len(res.Suggestions) > 0 {
		if err := renderSuggestions(w, res.Suggestions); err != nil {
			return err
		}
	}
	return renderWarnings(w, res)
}

func renderSummary(w io.Writer, m model.CampaignMetrics) error {
	if _, err := fmt.Fprintln(w, TitleStyle.Render("Campaign summary")); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "num_gifts\tresponse_rate\tavg_gift\ttotal_income\tcost\tnet_income\n")
	fmt.Fprintf(tw, "%d\t%.4f\t%s\t%s\t%s\t%s\n",
		m.NumGifts,
		m.ResponseRate,
		m.AvgGift.StringFixed(2),
		m.TotalIncome.StringFixed(2),
		m.Cost.StringFixed(2),
		m.NetIncome.StringFixed(2))
	return tw.Flush()
}

func renderUnmatched(w io.Writer, unmatched []model.Transaction) error {
	if len(unmatched) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "\n%s\n", TitleStyle.Render("Unmatched transactions")); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "row\turn\tname\tamount\n")
	for _, t := range unmatched {
		amount := "-"
		if t.HasAmount {
			amount = t.Amount.StringFixed(2)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", t.Row, formatURN(t.URN), displayName(t), amount)
	}
	return tw.Flush()
}

func renderSuggestions(w io.Writer, suggestions []model.Suggestion) error {
	if _, err := fmt.Fprintf(w, "\n%s\n", TitleStyle.Render("Fuzzy candidate suggestions")); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "original_identifier\tcandidate_identifier\tcombined_distance\taccepted\n")
	for _, s := range suggestions {
		fmt.Fprintf(tw, "%s\t%d\t%.1f\t%t\n", formatURN(s.OriginalURN), s.CandidateURN, s.Distance, s.Accepted)
	}
	return tw.Flush()
}

func renderWarnings(w io.Writer, res *engine.Result) error {
	if len(res.Warnings) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	for _, warning := range res.Warnings {
		if _, err := fmt.Fprintln(w, WarningStyle.Render("warning: "+string(warning))); err != nil {
			return err
		}
	}
	return nil
}

func formatURN(urn *int64) string {
	if urn == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *urn)
}

func displayName(t model.Transaction) string {
	name := strings.TrimSpace(t.First + " " + t.Last)
	if name == "" {
		return "-"
	}
	return name
}
