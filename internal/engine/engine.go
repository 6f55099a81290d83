// Package engine implements the campaign reconciliation pipeline:
// normalization, exact identifier matching, an optional fuzzy fallback
// scored by combined edit distance, reconciliation into one record per
// contact, and KPI aggregation.
package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/appealworks/giftmatch/internal/common"
	"github.com/appealworks/giftmatch/internal/config"
	"github.com/appealworks/giftmatch/internal/model"
)

// Engine runs the reconciliation stages in order. Each stage is a pure
// function of its inputs and the configuration; the engine only wires
// the hand-offs.
type Engine struct {
	cfg      config.Pipeline
	progress io.Writer
}

// Result is everything a run produces for downstream consumers: the
// reconciled table, the per-transaction audit trail, the KPI snapshot,
// the leftovers for manual reconciliation, and accumulated warnings.
type Result struct {
	Reconciled  []model.ReconciledRecord
	Matches     []model.MatchResult
	Metrics     model.CampaignMetrics
	Unmatched   []model.Transaction
	Suggestions []model.Suggestion
	Warnings    []common.Warning
}

// New creates an engine with the given pipeline configuration.
func New(cfg config.Pipeline) *Engine {
	return &Engine{cfg: cfg, progress: io.Discard}
}

// SetProgress directs fuzzy-stage progress output to w. Progress is
// discarded by default so library callers stay quiet.
func (e *Engine) SetProgress(w io.Writer) {
	if w != nil {
		e.progress = w
	}
}

// Run executes the full pipeline. Inputs are not mutated; identical
// inputs always produce an identical result.
func (e *Engine) Run(ctx context.Context, contacts []model.Contact, txns []model.Transaction) (*Result, error) {
	slog.Info("Starting reconciliation",
		"contacts", len(contacts),
		"transactions", len(txns),
		"fuzzy_enabled", e.cfg.EnableFuzzy)

	contacts = NormalizeContacts(contacts)
	txns = NormalizeTransactions(txns)

	exact := MatchExact(contacts, txns)
	slog.Info("Exact matching complete",
		"matched", len(txns)-len(exact.Unmatched),
		"unmatched", len(exact.Unmatched))

	var fuzzy FuzzyResult
	if e.cfg.EnableFuzzy && len(exact.Unmatched) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var err error
		fuzzy, err = MatchFuzzy(ctx, contacts, exact.Unmatched, e.cfg.FuzzyThreshold, e.cfg.Workers, e.progress)
		if err != nil {
			return nil, fmt.Errorf("fuzzy matching failed: %w", err)
		}
		slog.Info("Fuzzy matching complete",
			"accepted", len(fuzzy.Accepted),
			"rejected", len(fuzzy.Rejected),
			"threshold", e.cfg.FuzzyThreshold)
	} else {
		fuzzy.Rejected = exact.Unmatched
	}

	records := Reconcile(contacts, exact, fuzzy)
	matches := BuildMatchResults(txns, fuzzy)

	metrics, err := ComputeMetrics(records, len(contacts), len(txns), e.cfg.CostPerContact)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Reconciled: records,
		Matches:    matches,
		Metrics:    metrics,
		Unmatched:  fuzzy.Rejected,
	}
	if e.cfg.Suggestions {
		res.Suggestions = fuzzy.Suggestions
	}
	if n := len(res.Unmatched); n > 0 {
		res.Warnings = append(res.Warnings, common.Warningf(
			"%d transactions could not be matched to a contact", n))
	}
	return res, nil
}
