package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/agnivade/levenshtein"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/appealworks/giftmatch/internal/model"
)

// FuzzyLink resolves one previously-unmatched transaction to a contact.
type FuzzyLink struct {
	Transaction model.Transaction
	ContactURN  int64
	Distance    float64
}

// FuzzyResult partitions the fuzzy stage's input into accepted links
// and permanently unmatched transactions, and records every best
// candidate for the optional suggestions report.
type FuzzyResult struct {
	Accepted    []FuzzyLink
	Rejected    []model.Transaction // input order preserved
	Suggestions []model.Suggestion
}

type fuzzyOutcome struct {
	candidate int64
	distance  float64
	found     bool
}

// combinedDistance averages the name-key and address-key edit
// distances, unweighted.
func combinedDistance(t model.Transaction, c model.Contact) float64 {
	name := levenshtein.ComputeDistance(t.NameKey, c.NameKey)
	addr := levenshtein.ComputeDistance(t.AddrKey, c.AddrKey)
	return float64(name+addr) / 2
}

// bestCandidate scans every contact for the minimum combined distance.
// Ties resolve to the lowest contact URN, so reordering the contact
// file cannot change the outcome. A transaction with no usable keys
// gets no candidate at all.
func bestCandidate(t model.Transaction, contacts []model.Contact) fuzzyOutcome {
	best := fuzzyOutcome{distance: math.Inf(1)}
	if t.NameKey == "" && t.AddrKey == "" {
		return best
	}
	for _, c := range contacts {
		d := combinedDistance(t, c)
		if d < best.distance || (d == best.distance && best.found && c.URN < best.candidate) {
			best = fuzzyOutcome{candidate: c.URN, distance: d, found: true}
		}
	}
	return best
}

// MatchFuzzy scores every unmatched transaction against every contact
// and accepts the best candidate when its combined distance is
// strictly below the threshold. Scoring is O(U×C) and runs in parallel
// across transactions; outcomes land in an index-addressed slice so
// the reduction is deterministic regardless of goroutine scheduling.
// Contacts and already-matched transactions are never touched.
func MatchFuzzy(ctx context.Context, contacts []model.Contact, unmatched []model.Transaction, threshold float64, workers int, progress io.Writer) (FuzzyResult, error) {
	var res FuzzyResult
	if len(unmatched) == 0 {
		return res, nil
	}

	outcomes := make([]fuzzyOutcome, len(unmatched))
	bar := newScoringBar(len(unmatched), progress)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range unmatched {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			outcomes[i] = bestCandidate(unmatched[i], contacts)
			_ = bar.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return FuzzyResult{}, fmt.Errorf("fuzzy scoring aborted: %w", err)
	}

	for i, t := range unmatched {
		o := outcomes[i]
		if !o.found {
			res.Rejected = append(res.Rejected, t)
			continue
		}
		accepted := o.distance < threshold
		res.Suggestions = append(res.Suggestions, model.Suggestion{
			OriginalURN:  t.URN,
			CandidateURN: o.candidate,
			Distance:     o.distance,
			Accepted:     accepted,
		})
		if accepted {
			res.Accepted = append(res.Accepted, FuzzyLink{
				Transaction: t,
				ContactURN:  o.candidate,
				Distance:    o.distance,
			})
			slog.Debug("Accepted fuzzy match",
				"transaction_row", t.Row,
				"contact_urn", o.candidate,
				"distance", o.distance)
		} else {
			res.Rejected = append(res.Rejected, t)
		}
	}
	return res, nil
}

func newScoringBar(total int, w io.Writer) *progressbar.ProgressBar {
	if w == nil {
		w = io.Discard
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Scoring unmatched transactions..."),
		progressbar.OptionOnCompletion(func() {
			_, _ = fmt.Fprintln(w)
		}),
	)
}
