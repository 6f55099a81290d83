package engine

import (
	"github.com/appealworks/giftmatch/internal/model"
)

// Reconcile merges the exact and fuzzy outcomes into the final record
// set: one row per contact, or one per transaction when a contact
// received several. Contacts without a gift are retained with a nil
// gift side.
func Reconcile(contacts []model.Contact, exact ExactMatches, fuzzy FuzzyResult) []model.ReconciledRecord {
	fuzzyByURN := make(map[int64][]model.GiftSide, len(fuzzy.Accepted))
	for _, l := range fuzzy.Accepted {
		fuzzyByURN[l.ContactURN] = append(fuzzyByURN[l.ContactURN], model.GiftSide{
			Transaction: l.Transaction,
			Via:         model.MatchFuzzy,
			ClaimedURN:  l.Transaction.URN,
			Distance:    l.Distance,
		})
	}

	records := make([]model.ReconciledRecord, 0, len(contacts))
	for _, c := range contacts {
		var sides []model.GiftSide
		for _, t := range exact.ByContact[c.URN] {
			sides = append(sides, model.GiftSide{Transaction: t, Via: model.MatchExact})
		}
		sides = append(sides, fuzzyByURN[c.URN]...)

		if len(sides) == 0 {
			records = append(records, model.ReconciledRecord{Contact: c})
			continue
		}
		for _, s := range sides {
			side := s
			records = append(records, model.ReconciledRecord{Contact: c, Gift: &side})
		}
	}
	return records
}

// BuildMatchResults emits one provenance record per input transaction,
// in input order, for the audit trail.
func BuildMatchResults(txns []model.Transaction, fuzzy FuzzyResult) []model.MatchResult {
	fuzzyByRow := make(map[int]FuzzyLink, len(fuzzy.Accepted))
	for _, l := range fuzzy.Accepted {
		fuzzyByRow[l.Transaction.Row] = l
	}
	rejected := make(map[int]struct{}, len(fuzzy.Rejected))
	for _, t := range fuzzy.Rejected {
		rejected[t.Row] = struct{}{}
	}

	results := make([]model.MatchResult, 0, len(txns))
	for _, t := range txns {
		if l, ok := fuzzyByRow[t.Row]; ok {
			results = append(results, model.MatchResult{
				TransactionRow: t.Row,
				ResolvedURN:    l.ContactURN,
				ClaimedURN:     t.URN, // claim differed from resolution
				Type:           model.MatchFuzzy,
				Distance:       l.Distance,
			})
			continue
		}
		if _, ok := rejected[t.Row]; ok {
			results = append(results, model.MatchResult{
				TransactionRow: t.Row,
				ClaimedURN:     t.URN,
				Type:           model.MatchNone,
			})
			continue
		}
		// Exact matches keep no separate claimed identifier: the claim
		// and the resolution are the same key.
		results = append(results, model.MatchResult{
			TransactionRow: t.Row,
			ResolvedURN:    *t.URN,
			Type:           model.MatchExact,
		})
	}
	return results
}
