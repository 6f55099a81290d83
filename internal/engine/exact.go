package engine

import (
	"github.com/appealworks/giftmatch/internal/model"
)

// ExactMatches is the outcome of the identifier join: the matched
// transactions grouped by contact URN, and the subsequence of
// transactions whose claimed identifier resolved to nobody.
type ExactMatches struct {
	ByContact map[int64][]model.Transaction
	Unmatched []model.Transaction // input order preserved
}

// MatchExact joins transactions to contacts by claimed identifier.
// Left-outer semantics: every contact is retained whether or not a
// transaction arrived for it; a nil identifier never matches.
func MatchExact(contacts []model.Contact, txns []model.Transaction) ExactMatches {
	known := make(map[int64]struct{}, len(contacts))
	for _, c := range contacts {
		known[c.URN] = struct{}{}
	}

	out := ExactMatches{ByContact: make(map[int64][]model.Transaction)}
	for _, t := range txns {
		if t.URN != nil {
			if _, ok := known[*t.URN]; ok {
				out.ByContact[*t.URN] = append(out.ByContact[*t.URN], t)
				continue
			}
		}
		out.Unmatched = append(out.Unmatched, t)
	}
	return out
}
