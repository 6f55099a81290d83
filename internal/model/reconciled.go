package model

import "github.com/shopspring/decimal"

// GiftSide carries the transaction-side fields of a reconciled record,
// kept as an explicit nested struct rather than suffix-renamed flat
// columns so contact and transaction attributes never collide.
type GiftSide struct {
	Transaction Transaction
	Via         MatchType // how the link was established
	ClaimedURN  *int64    // original claimed identifier when it differed
	Distance    float64   // combined edit distance, fuzzy links only
}

// ReconciledRecord is one row of the reconciled table: a contact plus
// the matched gift when one exists. Every mailed contact appears at
// least once, gift or not.
type ReconciledRecord struct {
	Contact Contact
	Gift    *GiftSide
}

// MatchType derives the record's provenance tag. A fuzzy link beats
// the default Exact derivation, and a missing amount means "No Match"
// even when the identifier lined up.
func (r ReconciledRecord) MatchType() MatchType {
	switch {
	case r.Gift == nil:
		return MatchNone
	case r.Gift.Via == MatchFuzzy:
		return MatchFuzzy
	case r.Gift.Transaction.HasAmount:
		return MatchExact
	default:
		return MatchNone
	}
}

// HasGift reports whether the record carries a present gift amount.
// An explicit $0 gift counts; an absent amount does not.
func (r ReconciledRecord) HasGift() bool {
	return r.Gift != nil && r.Gift.Transaction.HasAmount
}

// Amount returns the gift amount, zero when no gift is attached.
func (r ReconciledRecord) Amount() decimal.Decimal {
	if r.Gift == nil {
		return decimal.Zero
	}
	return r.Gift.Transaction.Amount
}
