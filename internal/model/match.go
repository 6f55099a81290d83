package model

// MatchType records how a transaction was linked to a contact.
type MatchType int

// Match provenance tags, in order of confidence.
const (
	MatchNone MatchType = iota
	MatchExact
	MatchFuzzy
)

// String returns the display form used in reports.
func (m MatchType) String() string {
	switch m {
	case MatchExact:
		return "Exact"
	case MatchFuzzy:
		return "Fuzzy"
	default:
		return "No Match"
	}
}

// MatchResult links one transaction to at most one contact. Every
// transaction fed into a run yields exactly one MatchResult.
type MatchResult struct {
	TransactionRow int
	ResolvedURN    int64  // zero for unmatched transactions
	ClaimedURN     *int64 // audit trail: set when it differs from ResolvedURN
	Type           MatchType
	Distance       float64 // combined edit distance, fuzzy matches only
}

// Suggestion is one best-candidate row for the optional fuzzy
// suggestions report. Rejected candidates are included so a human can
// review near-misses.
type Suggestion struct {
	OriginalURN  *int64
	CandidateURN int64
	Distance     float64
	Accepted     bool
}
