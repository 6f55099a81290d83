package model

import "github.com/shopspring/decimal"

// Transaction is one received payment from the bank export. The URN is
// only a claim: it may be absent, unparseable, or point at nobody on
// the mailing list.
type Transaction struct {
	Row      int    // 1-based data row in the source file
	URN      *int64 // claimed identifier; nil when absent or unparseable
	First    string
	Last     string
	Age      int
	AddrLine string
	Suburb   string
	Postcode int64
	State    string

	// Amount is zero when the cell was empty; HasAmount distinguishes
	// an explicit $0 gift from a missing value.
	Amount    decimal.Decimal
	HasAmount bool

	NameKey string
	AddrKey string
}
