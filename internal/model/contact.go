// Package model defines the domain types for campaign reconciliation:
// contacts, transactions, match provenance, reconciled records and KPIs.
package model

// Contact is one mailed recipient from the campaign list. Contacts are
// immutable once loaded; the URN is the authoritative unique key.
type Contact struct {
	URN      int64
	First    string
	Last     string
	Age      int
	AddrLine string
	Suburb   string
	Postcode int64
	State    string

	// Comparison keys derived by the normalizer. Empty until
	// normalization has run.
	NameKey string
	AddrKey string
}
