package engine

import (
	"strconv"
	"strings"

	"github.com/appealworks/giftmatch/internal/model"
)

// normalizeKey lowercases and collapses whitespace so keys built from
// free-text fields compare cleanly.
func normalizeKey(parts ...string) string {
	joined := strings.ToLower(strings.Join(parts, " "))
	return strings.Join(strings.Fields(joined), " ")
}

func addressKey(line, suburb string, postcode int64, state string) string {
	parts := []string{line, suburb}
	if postcode != 0 {
		parts = append(parts, strconv.FormatInt(postcode, 10))
	}
	parts = append(parts, state)
	return normalizeKey(parts...)
}

// NormalizeContacts returns copies of the contacts with comparison keys
// attached. The original display fields are left untouched.
func NormalizeContacts(contacts []model.Contact) []model.Contact {
	out := make([]model.Contact, len(contacts))
	for i, c := range contacts {
		c.NameKey = normalizeKey(c.First, c.Last)
		c.AddrKey = addressKey(c.AddrLine, c.Suburb, c.Postcode, c.State)
		out[i] = c
	}
	return out
}

// NormalizeTransactions returns copies of the transactions with
// comparison keys attached.
func NormalizeTransactions(txns []model.Transaction) []model.Transaction {
	out := make([]model.Transaction, len(txns))
	for i, t := range txns {
		t.NameKey = normalizeKey(t.First, t.Last)
		t.AddrKey = addressKey(t.AddrLine, t.Suburb, t.Postcode, t.State)
		out[i] = t
	}
	return out
}
