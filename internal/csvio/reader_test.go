package csvio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appealworks/giftmatch/internal/common"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const contactHeader = "urn,first,last,age,addr_line,addr_suburb,addr_postcode,addr_state\n"
const transactionHeader = "urn,first,last,age,addr_line,addr_suburb,addr_postcode,addr_state,amount\n"

func TestReadContacts(t *testing.T) {
	path := writeFile(t, "contacts.csv", contactHeader+
		"1,Janie,Welch,44,12 Rose St,Fitzroy,3065,VIC\n"+
		"2,Sam,Reed,,4 Hill Rd,Carlton,3053,VIC\n")

	contacts, warnings, err := ReadContacts(path)
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	assert.Empty(t, warnings)

	assert.Equal(t, int64(1), contacts[0].URN)
	assert.Equal(t, "Janie", contacts[0].First)
	assert.Equal(t, 44, contacts[0].Age)
	assert.Equal(t, int64(3065), contacts[0].Postcode)
	// Empty age coerces to zero rather than failing.
	assert.Zero(t, contacts[1].Age)
}

func TestReadContacts_MissingColumn(t *testing.T) {
	path := writeFile(t, "contacts.csv",
		"urn,first,last,age,addr_line,addr_suburb,addr_state\n"+
			"1,Janie,Welch,44,12 Rose St,Fitzroy,VIC\n")

	_, _, err := ReadContacts(path)
	require.Error(t, err)

	var schemaErr *common.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "addr_postcode", schemaErr.Column)
	assert.Equal(t, "contacts.csv", schemaErr.File)
}

func TestReadContacts_CoercionFailure(t *testing.T) {
	tests := []struct {
		name       string
		row        string
		wantColumn string
		wantRow    int
	}{
		{name: "bad age", row: "1,Janie,Welch,old,12 Rose St,Fitzroy,3065,VIC", wantColumn: "age", wantRow: 1},
		{name: "bad urn", row: "one,Janie,Welch,44,12 Rose St,Fitzroy,3065,VIC", wantColumn: "urn", wantRow: 1},
		{name: "empty urn", row: ",Janie,Welch,44,12 Rose St,Fitzroy,3065,VIC", wantColumn: "urn", wantRow: 1},
		{name: "bad postcode", row: "1,Janie,Welch,44,12 Rose St,Fitzroy,ZZZ,VIC", wantColumn: "addr_postcode", wantRow: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "contacts.csv", contactHeader+tt.row+"\n")

			_, _, err := ReadContacts(path)
			require.Error(t, err)

			var coercionErr *common.TypeCoercionError
			require.ErrorAs(t, err, &coercionErr)
			assert.Equal(t, tt.wantColumn, coercionErr.Column)
			assert.Equal(t, tt.wantRow, coercionErr.Row)
		})
	}
}

func TestReadContacts_DuplicateURNCollapses(t *testing.T) {
	path := writeFile(t, "contacts.csv", contactHeader+
		"1,Janie,Welch,44,12 Rose St,Fitzroy,3065,VIC\n"+
		"1,Janie,Welch,44,12 Rose St,Fitzroy,3065,VIC\n"+
		"2,Sam,Reed,31,4 Hill Rd,Carlton,3053,VIC\n")

	contacts, warnings, err := ReadContacts(path)
	require.NoError(t, err)

	// First occurrence wins; the duplicate surfaces as a warning only.
	require.Len(t, contacts, 2)
	assert.Equal(t, int64(1), contacts[0].URN)
	require.Len(t, warnings, 1)
	assert.Contains(t, string(warnings[0]), "duplicate contact identifier 1")
}

func TestReadTransactions(t *testing.T) {
	path := writeFile(t, "transactions.csv", transactionHeader+
		"1,Janie,Welch,44,12 Rose St,Fitzroy,3065,VIC,52.50\n"+
		",J,Welch,,12 Rose St,Fitzroy,3065,VIC,10\n"+
		"xyz,Sam,Reed,31,4 Hill Rd,Carlton,3053,VIC,20\n"+
		"4,Ada,Okafor,29,9 Bay Ave,Kew,3101,VIC,\n")

	txns, err := ReadTransactions(path)
	require.NoError(t, err)
	require.Len(t, txns, 4)

	// Parseable claimed identifier.
	require.NotNil(t, txns[0].URN)
	assert.Equal(t, int64(1), *txns[0].URN)
	assert.True(t, txns[0].HasAmount)
	assert.True(t, txns[0].Amount.Equal(decimal.RequireFromString("52.50")))

	// Absent and unparseable identifiers both stay nil instead of
	// failing the load.
	assert.Nil(t, txns[1].URN)
	assert.Nil(t, txns[2].URN)

	// Missing amount: zero value, flagged absent.
	assert.False(t, txns[3].HasAmount)
	assert.True(t, txns[3].Amount.IsZero())

	// Rows are 1-based over data rows.
	assert.Equal(t, 1, txns[0].Row)
	assert.Equal(t, 4, txns[3].Row)
}

func TestReadTransactions_BadAmount(t *testing.T) {
	path := writeFile(t, "transactions.csv", transactionHeader+
		"1,Janie,Welch,44,12 Rose St,Fitzroy,3065,VIC,lots\n")

	_, err := ReadTransactions(path)
	require.Error(t, err)

	var coercionErr *common.TypeCoercionError
	require.ErrorAs(t, err, &coercionErr)
	assert.Equal(t, "amount", coercionErr.Column)
	assert.Equal(t, 1, coercionErr.Row)
	assert.Equal(t, "transactions.csv", coercionErr.File)
}

func TestReadTransactions_MissingAmountColumn(t *testing.T) {
	path := writeFile(t, "transactions.csv", contactHeader+
		"1,Janie,Welch,44,12 Rose St,Fitzroy,3065,VIC\n")

	_, err := ReadTransactions(path)
	require.Error(t, err)

	var schemaErr *common.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "amount", schemaErr.Column)
}

func TestReadContacts_EmptyFile(t *testing.T) {
	path := writeFile(t, "contacts.csv", "")

	_, _, err := ReadContacts(path)
	require.Error(t, err)

	var schemaErr *common.SchemaError
	assert.ErrorAs(t, err, &schemaErr)
}

func TestReadContacts_FileNotFound(t *testing.T) {
	_, _, err := ReadContacts(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
