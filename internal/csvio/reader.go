// Package csvio loads the campaign input files into domain records,
// asserting the required schema and coercing typed columns before any
// matching runs.
package csvio

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/appealworks/giftmatch/internal/common"
	"github.com/appealworks/giftmatch/internal/model"
)

// Required columns for each input file.
var (
	contactColumns = []string{
		"urn", "first", "last", "age",
		"addr_line", "addr_suburb", "addr_postcode", "addr_state",
	}
	transactionColumns = []string{
		"urn", "first", "last", "age",
		"addr_line", "addr_suburb", "addr_postcode", "addr_state", "amount",
	}
)

// header maps normalized column names to their position.
type header map[string]int

func (h header) cell(record []string, column string) string {
	i, ok := h[column]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// load reads a whole CSV file and asserts the required columns exist.
func load(path string, required []string) (header, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			slog.Warn("Failed to close input file", "file", path, "error", cerr)
		}
	}()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows surface as coercion errors, not CSV errors
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	name := filepath.Base(path)
	if len(records) == 0 {
		return nil, nil, &common.SchemaError{File: name, Column: required[0]}
	}

	h := make(header, len(records[0]))
	for i, col := range records[0] {
		h[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, col := range required {
		if _, ok := h[col]; !ok {
			return nil, nil, &common.SchemaError{File: name, Column: col}
		}
	}
	return h, records[1:], nil
}

// parseInt coerces an integer cell. Empty cells coerce to zero;
// anything else that fails to parse is a fatal coercion error.
func parseInt(file, column string, row int, cell string) (int64, error) {
	if cell == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(cell, 10, 64)
	if err != nil {
		return 0, &common.TypeCoercionError{
			File:   file,
			Column: column,
			Row:    row,
			Err:    fmt.Errorf("cannot coerce %q to an integer", cell),
		}
	}
	return v, nil
}

// ReadContacts loads the mailing list. Contact URNs must be present
// and parseable; duplicates collapse to the first occurrence and are
// reported as data quality warnings.
func ReadContacts(path string) ([]model.Contact, []common.Warning, error) {
	h, rows, err := load(path, contactColumns)
	if err != nil {
		return nil, nil, err
	}
	name := filepath.Base(path)

	contacts := make([]model.Contact, 0, len(rows))
	seen := make(map[int64]int, len(rows)) // URN -> first row
	var warnings []common.Warning

	for i, rec := range rows {
		row := i + 1

		urnCell := h.cell(rec, "urn")
		if urnCell == "" {
			return nil, nil, &common.TypeCoercionError{
				File:   name,
				Column: "urn",
				Row:    row,
				Err:    fmt.Errorf("contact identifier is empty"),
			}
		}
		urn, err := parseInt(name, "urn", row, urnCell)
		if err != nil {
			return nil, nil, err
		}
		if first, dup := seen[urn]; dup {
			warnings = append(warnings, common.Warningf(
				"duplicate contact identifier %d at row %d collapsed to first occurrence (row %d)", urn, row, first))
			continue
		}
		seen[urn] = row

		age, err := parseInt(name, "age", row, h.cell(rec, "age"))
		if err != nil {
			return nil, nil, err
		}
		postcode, err := parseInt(name, "addr_postcode", row, h.cell(rec, "addr_postcode"))
		if err != nil {
			return nil, nil, err
		}

		contacts = append(contacts, model.Contact{
			URN:      urn,
			First:    h.cell(rec, "first"),
			Last:     h.cell(rec, "last"),
			Age:      int(age),
			AddrLine: h.cell(rec, "addr_line"),
			Suburb:   h.cell(rec, "addr_suburb"),
			Postcode: postcode,
			State:    h.cell(rec, "addr_state"),
		})
	}

	slog.Info("Loaded contacts", "file", name, "count", len(contacts), "duplicates", len(warnings))
	return contacts, warnings, nil
}

// ReadTransactions loads the received payments export. A claimed URN
// that is empty or unparseable is kept as nil so it routes to the
// fuzzy stage instead of failing the load; a missing amount becomes a
// zero value with HasAmount unset.
func ReadTransactions(path string) ([]model.Transaction, error) {
	h, rows, err := load(path, transactionColumns)
	if err != nil {
		return nil, err
	}
	name := filepath.Base(path)

	txns := make([]model.Transaction, 0, len(rows))
	for i, rec := range rows {
		row := i + 1

		var urn *int64
		if cell := h.cell(rec, "urn"); cell != "" {
			if v, perr := strconv.ParseInt(cell, 10, 64); perr == nil {
				urn = &v
			} else {
				slog.Debug("Unparseable claimed identifier, routing to unmatched",
					"file", name, "row", row, "value", cell)
			}
		}

		age, err := parseInt(name, "age", row, h.cell(rec, "age"))
		if err != nil {
			return nil, err
		}
		postcode, err := parseInt(name, "addr_postcode", row, h.cell(rec, "addr_postcode"))
		if err != nil {
			return nil, err
		}

		amount := decimal.Zero
		hasAmount := false
		if cell := h.cell(rec, "amount"); cell != "" {
			amount, err = decimal.NewFromString(cell)
			if err != nil {
				return nil, &common.TypeCoercionError{
					File:   name,
					Column: "amount",
					Row:    row,
					Err:    fmt.Errorf("cannot coerce %q to an amount", cell),
				}
			}
			hasAmount = true
		}

		txns = append(txns, model.Transaction{
			Row:       row,
			URN:       urn,
			First:     h.cell(rec, "first"),
			Last:      h.cell(rec, "last"),
			Age:       int(age),
			AddrLine:  h.cell(rec, "addr_line"),
			Suburb:    h.cell(rec, "addr_suburb"),
			Postcode:  postcode,
			State:     h.cell(rec, "addr_state"),
			Amount:    amount,
			HasAmount: hasAmount,
		})
	}

	slog.Info("Loaded transactions", "file", name, "count", len(txns))
	return txns, nil
}
