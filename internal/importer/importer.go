// Package importer turns bank statement CSV exports into ledger records.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bbanting/budgettool/internal/model"
	"github.com/bbanting/budgettool/internal/store"
)

// Row is one parsed statement line.
type Row struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal // negative = expense, positive = earning
}

const (
	numFields = 3
	colDate   = 0
	colDesc   = 1
	colAmount = 2
)

// dateFormats are tried in order when parsing statement dates.
var dateFormats = []string{"2006-01-02", "01/02/2006", "02/01/2006"}

// Parse reads a statement CSV with a `date,description,amount` header.
func Parse(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading statement CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var rows []Row
	for i, rec := range records[1:] {
		row, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRow(rec []string) (Row, error) {
	var date time.Time
	var err error
	for _, f := range dateFormats {
		date, err = time.Parse(f, rec[colDate])
		if err == nil {
			break
		}
	}
	if err != nil {
		return Row{}, fmt.Errorf("parsing date %q: %w", rec[colDate], err)
	}

	amount, err := decimal.NewFromString(strings.ReplaceAll(rec[colAmount], ",", ""))
	if err != nil {
		return Row{}, fmt.Errorf("parsing amount %q: %w", rec[colAmount], err)
	}

	return Row{
		Date:        date,
		Description: strings.TrimSpace(rec[colDesc]),
		Amount:      amount,
	}, nil
}

// Result reports what an import did.
type Result struct {
	Added   []model.Record
	Skipped int // rows already present in the ledger
}

// Import adds statement rows as records under one target, skipping rows
// that already exist (same date, amount, and note).
func Import(st *store.Store, rows []Row, targetName string, tags []string) (Result, error) {
	var res Result
	for _, row := range rows {
		dup, err := exists(st, row)
		if err != nil {
			return res, err
		}
		if dup {
			res.Skipped++
			continue
		}

		rec, err := st.Add(model.Record{
			Date:   row.Date,
			Amount: row.Amount,
			Target: targetName,
			Note:   row.Description,
			Tags:   tags,
		})
		if err != nil {
			return res, fmt.Errorf("importing row dated %s: %w", row.Date.Format("2006-01-02"), err)
		}
		res.Added = append(res.Added, rec)
	}
	return res, nil
}

func exists(st *store.Store, row Row) (bool, error) {
	seq, err := st.List(store.Filter{From: row.Date, To: row.Date})
	if err != nil {
		return false, err
	}
	for rec := range seq {
		if rec.Amount.Equal(row.Amount) && rec.Note == row.Description {
			return true, nil
		}
	}
	return false, nil
}
