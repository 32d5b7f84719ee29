package commands

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bbanting/budgettool/internal/model"
)

// Display column widths, matching the listing header.
const (
	idWidth     = 6
	dateWidth   = 8
	amountWidth = 12
	targetWidth = 14
)

// dollarStr formats an amount with an explicit sign: "+$12.00", "-$45.00".
func dollarStr(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Abs().StringFixed(2)
	}
	return "+$" + d.StringFixed(2)
}

// listHeader is the column header line for record listings.
func listHeader() string {
	return fmt.Sprintf("%-*s%-*s%-*s%-*s%s",
		idWidth, "ID", dateWidth, "DATE", amountWidth, "AMOUNT", targetWidth, "TARGET", "NOTE")
}

// renderRecord formats one record as a listing line for the pager.
func renderRecord(rec model.Record) string {
	note := rec.Note
	if len(rec.Tags) > 0 {
		note = fmt.Sprintf("[%s] %s", strings.Join(rec.Tags, ";"), note)
	}
	return fmt.Sprintf("%-*s%-*s%-*s%-*s%s",
		idWidth, fmt.Sprintf("%04d", rec.ID),
		dateWidth, rec.Date.Format("Jan 02"),
		amountWidth, dollarStr(rec.Amount),
		targetWidth, rec.Target,
		strings.TrimSpace(note))
}
