package codec

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bbanting/budgettool/internal/model"
)

// Header is the CSV header for a period record file.
const Header = "id,date,amount,target,tags,note,hidden"

const (
	numFields  = 7
	dateFormat = "2006-01-02"
	tagSep     = ";"
	colID      = 0
	colDate    = 1
	colAmount  = 2
	colTarget  = 3
	colTags    = 4
	colNote    = 5
	colHidden  = 6
)

// LineError reports one malformed row in a period file. The surrounding
// rows still decode.
type LineError struct {
	Line int // 1-based line number in the file
	Raw  string
	Err  error
}

func (e LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e LineError) Unwrap() error { return e.Err }

// Decode reads all records from a period file. Malformed rows are
// collected as LineErrors rather than aborting the read.
func Decode(r io.Reader) ([]model.Record, []LineError) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // field count is checked per row

	var records []model.Record
	var lineErrs []LineError
	line := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			lineErrs = append(lineErrs, LineError{Line: line, Err: err})
			continue
		}
		if line == 1 {
			// Header row.
			continue
		}

		rec, err := UnmarshalRecord(row)
		if err != nil {
			lineErrs = append(lineErrs, LineError{
				Line: line,
				Raw:  strings.Join(row, ","),
				Err:  err,
			})
			continue
		}
		records = append(records, rec)
	}
	return records, lineErrs
}

// Encode writes records to a period file writer, header included. The
// field order is fixed so Decode(Encode(rs)) == rs for valid sets.
func Encode(w io.Writer, records []model.Record) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, rec := range records {
		if err := cw.Write(MarshalRecord(rec)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalRecord converts a Record to a CSV row ([]string).
func MarshalRecord(rec model.Record) []string {
	row := make([]string, numFields)
	row[colID] = strconv.Itoa(rec.ID)
	row[colDate] = rec.Date.Format(dateFormat)
	row[colAmount] = rec.Amount.StringFixed(2)
	row[colTarget] = rec.Target
	row[colTags] = strings.Join(rec.Tags, tagSep)
	row[colNote] = rec.Note
	row[colHidden] = strconv.FormatBool(rec.Hidden)
	return row
}

// UnmarshalRecord converts a CSV row to a Record.
func UnmarshalRecord(row []string) (model.Record, error) {
	if len(row) != numFields {
		return model.Record{}, fmt.Errorf("expected %d fields, got %d", numFields, len(row))
	}

	id, err := strconv.Atoi(row[colID])
	if err != nil {
		return model.Record{}, fmt.Errorf("parsing id %q: %w", row[colID], err)
	}

	date, err := time.Parse(dateFormat, row[colDate])
	if err != nil {
		return model.Record{}, fmt.Errorf("parsing date %q: %w", row[colDate], err)
	}

	amount, err := decimal.NewFromString(row[colAmount])
	if err != nil {
		return model.Record{}, fmt.Errorf("parsing amount %q: %w", row[colAmount], err)
	}

	var tags []string
	if row[colTags] != "" {
		tags = strings.Split(row[colTags], tagSep)
		for _, t := range tags {
			if err := model.CheckTag(t); err != nil {
				return model.Record{}, fmt.Errorf("parsing tags %q: %w", row[colTags], err)
			}
		}
	}

	hidden, err := strconv.ParseBool(row[colHidden])
	if err != nil {
		return model.Record{}, fmt.Errorf("parsing hidden %q: %w", row[colHidden], err)
	}

	return model.Record{
		ID:     id,
		Date:   date,
		Amount: amount,
		Target: row[colTarget],
		Tags:   tags,
		Note:   row[colNote],
		Hidden: hidden,
	}, nil
}
