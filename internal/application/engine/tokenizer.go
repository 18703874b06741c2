package engine

import (
	"strings"

	"github.com/filip867/Karl-Filip/internal/domain/entity"
)

const byteOrderMark = "\uFEFF"

// Tokenizer splits delimited export text into header-keyed rows.
type Tokenizer struct {
	Delimiter      rune
	Quote          rune
	IdentityColumn string
}

// NewTokenizer returns a comma/double-quote tokenizer keyed on identityColumn.
func NewTokenizer(identityColumn string) Tokenizer {
	return Tokenizer{Delimiter: ',', Quote: '"', IdentityColumn: identityColumn}
}

// Records splits text into lines and each line into trimmed fields. The quote
// character only switches quoting on and off; it never ends up in a field.
func (t Tokenizer) Records(text string) [][]string {
	text = strings.TrimPrefix(text, byteOrderMark)
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	records := make([][]string, 0, len(lines))
	for _, line := range lines {
		records = append(records, t.splitLine(strings.TrimPrefix(line, byteOrderMark)))
	}
	return records
}

func (t Tokenizer) splitLine(line string) []string {
	var (
		fields []string
		cur    strings.Builder
		quoted bool
	)
	for _, c := range line {
		switch {
		case c == t.Quote:
			quoted = !quoted
		case c == t.Delimiter && !quoted:
			fields = append(fields, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteRune(c)
		}
	}
	return append(fields, strings.TrimSpace(cur.String()))
}

// Rows tokenizes text and maps every line after the header onto the header
// names. Lines with an empty identity column are dropped.
func (t Tokenizer) Rows(text string) []entity.RawRow {
	return RowsFromRecords(t.Records(text), t.IdentityColumn)
}

// RowsFromRecords applies the header mapping to already split records. Short
// records are padded with empty fields, surplus fields are ignored.
func RowsFromRecords(records [][]string, identityColumn string) []entity.RawRow {
	if len(records) == 0 {
		return []entity.RawRow{}
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		h = strings.TrimPrefix(h, byteOrderMark)
		headers[i] = strings.TrimSpace(strings.ReplaceAll(h, `"`, ""))
	}

	rows := make([]entity.RawRow, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(entity.RawRow, len(headers))
		for i, h := range headers {
			if i < len(record) {
				row[h] = strings.TrimSpace(record[i])
			} else {
				row[h] = ""
			}
		}
		if row[identityColumn] == "" {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}
