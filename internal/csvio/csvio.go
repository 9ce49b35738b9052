// Package csvio implements the inventory CSV dialect: a single-line
// tokenizer with doubled-quote escapes, the matching field escaper, and
// tolerant header resolution for imported spreadsheet exports.
package csvio

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrMissingNameColumn is returned when a CSV header has no Name column
var ErrMissingNameColumn = errors.New("invalid CSV format: missing 'Name' column")

// ExportHeader is the fixed header row of exported documents.
var ExportHeader = []string{"Name", "Model", "Category", "Location", "Quantity", "Notes"}

// FallbackCategory is assigned to rows whose category cell is blank or
// whose file has no category column at all.
const FallbackCategory = "Uncategorized"

// fallbackName is assigned to rows whose name cell is blank.
const fallbackName = "Unknown"

// Row is one parsed item line.
type Row struct {
	Name          string
	ModelNumber   string
	CategoryName  string
	ShelfLocation string
	Quantity      int
	Notes         string
}

// Header holds the resolved column index per canonical field, -1 when the
// column is absent.
type Header struct {
	Name     int
	Model    int
	Category int
	Location int
	Quantity int
	Notes    int
}

// ParseLine splits one physical CSV line into fields. A quote toggles
// quoted mode; inside quoted mode a doubled quote is a literal quote and a
// comma is data. The document is split into lines before this runs, so a
// quoted field containing a newline is mis-split across lines — a known
// limitation of the dialect, kept as-is.
func ParseLine(line string) []string {
	var cols []string
	var buf strings.Builder
	inQuote := false

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '"':
			if inQuote && i+1 < len(line) && line[i+1] == '"' {
				buf.WriteByte('"')
				i++
			} else {
				inQuote = !inQuote
			}
		case ch == ',' && !inQuote:
			cols = append(cols, buf.String())
			buf.Reset()
		default:
			buf.WriteByte(ch)
		}
	}
	cols = append(cols, buf.String())
	return cols
}

// Escape quotes a field for CSV output. Fields containing a comma, quote,
// or newline are wrapped in quotes with internal quotes doubled; anything
// else passes through unchanged.
func Escape(field string) string {
	if strings.ContainsAny(field, ",\"\n") {
		return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
	}
	return field
}

// JoinLine escapes and comma-joins one row of fields.
func JoinLine(fields []string) string {
	escaped := make([]string, len(fields))
	for i, f := range fields {
		escaped[i] = Escape(f)
	}
	return strings.Join(escaped, ",")
}

// SplitLines splits a document on \r?\n and drops blank lines.
func SplitLines(text string) []string {
	text = strings.TrimPrefix(text, "\uFEFF")
	var lines []string
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// ResolveHeader maps header cells to canonical columns. Matching is
// case-insensitive containment, so "Item Name" or "model number" resolve
// fine. Name is mandatory; every other column is optional.
func ResolveHeader(cells []string) (Header, error) {
	lowered := make([]string, len(cells))
	for i, c := range cells {
		lowered[i] = strings.ToLower(strings.TrimSpace(c))
	}

	index := func(key string) int {
		for i, h := range lowered {
			if strings.Contains(h, key) {
				return i
			}
		}
		return -1
	}

	header := Header{
		Name:     index("name"),
		Model:    index("model"),
		Category: index("category"),
		Location: index("location"),
		Quantity: index("quantity"),
		Notes:    index("notes"),
	}
	if header.Name == -1 {
		return Header{}, ErrMissingNameColumn
	}
	return header, nil
}

// ParseRow turns one data line into a Row using the resolved header.
// Blank names become "Unknown" and blank or absent categories become
// "Uncategorized"; the quantity falls back to 0 when absent or malformed.
func ParseRow(line string, header Header) Row {
	cols := ParseLine(line)

	cell := func(idx int) string {
		if idx < 0 || idx >= len(cols) {
			return ""
		}
		return strings.TrimSpace(cols[idx])
	}

	row := Row{
		Name:          cell(header.Name),
		ModelNumber:   cell(header.Model),
		CategoryName:  cell(header.Category),
		ShelfLocation: cell(header.Location),
		Notes:         cell(header.Notes),
	}
	if row.Name == "" {
		row.Name = fallbackName
	}
	if row.CategoryName == "" {
		row.CategoryName = FallbackCategory
	}
	if qty, err := strconv.Atoi(cell(header.Quantity)); err == nil && qty >= 0 {
		row.Quantity = qty
	}
	return row
}

// ExportFileName builds the conventional export filename,
// e.g. myStore_inventory_2026-09-01.csv.
func ExportFileName(appName string, t time.Time) string {
	return fmt.Sprintf("%s_inventory_%s.csv", appName, t.Format("2006-01-02"))
}
