package tracklog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Column headers of the historical export format.
const (
	ColInstance       = "Instance (Blake Tracking)"
	ColWhen           = "When"
	ColLocation       = "Location"
	ColCity           = "City"
	ColState          = "State"
	ColAlone          = "Alone?"
	ColPeople         = "People"
	ColVessel         = "Vessel"
	ColAccessory      = "Accessory Used"
	ColYourVessel     = "Your Vessel"
	ColYourSubstance  = "Your Substance"
	ColStrain         = "Strain"
	ColStrainType     = "Type"
	ColTHC            = "THC %"
	ColLegalPurchase  = "Legal Product_Purchased?"
	ColStatePurchased = "State Purchased?"
	ColTobacco        = "Tobacco"
	ColKief           = "Kief"
	ColConcentrate    = "Concentrate"
	ColLavender       = "Lavendar" // sic, the export header is misspelled
	ColQuantity       = "Quantity"
	ColComments       = "Comments"
)

// ErrNoHeader is returned when the input has no header line at all.
var ErrNoHeader = errors.New("tracklog: input has no header line")

// Row is one data line, split into cells. Num is the 1-based data row
// number (the header line is not counted).
type Row struct {
	Num   int
	Cells []string
}

// Table is a parsed export file: the detected separator, the header
// columns in file order, and every data row.
type Table struct {
	Separator rune
	Headers   []string
	Rows      []Row

	index map[string]int
}

// Parse reads a whole delimited export. The separator is decided once
// from the header line; rows are split with quote awareness and kept
// verbatim otherwise.
func Parse(r io.Reader) (*Table, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading header: %w", err)
		}
		return nil, ErrNoHeader
	}
	headerLine := strings.TrimRight(scanner.Text(), "\r")
	if strings.TrimSpace(headerLine) == "" {
		return nil, ErrNoHeader
	}

	sep := DetectSeparator(headerLine)
	table := &Table{
		Separator: sep,
		Headers:   SplitLine(headerLine, sep),
		index:     make(map[string]int),
	}
	for i, h := range table.Headers {
		table.index[NormalizeHeader(h)] = i
	}

	num := 0
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		num++
		table.Rows = append(table.Rows, Row{Num: num, Cells: SplitLine(line, sep)})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading rows: %w", err)
	}
	return table, nil
}

// ParseFile parses a delimited export from disk.
func ParseFile(path string) (table *Table, err error) {
	file, ferr := os.Open(path)
	if ferr != nil {
		return nil, fmt.Errorf("failed to open file: %w", ferr)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close file: %w", cerr)
		}
	}()
	return Parse(file)
}

// Get returns the cell under the named header for a row, or "" when the
// column is absent or the row is short. Header matching is case and
// whitespace insensitive.
func (t *Table) Get(r Row, header string) string {
	i, ok := t.index[NormalizeHeader(header)]
	if !ok || i >= len(r.Cells) {
		return ""
	}
	return r.Cells[i]
}

// HasColumn reports whether a header is present, matched like Get.
func (t *Table) HasColumn(header string) bool {
	_, ok := t.index[NormalizeHeader(header)]
	return ok
}

// HasColumnPrefix reports whether any header starts with the given
// prefix after normalization. The identifier column's exact title varied
// across exports, so it is matched by prefix.
func (t *Table) HasColumnPrefix(prefix string) bool {
	prefix = NormalizeHeader(prefix)
	for h := range t.index {
		if strings.HasPrefix(h, prefix) {
			return true
		}
	}
	return false
}

// GetPrefix returns the cell under the leftmost header whose normalized
// form starts with the prefix, or "" when none matches.
func (t *Table) GetPrefix(r Row, prefix string) string {
	prefix = NormalizeHeader(prefix)
	best := -1
	for h, i := range t.index {
		if strings.HasPrefix(h, prefix) && (best == -1 || i < best) {
			best = i
		}
	}
	if best == -1 || best >= len(r.Cells) {
		return ""
	}
	return r.Cells[best]
}

// NormalizeHeader lowercases a header and collapses runs of whitespace.
func NormalizeHeader(h string) string {
	return strings.ToLower(strings.Join(strings.Fields(h), " "))
}

// DetectSeparator picks tab or comma by a plurality vote over the header
// line's characters, counting only separators outside quotes. Tabs win
// ties because the historical exports were TSV.
func DetectSeparator(header string) rune {
	tabs, commas := 0, 0
	inQuote := false
	for _, r := range header {
		switch {
		case r == '"':
			inQuote = !inQuote
		case inQuote:
		case r == '\t':
			tabs++
		case r == ',':
			commas++
		}
	}
	if commas > tabs {
		return ','
	}
	return '\t'
}

// SplitLine splits one line into trimmed fields on sep, honoring double
// quotes: separators inside quotes do not split, and the quotes
// themselves are stripped. An unterminated quote consumes to end of
// line. Trailing empty fields are preserved.
func SplitLine(line string, sep rune) []string {
	var fields []string
	var cur strings.Builder
	inQuote := false
	for _, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
		case r == sep && !inQuote:
			fields = append(fields, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	fields = append(fields, strings.TrimSpace(cur.String()))
	return fields
}
