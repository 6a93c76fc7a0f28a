package dataset

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type Kind string

const (
	KindNumber Kind = "number"
	KindBool   Kind = "bool"
	KindText   Kind = "text"
)

type Column struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
}

// Frame is an uploaded table: named, typed columns over rows of raw cell text.
// Every row has exactly len(Columns) cells.
type Frame struct {
	Name    string     `json:"name"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// newFrame normalises the header, pads short rows and infers column kinds.
func newFrame(name string, header []string, records [][]string) (*Frame, error) {
	names := normaliseHeader(header)
	rows := make([][]string, 0, len(records))
	for i, rec := range records {
		if len(rec) > len(names) {
			return nil, fmt.Errorf("expected %d fields in line %d, saw %d", len(names), i+2, len(rec))
		}
		row := make([]string, len(names))
		for j, cell := range rec {
			row[j] = strings.TrimSpace(cell)
		}
		rows = append(rows, row)
	}

	f := &Frame{Name: name, Columns: make([]Column, len(names)), Rows: rows}
	for j, n := range names {
		f.Columns[j] = Column{Name: n, Kind: inferKind(rows, j)}
	}
	return f, nil
}

// normaliseHeader names blank headers "Unnamed: i" and suffixes duplicates ".1", ".2", ...
func normaliseHeader(header []string) []string {
	names := make([]string, len(header))
	seen := make(map[string]int, len(header))
	taken := make(map[string]bool, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if taken[name] {
			base := name
			for {
				seen[base]++
				candidate := fmt.Sprintf("%s.%d", base, seen[base])
				if !taken[candidate] {
					name = candidate
					break
				}
			}
		}
		taken[name] = true
		names[i] = name
	}
	return names
}

func inferKind(rows [][]string, col int) Kind {
	numeric, boolean, nonEmpty := true, true, 0
	for _, row := range rows {
		cell := row[col]
		if isMissing(cell) {
			continue
		}
		nonEmpty++
		if numeric {
			if _, ok := parseNumber(cell); !ok {
				numeric = false
			}
		}
		if boolean && !isBoolWord(cell) {
			boolean = false
		}
		if !numeric && !boolean {
			return KindText
		}
	}
	// A header-only table has untyped columns; an all-empty column reads as missing floats.
	if len(rows) == 0 {
		return KindText
	}
	if nonEmpty == 0 || numeric {
		return KindNumber
	}
	return KindBool
}

// missingValues follows the markers spreadsheets and CSV exports commonly use for blanks.
var missingValues = map[string]bool{
	"": true, "NA": true, "N/A": true, "n/a": true, "NaN": true, "nan": true,
	"null": true, "NULL": true, "None": true, "#N/A": true, "<NA>": true,
}

func isMissing(s string) bool {
	return missingValues[s]
}

func isBoolWord(s string) bool {
	l := strings.ToLower(s)
	return l == "true" || l == "false"
}

func parseNumber(s string) (float64, bool) {
	if isMissing(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	// Out of range values such as 1e999 stay numeric as ±Inf.
	return v, true
}

func (f *Frame) ColumnNames() []string {
	names := make([]string, len(f.Columns))
	for i, c := range f.Columns {
		names[i] = c.Name
	}
	return names
}

func (f *Frame) NumericColumns() []string {
	var names []string
	for _, c := range f.Columns {
		if c.Kind == KindNumber {
			names = append(names, c.Name)
		}
	}
	return names
}

func (f *Frame) Index(name string) int {
	for i, c := range f.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Head returns up to n leading rows.
func (f *Frame) Head(n int) [][]string {
	if n < 0 || n > len(f.Rows) {
		n = len(f.Rows)
	}
	return f.Rows[:n]
}

func (f *Frame) Column(name string) []string {
	i := f.Index(name)
	if i < 0 {
		return nil
	}
	out := make([]string, len(f.Rows))
	for r, row := range f.Rows {
		out[r] = row[i]
	}
	return out
}

// NumericValues returns one entry per row; ok[r] is false for missing cells.
func (f *Frame) NumericValues(name string) (values []float64, ok []bool) {
	i := f.Index(name)
	if i < 0 {
		return nil, nil
	}
	values = make([]float64, len(f.Rows))
	ok = make([]bool, len(f.Rows))
	for r, row := range f.Rows {
		values[r], ok[r] = parseNumber(row[i])
	}
	return values, ok
}

// Summary is the sentence inserted ahead of the user's question in the model prompt.
func (f *Frame) Summary() string {
	return fmt.Sprintf("The user uploaded a file with columns: %s. ", strings.Join(f.ColumnNames(), ", "))
}
