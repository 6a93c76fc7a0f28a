package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

var (
	ErrUnsupportedType = errors.New("unsupported file type, expected .csv or .xlsx")
	ErrNoColumns       = errors.New("no columns to parse from file")
)

// Load reads a .csv or .xlsx upload, choosing the reader by file extension.
func Load(filename string, r io.Reader) (*Frame, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return ReadCSV(filename, r)
	case ".xlsx":
		return ReadXLSX(filename, r)
	default:
		return nil, ErrUnsupportedType
	}
}

// ReadCSV parses comma-separated text whose first record is the header.
func ReadCSV(name string, r io.Reader) (*Frame, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if !utf8.Valid(data) {
		return nil, errors.New("CSV file is not valid UTF-8 text")
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrNoColumns
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	var records [][]string
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV file: %w", err)
		}
		records = append(records, rec)
	}
	return newFrame(name, header, records)
}

// ReadXLSX parses the first worksheet of a workbook; its first row is the header.
func ReadXLSX(name string, r io.Reader) (*Frame, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no worksheets")
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if err := boolCells(f, sheets[0], rows); err != nil {
		return nil, err
	}

	// Leading empty rows come back as empty slices.
	for len(rows) > 0 && isBlankRecord(rows[0]) {
		rows = rows[1:]
	}
	if len(rows) == 0 {
		return nil, ErrNoColumns
	}

	header := rows[0]
	width := len(header)
	var records [][]string
	for _, row := range rows[1:] {
		if isBlankRecord(row) {
			continue
		}
		if len(row) > width {
			// excelize only returns cells up to the last non-empty one, so a wide row means
			// data under a missing header cell; widen the header like an unnamed column.
			for len(header) < len(row) {
				header = append(header, "")
			}
			width = len(header)
		}
		records = append(records, row)
	}
	return newFrame(name, header, records)
}

// boolCells rewrites boolean cells, which raw values report as 1 and 0, to true and false.
// Row r of rows is sheet row r+1.
func boolCells(f *excelize.File, sheet string, rows [][]string) error {
	for r, row := range rows {
		for c, v := range row {
			if v != "0" && v != "1" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return fmt.Errorf("failed to read sheet %s: %w", sheet, err)
			}
			typ, err := f.GetCellType(sheet, cell)
			if err != nil {
				return fmt.Errorf("failed to read cell %s: %w", cell, err)
			}
			if typ == excelize.CellTypeBool {
				row[c] = strconv.FormatBool(v == "1")
			}
		}
	}
	return nil
}

func isBlankRecord(rec []string) bool {
	for _, cell := range rec {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
