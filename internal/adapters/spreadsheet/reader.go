// Package spreadsheet parses exported report files into header-keyed rows.
package spreadsheet

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/BobBjorklund/progressTracker/internal/ports/secondary"
)

// Errors returned for files that cannot be turned into rows.
var (
	ErrNoWorksheets = errors.New("workbook has no worksheets")
	ErrLegacyXLS    = errors.New("legacy .xls workbooks are not supported; save as .xlsx or .csv")
)

var (
	zipMagic = []byte("PK\x03\x04")
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0}
	utf8BOM  = "\ufeff"
)

// Reader implements secondary.ReportReader for .xlsx and .csv files.
type Reader struct{}

// NewReader creates a new spreadsheet reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read parses the first worksheet of data.
func (r *Reader) Read(ctx context.Context, data []byte, filename string) (*secondary.Sheet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch detectFormat(data, filename) {
	case formatXLSX:
		return readXLSX(data)
	case formatXLS:
		return nil, ErrLegacyXLS
	default:
		return readCSV(data, filename)
	}
}

type format int

const (
	formatCSV format = iota
	formatXLSX
	formatXLS
)

func detectFormat(data []byte, filename string) format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm", ".xltx":
		return formatXLSX
	case ".csv", ".txt":
		return formatCSV
	}
	switch {
	case bytes.HasPrefix(data, zipMagic):
		return formatXLSX
	case bytes.HasPrefix(data, oleMagic):
		return formatXLS
	}
	return formatCSV
}

func readXLSX(data []byte) (*secondary.Sheet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoWorksheets
	}
	name := sheets[0]

	// formatted cell text, as shown in the spreadsheet application
	grid, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet %s: %w", name, err)
	}

	return &secondary.Sheet{Name: name, Rows: toRows(grid)}, nil
}

func readCSV(data []byte, filename string) (*secondary.Sheet, error) {
	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var grid [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse csv: %w", err)
		}
		grid = append(grid, rec)
	}
	if len(grid) > 0 && len(grid[0]) > 0 {
		grid[0][0] = strings.TrimPrefix(grid[0][0], utf8BOM)
	}

	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	if name == "" || name == "." {
		name = "Sheet1"
	}
	return &secondary.Sheet{Name: name, Rows: toRows(grid)}, nil
}

// toRows keys every data row by the header row. Missing cells read as "",
// blank rows are dropped, and repeated headers get a numeric suffix.
func toRows(grid [][]string) []map[string]string {
	if len(grid) == 0 {
		return []map[string]string{}
	}
	headers := uniqueHeaders(grid[0])

	rows := make([]map[string]string, 0, len(grid)-1)
	for _, rec := range grid[1:] {
		if isBlank(rec) {
			continue
		}
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if h == "" {
				continue
			}
			if i < len(rec) {
				row[h] = rec[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func uniqueHeaders(raw []string) []string {
	seen := make(map[string]int, len(raw))
	out := make([]string, len(raw))
	for i, h := range raw {
		if strings.TrimSpace(h) == "" {
			continue
		}
		if n, dup := seen[h]; dup {
			seen[h] = n + 1
			out[i] = h + "_" + strconv.Itoa(n)
			continue
		}
		seen[h] = 1
		out[i] = h
	}
	return out
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Ensure Reader implements the interface
var _ secondary.ReportReader = (*Reader)(nil)
