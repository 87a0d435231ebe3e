// scraper/csv_parser.go
package scraper

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jszwec/csvutil"
	"github.com/ltp-analytics/dashboard/logger"
	"github.com/ltp-analytics/dashboard/models"
)

const utf8BOM = "\ufeff"

// ParseProjectCsv reads LTP Hub rows from delimited text. The header row
// names the fields; see models.ProjectRecord for the expected headers.
func ParseProjectCsv(reader io.Reader) ([]models.ProjectRecord, error) {
	return decodeRegister[models.ProjectRecord](newDelimitedReader(reader), models.ProjectIDColumn, "LTP Hub")
}

// ParseFinancialCsv reads AFE rows from delimited text.
func ParseFinancialCsv(reader io.Reader) ([]models.FinancialRecord, error) {
	return decodeRegister[models.FinancialRecord](newDelimitedReader(reader), models.FinancialIDColumn, "AFE")
}

// ParseProjectRows decodes rows that were already split into cells, e.g. an
// HTML table. The first row is the header.
func ParseProjectRows(rows [][]string) ([]models.ProjectRecord, error) {
	return decodeRegister[models.ProjectRecord](&sliceReader{rows: rows}, models.ProjectIDColumn, "LTP Hub")
}

// ParseFinancialRows is ParseProjectRows for the AFE register.
func ParseFinancialRows(rows [][]string) ([]models.FinancialRecord, error) {
	return decodeRegister[models.FinancialRecord](&sliceReader{rows: rows}, models.FinancialIDColumn, "AFE")
}

func decodeRegister[T any](src csvutil.Reader, idColumn, label string) ([]T, error) {
	records := []T{}
	rr := &rowReader{src: src, idColumn: idColumn}

	decoder, err := csvutil.NewDecoder(rr)
	if errors.Is(err, io.EOF) {
		// no header row, nothing to decode
		return records, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create CSV decoder for %s: %w", label, err)
	}

	if err := decoder.Decode(&records); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode %s data: %w", label, err)
	}
	if records == nil {
		records = []T{}
	}

	if rr.dropped > 0 {
		logger.Log.Warnf("Scraper: dropped %d %s rows too short to carry a %q value", rr.dropped, label, idColumn)
	}
	logger.Log.Infof("Scraper: parsed %d %s records", len(records), label)
	return records, nil
}

// newDelimitedReader returns a lenient csv.Reader. Tab is used as the
// delimiter when the header line has tabs but no commas.
func newDelimitedReader(reader io.Reader) *csv.Reader {
	br := bufio.NewReader(reader)
	r := csv.NewReader(br)
	if head, _ := br.Peek(br.Size()); len(head) > 0 {
		line := string(head)
		if i := strings.IndexAny(line, "\r\n"); i >= 0 {
			line = line[:i]
		}
		if strings.Contains(line, "\t") && !strings.Contains(line, ",") {
			r.Comma = '\t'
		}
	}
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	return r
}

// rowReader sits between a raw row source and csvutil. It cleans every cell,
// pads short rows to the header width (truncating long ones), and drops rows
// that end before the identifier column.
type rowReader struct {
	src      csvutil.Reader
	idColumn string

	width    int
	minWidth int
	started  bool
	dropped  int
}

func (r *rowReader) Read() ([]string, error) {
	for {
		row, err := r.src.Read()
		if err != nil {
			return nil, err
		}

		if !r.started {
			r.started = true
			header := cleanCells(row)
			if len(header) > 0 {
				header[0] = strings.TrimSpace(strings.TrimPrefix(header[0], utf8BOM))
			}
			header = uniqueHeader(header)
			r.width = len(header)
			r.minWidth = 1
			for i, h := range header {
				if h == r.idColumn {
					r.minWidth = i + 1
					break
				}
			}
			return header, nil
		}

		cells := cleanCells(row)
		if len(cells) == 1 && cells[0] == "" {
			// whitespace-only line
			continue
		}
		if len(cells) < r.minWidth {
			r.dropped++
			continue
		}
		return fitWidth(cells, r.width), nil
	}
}

func cleanCells(row []string) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = strings.TrimSpace(strings.ReplaceAll(cell, `"`, ""))
	}
	return out
}

// uniqueHeader names blank header cells and suffixes repeated ones so the
// decoder never sees duplicate columns.
func uniqueHeader(header []string) []string {
	seen := make(map[string]int, len(header))
	for i, h := range header {
		if h == "" {
			h = fmt.Sprintf("column_%d", i+1)
		}
		if n := seen[h]; n > 0 {
			seen[h] = n + 1
			h = fmt.Sprintf("%s_%d", h, n+1)
		}
		seen[h]++
		header[i] = h
	}
	return header
}

func fitWidth(row []string, width int) []string {
	if len(row) >= width {
		return row[:width]
	}
	padded := make([]string, width)
	copy(padded, row)
	return padded
}

// sliceReader serves pre-split rows as a csvutil.Reader.
type sliceReader struct {
	rows [][]string
	next int
}

func (s *sliceReader) Read() ([]string, error) {
	if s.next >= len(s.rows) {
		return nil, io.EOF
	}
	row := s.rows[s.next]
	s.next++
	return row, nil
}
