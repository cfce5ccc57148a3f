package table

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrEmptyInput indicates a source with no usable content.
var ErrEmptyInput = errors.New("empty input")

// CSVSource materializes a Document from a delimiter-separated statement
// export. The whole file becomes a single page with a single table; the
// page text is the raw file content so label scanning still works on
// exports that carry metadata lines above the header.
type CSVSource struct {
	data      []byte
	delimiter rune
}

// NewCSVSource reads the full input eagerly. Pass a zero delimiter to
// auto-detect among ';', tab, ',' and '|'.
func NewCSVSource(r io.Reader, delimiter rune) (*CSVSource, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv input: %w", err)
	}
	data = stripBOM(data)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyInput
	}
	return &CSVSource{data: data, delimiter: delimiter}, nil
}

// Extract parses the file into one page holding one table.
func (s *CSVSource) Extract() (*Document, error) {
	delimiter := s.delimiter
	if delimiter == 0 {
		delimiter = detectDelimiter(firstNonEmptyLine(s.data))
		if delimiter == 0 {
			delimiter = ','
		}
	}

	reader := csv.NewReader(bytes.NewReader(s.data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse csv: %w", err)
		}
		rows = append(rows, record)
	}

	page := Page{Number: 1, Text: string(s.data)}
	if len(rows) > 0 {
		page.Tables = []Table{{Rows: rows}}
	}
	return &Document{Pages: []Page{page}}, nil
}

// detectDelimiter picks the candidate occurring most often in the line.
func detectDelimiter(line string) rune {
	candidates := []rune{';', '\t', ',', '|'}
	best := rune(0)
	bestCount := 0
	for _, d := range candidates {
		if count := strings.Count(line, string(d)); count > bestCount {
			bestCount = count
			best = d
		}
	}
	return best
}

func firstNonEmptyLine(data []byte) string {
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimRight(line, "\r"); strings.TrimSpace(line) != "" {
			return line
		}
	}
	return ""
}

func stripBOM(data []byte) []byte {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return data[3:]
	}
	return data
}
