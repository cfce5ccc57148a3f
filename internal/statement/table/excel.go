package table

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ExcelSource materializes a Document from an XLSX workbook. Each sheet
// becomes one page whose table is the sheet's cell grid; the page text is
// the rows joined line by line so metadata labels placed in leading cells
// remain scannable.
type ExcelSource struct {
	reader io.Reader
}

// NewExcelSource wraps an XLSX stream. The workbook is opened lazily in
// Extract so collaborator failures surface as extraction errors.
func NewExcelSource(r io.Reader) *ExcelSource {
	return &ExcelSource{reader: r}
}

// Extract opens the workbook and converts every sheet into a page.
func (s *ExcelSource) Extract() (*Document, error) {
	f, err := excelize.OpenReader(s.reader)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyInput
	}

	doc := &Document{Pages: make([]Page, 0, len(sheets))}
	for i, sheet := range sheets {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
		}

		page := Page{Number: i + 1, Text: sheetText(rows)}
		if len(rows) > 0 {
			page.Tables = []Table{{Rows: rows}}
		}
		doc.Pages = append(doc.Pages, page)
	}
	return doc, nil
}

func sheetText(rows [][]string) string {
	var b strings.Builder
	for _, row := range rows {
		b.WriteString(strings.Join(row, " "))
		b.WriteByte('\n')
	}
	return b.String()
}
