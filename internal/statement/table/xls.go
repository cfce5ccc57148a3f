package table

import (
	"fmt"
	"io"

	"github.com/extrame/xls"
)

// XLSSource materializes a Document from a legacy OLE workbook, the
// pre-2007 binary format that excelize cannot open. Sheets map to pages
// the same way ExcelSource maps them.
type XLSSource struct {
	reader io.ReadSeeker
}

// NewXLSSource wraps a legacy workbook stream. The reader must seek
// because the OLE container is not parsed front to back.
func NewXLSSource(r io.ReadSeeker) *XLSSource {
	return &XLSSource{reader: r}
}

// Extract opens the workbook and converts every sheet into a page.
func (s *XLSSource) Extract() (*Document, error) {
	wb, err := xls.OpenReader(s.reader, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	if wb.NumSheets() == 0 {
		return nil, ErrEmptyInput
	}

	doc := &Document{Pages: make([]Page, 0, wb.NumSheets())}
	for i := 0; i < wb.NumSheets(); i++ {
		sheet := wb.GetSheet(i)
		if sheet == nil {
			continue
		}

		rows := make([][]string, 0, int(sheet.MaxRow)+1)
		for r := 0; r <= int(sheet.MaxRow); r++ {
			row := sheet.Row(r)
			if row == nil {
				rows = append(rows, []string{})
				continue
			}
			cells := make([]string, 0, row.LastCol())
			for c := 0; c < row.LastCol(); c++ {
				cells = append(cells, row.Col(c))
			}
			rows = append(rows, cells)
		}

		page := Page{Number: i + 1, Text: sheetText(rows)}
		if len(rows) > 0 {
			page.Tables = []Table{{Rows: rows}}
		}
		doc.Pages = append(doc.Pages, page)
	}
	return doc, nil
}
