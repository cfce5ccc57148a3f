package table

import "strings"

// TextSource materializes a Document from per-page OCR text where table
// columns are separated by a fixed delimiter (OCR engines configured for
// semi-structured output emit '|' between columns). Lines without the
// delimiter are kept in the page text but excluded from the table, since a
// single-cell row carries no column structure.
type TextSource struct {
	pages     []string
	delimiter string
}

// NewTextSource wraps raw page texts. An empty delimiter defaults to "|".
func NewTextSource(pages []string, delimiter string) *TextSource {
	if delimiter == "" {
		delimiter = "|"
	}
	return &TextSource{pages: pages, delimiter: delimiter}
}

// Extract splits each page's delimited lines into table rows.
func (s *TextSource) Extract() (*Document, error) {
	if len(s.pages) == 0 {
		return nil, ErrEmptyInput
	}

	doc := &Document{Pages: make([]Page, 0, len(s.pages))}
	for i, text := range s.pages {
		var rows [][]string
		for _, line := range strings.Split(text, "\n") {
			if !strings.Contains(line, s.delimiter) {
				continue
			}
			cells := strings.Split(line, s.delimiter)
			for j := range cells {
				cells[j] = strings.TrimSpace(cells[j])
			}
			rows = append(rows, cells)
		}

		page := Page{Number: i + 1, Text: text}
		if len(rows) > 0 {
			page.Tables = []Table{{Rows: rows}}
		}
		doc.Pages = append(doc.Pages, page)
	}
	return doc, nil
}
