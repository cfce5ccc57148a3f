// Package table defines the document/page/table model the extraction
// pipeline consumes, plus the source implementations that materialize it
// from CSV, Excel and delimiter-separated text. The pipeline itself never
// performs I/O: a Source hands it plain values.
package table

// Table is one tabular region: rows of raw cell strings. Blank cells are
// empty strings, never dropped, so column positions stay stable.
type Table struct {
	Rows [][]string
}

// HeaderRow returns the first row, treated as the table's header.
func (t Table) HeaderRow() []string {
	if len(t.Rows) == 0 {
		return nil
	}
	return t.Rows[0]
}

// DataRows returns everything after the header row.
func (t Table) DataRows() [][]string {
	if len(t.Rows) < 2 {
		return nil
	}
	return t.Rows[1:]
}

// Page is one page of a statement: its raw text (for metadata and label
// scanning) and zero or more extracted tables. A page with no tables is
// valid input.
type Page struct {
	Number int
	Text   string
	Tables []Table
}

// Document is the materialized statement handed to the pipeline.
type Document struct {
	Pages []Page
}

// FirstPageText returns the text of the first page, or "" for an empty
// document. Metadata extraction and bank identification read only this.
func (d *Document) FirstPageText() string {
	if d == nil || len(d.Pages) == 0 {
		return ""
	}
	return d.Pages[0].Text
}

// Source materializes a Document from some statement representation. CSV
// and Excel sources live in this package; OCR-backed sources are external
// collaborators that satisfy the same interface.
type Source interface {
	Extract() (*Document, error)
}
