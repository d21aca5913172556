package export

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/matsen/bibx/internal/analysis"
	"github.com/matsen/bibx/internal/registry"
)

// maxCellChars is the longest text a spreadsheet cell accepts.
const maxCellChars = 32767

// Sheet names of the workbook.
const (
	SheetReport    = "Report"
	SheetDocuments = "Documents"
	SheetAuthors   = "Author Metrics"
	SheetPerYear   = "Per Year"
	SheetBradford  = "Bradford"
)

// entitySheets names the sheet of each entity class.
var entitySheets = []struct {
	kind  registry.Kind
	sheet string
}{
	{registry.KindAuthor, "Authors"},
	{registry.KindSource, "Sources"},
	{registry.KindInstitution, "Institutions"},
	{registry.KindCountry, "Countries"},
	{registry.KindAuthorKeyword, "Author Keywords"},
	{registry.KindKeywordPlus, "Keywords Plus"},
}

// WriteWorkbook saves the report, the document table, every entity table
// and the author metrics of ix as an .xlsx workbook at path.
func WriteWorkbook(path string, ix *analysis.Index) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Warn("closing workbook")
		}
	}()

	if err := f.SetSheetName("Sheet1", SheetReport); err != nil {
		return fmt.Errorf("naming report sheet: %w", err)
	}

	w := sheetWriter{f: f}
	w.reportSheet(ix)
	w.documentsSheet(ix)
	for _, es := range entitySheets {
		w.entitySheet(es.sheet, ix.Entity(es.kind))
	}
	w.authorsSheet(ix)
	w.perYearSheet(ix)
	w.bradfordSheet(ix)
	if w.err != nil {
		return w.err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

// sheetWriter keeps the first error so sheet builders stay linear.
type sheetWriter struct {
	f   *excelize.File
	err error
}

func (w *sheetWriter) newSheet(name string) {
	if w.err != nil {
		return
	}
	if _, err := w.f.NewSheet(name); err != nil {
		w.err = fmt.Errorf("creating sheet %s: %w", name, err)
	}
}

// row writes values as row (1-based) of sheet.
func (w *sheetWriter) row(sheet string, row int, values ...any) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		w.err = err
		return
	}
	for i, v := range values {
		if s, ok := v.(string); ok {
			values[i] = clip(s)
		}
	}
	if err := w.f.SetSheetRow(sheet, cell, &values); err != nil {
		w.err = fmt.Errorf("writing %s row %d: %w", sheet, row, err)
	}
}

func (w *sheetWriter) reportSheet(ix *analysis.Index) {
	w.row(SheetReport, 1, "Main Information", "Results")
	for i, item := range ix.Report() {
		w.row(SheetReport, i+2, item.Label, item.Value)
	}
}

func (w *sheetWriter) documentsSheet(ix *analysis.Index) {
	w.newSheet(SheetDocuments)
	t := ix.Corpus.Table()
	columns := t.Columns()

	header := make([]any, 0, len(columns)+1)
	header = append(header, "id")
	for _, c := range columns {
		header = append(header, c)
	}
	w.row(SheetDocuments, 1, header...)

	for i, entry := range ix.Documents.Entries() {
		values := make([]any, 0, len(columns)+1)
		values = append(values, entry.ID)
		for _, v := range t.Row(i) {
			values = append(values, v)
		}
		w.row(SheetDocuments, i+2, values...)
	}
}

func (w *sheetWriter) entitySheet(sheet string, class *analysis.EntityClass) {
	w.newSheet(sheet)
	w.row(sheet, 1, "ID", "Name", "Documents", "Citations")
	if class == nil {
		return
	}
	for i, entry := range class.Registry.Entries() {
		w.row(sheet, i+2, entry.ID, entry.Name, class.Vocabulary.Documents[i], class.Vocabulary.Citations[i])
	}
}

func (w *sheetWriter) authorsSheet(ix *analysis.Index) {
	w.newSheet(SheetAuthors)
	w.row(SheetAuthors, 1, "ID", "Name", "Documents", "Citations", "Self Citations", "H-Index")
	for i, a := range ix.Authors() {
		w.row(SheetAuthors, i+2, a.ID, a.Name, a.Documents, a.Citations, a.SelfCitations, a.HIndex)
	}
}

func (w *sheetWriter) perYearSheet(ix *analysis.Index) {
	w.newSheet(SheetPerYear)
	w.row(SheetPerYear, 1, "Year", "Documents", "Citations")
	for i, yc := range ix.PerYear() {
		w.row(SheetPerYear, i+2, yc.Year, yc.Documents, yc.Citations)
	}
}

func (w *sheetWriter) bradfordSheet(ix *analysis.Index) {
	w.newSheet(SheetBradford)
	w.row(SheetBradford, 1, "Source", "Documents", "Cumulative", "Zone")
	for i, s := range ix.Bradford() {
		w.row(SheetBradford, i+2, s.Name, s.Documents, s.Cumulative, int(s.Zone))
	}
}

// clip shortens s to the cell limit on a rune boundary.
func clip(s string) string {
	if len(s) <= maxCellChars {
		return s
	}
	n := 0
	for i := range s {
		if n == maxCellChars {
			return s[:i]
		}
		n++
	}
	return s
}
