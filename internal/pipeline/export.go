package pipeline

import (
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"bealert/internal"
)

// ExportCSV writes the header line and the converted rows, delimiter-separated,
// creating the parent directory if needed.
func ExportCSV(header []string, rows []internal.ContactRow, outputPath string, delimiter rune) error {
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	w.Comma = delimiter
	if err := w.Write(header); err != nil {
		_ = f.Close()
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			_ = f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// ExportRejectsXLSX writes one sheet listing every skipped row with its source
// row number, the rejection reason and the raw cell values, so the operator
// can fix the spreadsheet and re-run.
func ExportRejectsXLSX(diags []internal.RowDiagnostic, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{
		"source_row", "reason",
		"voornaam", "naam", "straat", "huisnummer", "mobiel_nummer", "e_mailadres",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, d := range diags {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}

		set(1, d.Record.Row)
		set(2, d.Err.Error())
		set(3, d.Record.FirstName)
		set(4, d.Record.LastName)
		set(5, d.Record.Street)
		set(6, d.Record.HouseNumber)
		set(7, d.Record.Mobile)
		set(8, d.Record.Email)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}
