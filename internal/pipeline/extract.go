package pipeline

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"bealert/internal"
	"bealert/internal/util"
)

// RequiredHeaders are the source columns the converter reads. All six must be
// present in the header row; anything else in the file is ignored.
var RequiredHeaders = []string{
	internal.HeaderVoornaam,
	internal.HeaderNaam,
	internal.HeaderStraat,
	internal.HeaderHuisnummer,
	internal.HeaderMobiel,
	internal.HeaderEmail,
}

// MissingHeadersError is the fatal configuration error for a source file that
// does not follow the municipal export template.
type MissingHeadersError struct {
	Missing []string
}

func (e *MissingHeadersError) Error() string {
	return "input is missing required columns: " + strings.Join(e.Missing, ", ")
}

// ExtractMembers reads every member row from an xlsx or csv file. The source
// kind is picked from the file extension.
func ExtractMembers(path string) ([]internal.MemberRecord, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch sourceForPath(path) {
	case internal.SourceXLSX:
		return extractXLSX(blob)
	case internal.SourceCSV:
		return extractCSV(blob)
	default:
		return nil, fmt.Errorf("unsupported input type: %s", filepath.Ext(path))
	}
}

// CheckHeaders validates the header row only, without touching data rows.
func CheckHeaders(path string) error {
	blob, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var rows [][]string
	switch sourceForPath(path) {
	case internal.SourceXLSX:
		rows, err = xlsxRows(blob)
	case internal.SourceCSV:
		rows, err = csvRows(blob)
	default:
		return fmt.Errorf("unsupported input type: %s", filepath.Ext(path))
	}
	if err != nil {
		return err
	}
	_, _, err = headerIndexes(rows)
	return err
}

func sourceForPath(path string) internal.RecordSource {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		return internal.SourceXLSX
	case ".csv":
		return internal.SourceCSV
	default:
		return ""
	}
}

func extractXLSX(blob []byte) ([]internal.MemberRecord, error) {
	rows, err := xlsxRows(blob)
	if err != nil {
		return nil, err
	}
	return rowsToMembers(rows, internal.SourceXLSX)
}

func extractCSV(blob []byte) ([]internal.MemberRecord, error) {
	rows, err := csvRows(blob)
	if err != nil {
		return nil, err
	}
	return rowsToMembers(rows, internal.SourceCSV)
}

func xlsxRows(blob []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(blob))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheet found in workbook")
	}
	return f.GetRows(sheets[0])
}

func csvRows(blob []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(blob))
	r.Comma = detectDelimiter(blob)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

// detectDelimiter picks ; or , from the first line. Municipal exports use
// either, depending on the Excel locale that produced them.
func detectDelimiter(blob []byte) rune {
	line := blob
	if i := bytes.IndexByte(blob, '\n'); i >= 0 {
		line = blob[:i]
	}
	if bytes.Count(line, []byte(";")) >= bytes.Count(line, []byte(",")) {
		return ';'
	}
	return ','
}

func rowsToMembers(rows [][]string, source internal.RecordSource) ([]internal.MemberRecord, error) {
	cols, headerRow, err := headerIndexes(rows)
	if err != nil {
		return nil, err
	}

	out := make([]internal.MemberRecord, 0, len(rows))
	for i := headerRow + 1; i < len(rows); i++ {
		rec, ok := rowToMember(cols, rows[i], i+1, source)
		if !ok {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// headerIndexes finds the first non-empty row, maps header names to column
// indexes and fails with MissingHeadersError if the template does not match.
func headerIndexes(rows [][]string) (map[string]int, int, error) {
	headerRow := -1
	cols := map[string]int{}
	for i, row := range rows {
		for j, cell := range row {
			name := strings.TrimSpace(cell)
			if name == "" {
				continue
			}
			if _, exists := cols[name]; !exists {
				cols[name] = j
			}
			headerRow = i
		}
		if headerRow >= 0 {
			break
		}
	}
	if headerRow < 0 {
		return nil, 0, fmt.Errorf("empty sheet (no header row)")
	}

	missing := []string{}
	for _, required := range RequiredHeaders {
		if _, ok := cols[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, 0, &MissingHeadersError{Missing: missing}
	}
	return cols, headerRow, nil
}

// rowToMember builds a record from one data row. A row whose six source cells
// are all empty is a trailing blank and reports ok=false; a partially filled
// row is kept so the mapper can reject it visibly.
func rowToMember(cols map[string]int, row []string, rowNo int, source internal.RecordSource) (internal.MemberRecord, bool) {
	get := func(name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return util.CollapseSpaces(row[idx])
	}

	rec := internal.MemberRecord{
		Row:         rowNo,
		Source:      source,
		FirstName:   get(internal.HeaderVoornaam),
		LastName:    get(internal.HeaderNaam),
		Street:      get(internal.HeaderStraat),
		HouseNumber: get(internal.HeaderHuisnummer),
		Mobile:      get(internal.HeaderMobiel),
		Email:       get(internal.HeaderEmail),
	}

	if rec.FirstName == "" && rec.LastName == "" && rec.Street == "" &&
		rec.HouseNumber == "" && rec.Mobile == "" && rec.Email == "" {
		return internal.MemberRecord{}, false
	}
	return rec, true
}
