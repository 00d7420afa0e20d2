package internal

import "errors"

type RecordSource string

const (
	SourceXLSX RecordSource = "xlsx"
	SourceCSV  RecordSource = "csv"
)

// Required source columns, spelled exactly as the municipal export spells them.
const (
	HeaderVoornaam   = "Voornaam"
	HeaderNaam       = "Naam"
	HeaderStraat     = "Straat"
	HeaderHuisnummer = "Huisnummer"
	HeaderMobiel     = "Mobiel nummer"
	HeaderEmail      = "E-mailadres"
)

// MemberRecord is one row of the member list. Row is the 1-indexed row number
// in the source file so diagnostics can point back at the spreadsheet.
type MemberRecord struct {
	Row         int
	Source      RecordSource
	FirstName   string
	LastName    string
	Street      string
	HouseNumber string
	Mobile      string
	Email       string
}

// ContactRow is one rendered BIN import row, 33 values in template order.
type ContactRow []string

var (
	ErrMissingField = errors.New("missing required field")
	ErrBadPhone     = errors.New("mobile number not in a recognized Belgian format")
	ErrBadEmail     = errors.New("implausible e-mail address")

	// ErrRowsSkipped marks a conversion that finished but left rows behind.
	ErrRowsSkipped = errors.New("some rows were skipped")
)

// RowError describes why a single row was rejected, naming the source column.
type RowError struct {
	Field string
	Err   error
}

func (e *RowError) Error() string { return e.Field + ": " + e.Err.Error() }

func (e *RowError) Unwrap() error { return e.Err }

// RowDiagnostic pairs a rejected record with its rejection reason.
type RowDiagnostic struct {
	Record MemberRecord
	Err    error
}
