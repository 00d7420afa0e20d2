// Package bin holds the BE-Alert BIN import template: the 33-column schema the
// destination platform's bulk importer expects. The schema is data, not code;
// it lives in an embedded TOML file and is decoded once at load time.
package bin

import (
	_ "embed"
	"fmt"

	"github.com/BurntSushi/toml"
)

//go:embed template.toml
var templateTOML []byte

// ColumnCount is fixed by the destination importer.
const ColumnCount = 33

type SourceKind string

const (
	SourceMapped SourceKind = "mapped"
	SourceFixed  SourceKind = "fixed"
	SourceBlank  SourceKind = "blank"
)

// MappedField names the member field a mapped column draws from.
type MappedField string

const (
	FieldMobile    MappedField = "mobile"
	FieldLastName  MappedField = "lastname"
	FieldFirstName MappedField = "firstname"
	FieldAddress   MappedField = "address"
	FieldEmail     MappedField = "email"
)

type Column struct {
	Header string      `toml:"header"`
	Source SourceKind  `toml:"source"`
	Field  MappedField `toml:"field"`
	Value  string      `toml:"value"`
}

// Template is the ordered column schema. Treat a loaded Template as immutable;
// Render and WithFixed never touch the receiver's columns.
type Template struct {
	Columns []Column `toml:"column"`
}

var validFields = map[MappedField]bool{
	FieldMobile:    true,
	FieldLastName:  true,
	FieldFirstName: true,
	FieldAddress:   true,
	FieldEmail:     true,
}

func Load() (*Template, error) {
	var t Template
	if err := toml.Unmarshal(templateTOML, &t); err != nil {
		return nil, fmt.Errorf("parse embedded BIN template: %w", err)
	}
	if len(t.Columns) != ColumnCount {
		return nil, fmt.Errorf("BIN template has %d columns, want %d", len(t.Columns), ColumnCount)
	}
	for i, col := range t.Columns {
		if col.Header == "" {
			return nil, fmt.Errorf("BIN template column %d has no header", i+1)
		}
		switch col.Source {
		case SourceMapped:
			if !validFields[col.Field] {
				return nil, fmt.Errorf("BIN template column %q maps unknown field %q", col.Header, col.Field)
			}
		case SourceFixed:
			if col.Value == "" {
				return nil, fmt.Errorf("BIN template column %q is fixed but has no value", col.Header)
			}
		case SourceBlank:
		default:
			return nil, fmt.Errorf("BIN template column %q has unknown source %q", col.Header, col.Source)
		}
	}
	return &t, nil
}

// Header returns the 33 column names in template order.
func (t *Template) Header() []string {
	names := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		names[i] = col.Header
	}
	return names
}

// Render produces one output row: mapped columns from fields, fixed columns
// from the template values, everything else blank. The returned slice is fresh
// on every call.
func (t *Template) Render(fields map[MappedField]string) []string {
	out := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		switch col.Source {
		case SourceMapped:
			out[i] = fields[col.Field]
		case SourceFixed:
			out[i] = col.Value
		}
	}
	return out
}

// WithFixed returns a copy of the template with the named fixed column set to
// value. Headers of non-fixed columns never change; asking for one is a no-op.
func (t *Template) WithFixed(header, value string) *Template {
	cols := make([]Column, len(t.Columns))
	copy(cols, t.Columns)
	for i := range cols {
		if cols[i].Header == header && cols[i].Source == SourceFixed {
			cols[i].Value = value
		}
	}
	return &Template{Columns: cols}
}
