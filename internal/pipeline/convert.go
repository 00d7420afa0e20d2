package pipeline

import (
	"strings"

	"bealert/internal"
	"bealert/internal/bin"
	"bealert/internal/config"
)

type Converter struct {
	cfg  config.Config
	tmpl *bin.Template
}

func NewConverter(cfg config.Config) (*Converter, error) {
	tmpl, err := bin.Load()
	if err != nil {
		return nil, err
	}
	return &Converter{cfg: cfg, tmpl: applyOverrides(tmpl, cfg)}, nil
}

// Template exposes the effective (override-applied) template.
func (c *Converter) Template() *bin.Template {
	return c.tmpl
}

type Summary struct {
	Read        int
	Converted   int
	Skipped     int
	Diagnostics []internal.RowDiagnostic
}

// ConvertFile runs the whole batch: extract, map each row, write the CSV.
// A row that fails to map becomes a diagnostic and never aborts the run;
// successes keep their input order. Schema and IO problems abort before any
// output is written.
func (c *Converter) ConvertFile(inputPath, outputPath string) (Summary, error) {
	records, err := ExtractMembers(inputPath)
	if err != nil {
		return Summary{}, err
	}

	mapper := NewMapper(c.tmpl)
	rows := make([]internal.ContactRow, 0, len(records))
	diags := []internal.RowDiagnostic{}
	for _, rec := range records {
		row, err := mapper.Map(rec)
		if err != nil {
			diags = append(diags, internal.RowDiagnostic{Record: rec, Err: err})
			continue
		}
		rows = append(rows, row)
	}

	if err := ExportCSV(c.tmpl.Header(), rows, outputPath, c.delimiter()); err != nil {
		return Summary{}, err
	}

	return Summary{
		Read:        len(records),
		Converted:   len(rows),
		Skipped:     len(diags),
		Diagnostics: diags,
	}, nil
}

func (c *Converter) delimiter() rune {
	if r := []rune(c.cfg.Delimiter); len(r) > 0 {
		return r[0]
	}
	return ';'
}

func applyOverrides(tmpl *bin.Template, cfg config.Config) *bin.Template {
	overrides := []struct {
		header string
		value  string
	}{
		{"Postcode", cfg.Postcode},
		{"Gemeente", cfg.Gemeente},
		{"Taal", cfg.Taal},
		{"Land", cfg.Land},
		{"Rode lijst", cfg.RodeLijst},
		{"Type Contact", cfg.TypeContact},
	}
	for _, o := range overrides {
		if strings.TrimSpace(o.value) == "" {
			continue
		}
		tmpl = tmpl.WithFixed(o.header, o.value)
	}
	return tmpl
}
