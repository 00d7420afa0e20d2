package pipeline

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"bealert/internal"
)

func mkXLSX(rows [][]any) []byte {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}
	buf := bytes.NewBuffer(nil)
	_, _ = f.WriteTo(buf)
	return buf.Bytes()
}

var memberHeader = []any{"Voornaam", "Naam", "Straat", "Huisnummer", "Mobiel nummer", "E-mailadres"}

func TestExtractXLSX(t *testing.T) {
	blob := mkXLSX([][]any{
		memberHeader,
		{"Jan", "Peeters", "Kerkstraat", "12", "0478123456", "jan.peeters@example.be"},
		{"", "", "", "", "", ""},
		{"An", "Willems", "Dorpsplein", "1A", "0499 11 22 33", "an@example.be"},
	})
	members, err := extractXLSX(blob)
	if err != nil {
		t.Fatal(err)
	}
	if len(members) != 2 {
		t.Fatalf("len=%d", len(members))
	}
	if members[0].Row != 2 || members[0].FirstName != "Jan" {
		t.Fatalf("first record: %+v", members[0])
	}
	if members[1].Row != 4 || members[1].HouseNumber != "1A" {
		t.Fatalf("second record: %+v", members[1])
	}
}

func TestExtractXLSXKeepsPartialRows(t *testing.T) {
	blob := mkXLSX([][]any{
		memberHeader,
		{"Jan", "", "", "", "", ""},
	})
	members, err := extractXLSX(blob)
	if err != nil {
		t.Fatal(err)
	}
	if len(members) != 1 {
		t.Fatalf("partial row dropped: len=%d", len(members))
	}
	if members[0].LastName != "" || members[0].FirstName != "Jan" {
		t.Fatalf("record: %+v", members[0])
	}
}

func TestExtractXLSXNumericCells(t *testing.T) {
	blob := mkXLSX([][]any{
		memberHeader,
		{"Jan", "Peeters", "Kerkstraat", 12, 478123456, "jan@example.be"},
	})
	members, err := extractXLSX(blob)
	if err != nil {
		t.Fatal(err)
	}
	if members[0].HouseNumber != "12" {
		t.Fatalf("house number=%q", members[0].HouseNumber)
	}
	if members[0].Mobile != "478123456" {
		t.Fatalf("mobile=%q", members[0].Mobile)
	}
}

func TestExtractXLSXMissingHeaders(t *testing.T) {
	blob := mkXLSX([][]any{
		{"Voornaam", "Naam", "Straat", "Huisnummer", "E-mailadres"},
		{"Jan", "Peeters", "Kerkstraat", "12", "jan@example.be"},
	})
	_, err := extractXLSX(blob)
	var missing *MissingHeadersError
	if !errors.As(err, &missing) {
		t.Fatalf("got %v", err)
	}
	if len(missing.Missing) != 1 || missing.Missing[0] != internal.HeaderMobiel {
		t.Fatalf("missing=%v", missing.Missing)
	}
}

func TestExtractCSVBothDelimiters(t *testing.T) {
	semicolon := "Voornaam;Naam;Straat;Huisnummer;Mobiel nummer;E-mailadres\n" +
		"Jan;Peeters;Kerkstraat;12;0478123456;jan@example.be\n"
	comma := "Voornaam,Naam,Straat,Huisnummer,Mobiel nummer,E-mailadres\n" +
		"Jan,Peeters,Kerkstraat,12,0478123456,jan@example.be\n"

	for _, content := range []string{semicolon, comma} {
		members, err := extractCSV([]byte(content))
		if err != nil {
			t.Fatal(err)
		}
		if len(members) != 1 {
			t.Fatalf("len=%d", len(members))
		}
		if members[0].Row != 2 || members[0].LastName != "Peeters" {
			t.Fatalf("record: %+v", members[0])
		}
		if members[0].Source != internal.SourceCSV {
			t.Fatalf("source=%s", members[0].Source)
		}
	}
}

func TestCheckHeaders(t *testing.T) {
	tmp := t.TempDir()

	good := filepath.Join(tmp, "good.xlsx")
	if err := os.WriteFile(good, mkXLSX([][]any{memberHeader}), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := CheckHeaders(good); err != nil {
		t.Fatal(err)
	}

	bad := filepath.Join(tmp, "bad.xlsx")
	if err := os.WriteFile(bad, mkXLSX([][]any{{"Name", "Email"}}), 0o644); err != nil {
		t.Fatal(err)
	}
	var missing *MissingHeadersError
	if err := CheckHeaders(bad); !errors.As(err, &missing) {
		t.Fatalf("got %v", err)
	}

	if err := CheckHeaders(filepath.Join(tmp, "wrong.txt")); err == nil {
		t.Fatal("expected unsupported input type error")
	}
}
