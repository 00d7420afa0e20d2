package pipeline

import (
	"strings"

	"bealert/internal"
	"bealert/internal/bin"
	"bealert/internal/util"
)

// Mapper turns one MemberRecord into one BIN contact row. It is pure: the
// same record always renders the same row.
type Mapper struct {
	tmpl *bin.Template
}

func NewMapper(tmpl *bin.Template) *Mapper {
	return &Mapper{tmpl: tmpl}
}

// Map validates and normalizes a record. Missing fields are checked first, in
// source column order, so an empty mobile cell is reported as missing rather
// than malformed.
func (m *Mapper) Map(rec internal.MemberRecord) (internal.ContactRow, error) {
	required := []struct {
		field string
		value string
	}{
		{internal.HeaderVoornaam, rec.FirstName},
		{internal.HeaderNaam, rec.LastName},
		{internal.HeaderStraat, rec.Street},
		{internal.HeaderHuisnummer, rec.HouseNumber},
		{internal.HeaderMobiel, rec.Mobile},
		{internal.HeaderEmail, rec.Email},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return nil, &internal.RowError{Field: r.field, Err: internal.ErrMissingField}
		}
	}

	phone := util.NormalizeBelgianPhone(rec.Mobile)
	if !util.ValidBelgianPhone(phone) {
		return nil, &internal.RowError{Field: internal.HeaderMobiel, Err: internal.ErrBadPhone}
	}

	email := util.NormalizeEmail(rec.Email)
	if !util.PlausibleEmail(email) {
		return nil, &internal.RowError{Field: internal.HeaderEmail, Err: internal.ErrBadEmail}
	}

	// The address column wants only the numeric part of the house number:
	// "Kerkstraat" + "12 Bus 3" -> "Kerkstraat 12".
	address := strings.TrimSpace(rec.Street + " " + util.HouseNumberDigits(rec.HouseNumber))

	return m.tmpl.Render(map[bin.MappedField]string{
		bin.FieldMobile:    phone,
		bin.FieldLastName:  rec.LastName,
		bin.FieldFirstName: rec.FirstName,
		bin.FieldAddress:   address,
		bin.FieldEmail:     email,
	}), nil
}
