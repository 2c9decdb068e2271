package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Fixed record keys, in output order.
const (
	KeyName             = "name"
	KeyParty            = "party"
	KeyDistrict         = "district"
	KeyHomepage         = "homepage"
	KeyCapitolOfficeRaw = "capitol_office_raw"
	KeyCapitolMail      = "capitol_mail"
	KeyCapitolPhone     = "capitol_phone"
)

// FixedKeys returns the keys every member record carries.
func FixedKeys() []string {
	return []string{
		KeyName,
		KeyParty,
		KeyDistrict,
		KeyHomepage,
		KeyCapitolOfficeRaw,
		KeyCapitolMail,
		KeyCapitolPhone,
	}
}

// DistrictOfficeRawKey returns the raw-text key of district office i.
func DistrictOfficeRawKey(i int) string { return fmt.Sprintf("district_office_%d_raw", i) }

// DistrictMailKey returns the mailing-address key of district office i.
func DistrictMailKey(i int) string { return fmt.Sprintf("district_mail_%d", i) }

// DistrictPhoneKey returns the phone key of district office i.
func DistrictPhoneKey(i int) string { return fmt.Sprintf("district_phone_%d", i) }

// Office is one office-text block split into mail and phone.
// Mail and Phone are nil when the raw text could not be parsed.
type Office struct {
	Raw   string
	Mail  *string
	Phone *string
}

// Member is one legislator's contact record as scraped from a roster row.
type Member struct {
	Name             string
	Party            *string
	District         string
	Homepage         string
	CapitolOfficeRaw string
	CapitolMail      *string
	CapitolPhone     *string
	DistrictOffices  []Office
}

// Field is one key/value pair of the flattened record. A nil Value is null.
type Field struct {
	Key   string
	Value *string
}

// Fields flattens the member into its ordered key/value pairs: the fixed
// keys followed by one raw/mail/phone triple per district office.
func (m Member) Fields() []Field {
	name, district, homepage, raw := m.Name, m.District, m.Homepage, m.CapitolOfficeRaw
	fields := make([]Field, 0, len(FixedKeys())+3*len(m.DistrictOffices))
	fields = append(fields,
		Field{KeyName, &name},
		Field{KeyParty, m.Party},
		Field{KeyDistrict, &district},
		Field{KeyHomepage, &homepage},
		Field{KeyCapitolOfficeRaw, &raw},
		Field{KeyCapitolMail, m.CapitolMail},
		Field{KeyCapitolPhone, m.CapitolPhone},
	)
	for i, o := range m.DistrictOffices {
		officeRaw := o.Raw
		fields = append(fields,
			Field{DistrictOfficeRawKey(i), &officeRaw},
			Field{DistrictMailKey(i), o.Mail},
			Field{DistrictPhoneKey(i), o.Phone},
		)
	}
	return fields
}

// Map returns the flattened record as a map.
func (m Member) Map() map[string]*string {
	fields := m.Fields()
	out := make(map[string]*string, len(fields))
	for _, f := range fields {
		out[f.Key] = f.Value
	}
	return out
}

// MarshalJSON encodes the member as a flat object with keys in record order.
func (m Member) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	var out bytes.Buffer
	out.WriteByte('{')
	for i, f := range m.Fields() {
		if i > 0 {
			out.WriteByte(',')
		}
		buf.Reset()
		if err := enc.Encode(f.Key); err != nil {
			return nil, err
		}
		out.Write(bytes.TrimRight(buf.Bytes(), "\n"))
		out.WriteByte(':')
		if f.Value == nil {
			out.WriteString("null")
			continue
		}
		buf.Reset()
		if err := enc.Encode(*f.Value); err != nil {
			return nil, err
		}
		out.Write(bytes.TrimRight(buf.Bytes(), "\n"))
	}
	out.WriteByte('}')
	return out.Bytes(), nil
}

// Ptr returns a pointer to s.
func Ptr(s string) *string { return &s }
