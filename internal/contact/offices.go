package contact

import "github.com/sells-group/roster-cli/internal/model"

// OfficeFailure is a district office whose text could not be parsed.
type OfficeFailure struct {
	Index int
	Err   *AddressParseError
}

// ParseOffice splits raw into a model.Office. On failure the office keeps its
// raw text with nil mail and phone, and the parse error is returned.
func ParseOffice(raw string) (model.Office, *AddressParseError) {
	office := model.Office{Raw: raw}
	mail, phone, err := parseAddressPhone(raw)
	if err != nil {
		return office, err
	}
	office.Mail = &mail
	office.Phone = &phone
	return office, nil
}

// BuildDistrictOffices parses each raw district-office block in order.
// An empty input yields no offices.
func BuildDistrictOffices(raw []string) ([]model.Office, []OfficeFailure) {
	if len(raw) == 0 {
		return nil, nil
	}
	offices := make([]model.Office, 0, len(raw))
	var failures []OfficeFailure
	for i, r := range raw {
		office, err := ParseOffice(r)
		if err != nil {
			failures = append(failures, OfficeFailure{Index: i, Err: err})
		}
		offices = append(offices, office)
	}
	return offices, failures
}
