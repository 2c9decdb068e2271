package model

import "strconv"

// Issue records an office-text block that was present on the page but could
// not be split into a mailing address and phone. The matching record carries
// null mail/phone values for Field.
type Issue struct {
	Chamber string `json:"chamber"`
	Row     int    `json:"row"`
	Member  string `json:"member"`
	Field   string `json:"field"`
	Text    string `json:"text"`
	Reason  string `json:"reason"`
}

// IssueFieldCapitolOffice names the capitol office block in an Issue.
const IssueFieldCapitolOffice = "capitol_office"

// DistrictOfficeIssueField returns the issue field name of district office i.
func DistrictOfficeIssueField(i int) string {
	return "district_office_" + strconv.Itoa(i)
}
